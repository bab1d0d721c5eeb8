package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/service"
	"github.com/go-playground/validator/v10"
)

type BalanceHandler struct {
	balanceService service.LeaveBalanceService
	validator      *validator.Validate
	logger         *slog.Logger
}

func NewBalanceHandler(balanceService service.LeaveBalanceService, logger *slog.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		validator:      validator.New(),
		logger:         logger,
	}
}

func (h *BalanceHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	summary, err := h.balanceService.GetOwn(r.Context(), ident, h.parseYear(r))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "", summary)
}

func (h *BalanceHandler) GetForEmployee(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	employeeID, err := h.extractEmployeeID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	summary, err := h.balanceService.GetForEmployee(r.Context(), ident, employeeID, h.parseYear(r))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "", summary)
}

func (h *BalanceHandler) Set(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	employeeID, err := h.extractEmployeeID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	var req dto.SetLeaveBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	balance, err := h.balanceService.Set(r.Context(), ident, employeeID, &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "leave balance updated", balance)
}

func (h *BalanceHandler) extractEmployeeID(r *http.Request) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, "/balances/")
	path = strings.Trim(path, "/")
	if path == "" {
		return 0, errors.New("employee id is required")
	}
	return strconv.ParseInt(path, 10, 64)
}

// parseYear возвращает год из query-параметра, по умолчанию текущий
func (h *BalanceHandler) parseYear(r *http.Request) int {
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil && year >= 2000 && year <= 2100 {
			return year
		}
	}
	return time.Now().Year()
}
