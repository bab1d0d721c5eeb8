package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/service"
	"github.com/go-playground/validator/v10"
)

type AbsenceHandler struct {
	absenceService service.AbsenceService
	validator      *validator.Validate
	logger         *slog.Logger
}

func NewAbsenceHandler(absenceService service.AbsenceService, logger *slog.Logger) *AbsenceHandler {
	return &AbsenceHandler{
		absenceService: absenceService,
		validator:      validator.New(),
		logger:         logger,
	}
}

func (h *AbsenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	var req dto.CreateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	request, err := h.absenceService.Submit(r.Context(), ident, &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, "absence request submitted", dto.SubmittedAbsenceResponse{
		RequestID:  request.ID,
		Status:     string(request.Status),
		EmployeeID: request.EmployeeID,
		StartDate:  request.StartDate.Format("2006-01-02"),
		EndDate:    request.EndDate.Format("2006-01-02"),
		Type:       string(request.Type),
	})
}

func (h *AbsenceHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	query := h.parseListQuery(r)
	if err := h.validator.Struct(&query); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	requests, err := h.absenceService.List(r.Context(), ident, &query)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "", requests)
}

func (h *AbsenceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request id", err.Error())
		return
	}

	request, err := h.absenceService.GetByID(r.Context(), ident, id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "", request)
}

func (h *AbsenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request id", err.Error())
		return
	}

	var req dto.UpdateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	if err := h.absenceService.Update(r.Context(), ident, id, &req); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "absence request updated", nil)
}

func (h *AbsenceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request id", err.Error())
		return
	}

	if err := h.absenceService.Cancel(r.Context(), ident, id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "absence request cancelled", nil)
}

func (h *AbsenceHandler) Process(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request id", err.Error())
		return
	}

	var req dto.ProcessAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	if err := h.absenceService.Process(r.Context(), ident, id, &req); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "absence request "+req.Action+"d", nil)
}

func (h *AbsenceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request id", err.Error())
		return
	}

	var req dto.UpdateAbsenceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	if err := h.absenceService.UpdateStatus(r.Context(), ident, id, &req); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "absence request status updated", nil)
}

func (h *AbsenceHandler) extractID(r *http.Request) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, "/absences/")
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, errors.New("id is required")
	}

	return strconv.ParseInt(parts[0], 10, 64)
}

func (h *AbsenceHandler) parseListQuery(r *http.Request) dto.AbsenceListQuery {
	q := r.URL.Query()
	query := dto.AbsenceListQuery{
		Status:    q.Get("status"),
		Type:      q.Get("type"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	if employeeStr := q.Get("employee_id"); employeeStr != "" {
		if employeeID, err := strconv.ParseInt(employeeStr, 10, 64); err == nil {
			query.EmployeeID = &employeeID
		}
	}
	if deptStr := q.Get("department_id"); deptStr != "" {
		if deptID, err := strconv.ParseInt(deptStr, 10, 64); err == nil {
			query.DepartmentID = &deptID
		}
	}

	return query
}
