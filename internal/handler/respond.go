package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/absence-management-api/internal/domain"
	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/middleware"
)

// respondJSON пишет успешный ответ в стандартном конверте
func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, message string, data any) {
	w.WriteHeader(status)
	resp := dto.Envelope{Status: "success", Message: message, Data: data}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// respondError пишет ответ с ошибкой
func respondError(w http.ResponseWriter, logger *slog.Logger, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Status: "error", Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// handleServiceError сопоставляет категорию ошибки предметной области
// HTTP-коду
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case domain.KindValidation, domain.KindBusinessLogic:
			respondError(w, logger, http.StatusBadRequest, domainErr.Message, "")
		case domain.KindNotFound:
			respondError(w, logger, http.StatusNotFound, domainErr.Message, "")
		case domain.KindAuthorization:
			respondError(w, logger, http.StatusForbidden, domainErr.Message, "")
		default:
			respondError(w, logger, http.StatusInternalServerError, "internal server error", "")
		}
		return
	}

	logger.Error("internal error", slog.Any("error", err))
	respondError(w, logger, http.StatusInternalServerError, "internal server error", "")
}

// identityFrom извлекает идентичность из контекста; при её отсутствии пишет
// ответ 401 и возвращает false
func identityFrom(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (domain.Identity, bool) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, logger, http.StatusUnauthorized, "authentication required", "")
		return domain.Identity{}, false
	}
	return ident, true
}
