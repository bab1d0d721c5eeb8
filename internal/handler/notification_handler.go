package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/absence-management-api/internal/dto"
	"github.com/absence-management-api/internal/service"
	"github.com/go-playground/validator/v10"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
	logger              *slog.Logger
}

func NewNotificationHandler(notificationService service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           validator.New(),
		logger:              logger,
	}
}

func (h *NotificationHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	query := h.parseListQuery(r)
	if err := h.validator.Struct(&query); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	inbox, err := h.notificationService.Inbox(r.Context(), ident, &query)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "", inbox)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid notification id", err.Error())
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), ident, id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), ident); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, "all notifications marked as read", nil)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, h.logger)
	if !ok {
		return
	}

	id, err := h.extractID(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid notification id", err.Error())
		return
	}

	if err := h.notificationService.Delete(r.Context(), ident, id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) extractID(r *http.Request) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, "/notifications/")
	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, "/read")

	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, errors.New("id is required")
	}

	return strconv.ParseInt(parts[0], 10, 64)
}

func (h *NotificationHandler) parseListQuery(r *http.Request) dto.NotificationListQuery {
	query := dto.NotificationListQuery{
		Status: r.URL.Query().Get("status"),
		Limit:  50,
		Offset: 0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			query.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			query.Offset = offset
		}
	}

	return query
}
