package handlers

import (
	"net/http"

	"taskManager/internal/handlers/dto"
	"taskManager/internal/logger"

	"go.uber.org/zap"
)

type StatusHandler struct {
	statuses StatusService
}

func NewStatusHandler(statuses StatusService) *StatusHandler {
	return &StatusHandler{statuses: statuses}
}

func (h *StatusHandler) List(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	statuses, err := h.statuses.List(r.Context())
	if err != nil {
		handleError(w, r, err, "list_statuses")
		return
	}
	responseWithList(w, dto.FromStatusList(statuses))
}

func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	st, err := h.statuses.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_status")
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromStatus(st))
}

func (h *StatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.CreateStatusRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	st, err := h.statuses.Create(r.Context(), request.ToDraft())
	if err != nil {
		handleError(w, r, err, "create_status")
		return
	}

	logger.Info("HTTP_OUT: Статус создан", zap.Int64("status_id", st.ID), zap.String("slug", st.Slug))
	responseWithJSON(w, http.StatusCreated, dto.FromStatus(st))
}

func (h *StatusHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var request dto.UpdateStatusRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	st, err := h.statuses.Update(r.Context(), id, request.ToPatch())
	if err != nil {
		handleError(w, r, err, "update_status")
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromStatus(st))
}

func (h *StatusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.statuses.Delete(r.Context(), id); err != nil {
		handleError(w, r, err, "delete_status")
		return
	}
	responseNoContent(w)
}
