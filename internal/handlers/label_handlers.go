package handlers

import (
	"net/http"

	"taskManager/internal/handlers/dto"
	"taskManager/internal/logger"

	"go.uber.org/zap"
)

type LabelHandler struct {
	labels LabelService
}

func NewLabelHandler(labels LabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

func (h *LabelHandler) List(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	labels, err := h.labels.List(r.Context())
	if err != nil {
		handleError(w, r, err, "list_labels")
		return
	}
	responseWithList(w, dto.FromLabelList(labels))
}

func (h *LabelHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	l, err := h.labels.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_label")
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromLabel(l))
}

func (h *LabelHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.CreateLabelRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	l, err := h.labels.Create(r.Context(), request.ToDraft())
	if err != nil {
		handleError(w, r, err, "create_label")
		return
	}

	logger.Info("HTTP_OUT: Метка создана", zap.Int64("label_id", l.ID))
	responseWithJSON(w, http.StatusCreated, dto.FromLabel(l))
}

func (h *LabelHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var request dto.UpdateLabelRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	l, err := h.labels.Update(r.Context(), id, request.ToPatch())
	if err != nil {
		handleError(w, r, err, "update_label")
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromLabel(l))
}

func (h *LabelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.labels.Delete(r.Context(), id); err != nil {
		handleError(w, r, err, "delete_label")
		return
	}
	responseNoContent(w)
}
