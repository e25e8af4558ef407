package handlers

import (
	"net/http"
	"time"

	"taskManager/internal/handlers/dto"
	"taskManager/internal/logger"
	"taskManager/internal/middleware"
	"taskManager/internal/models/user"

	"go.uber.org/zap"
)

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	users, err := h.users.List(r.Context())
	if err != nil {
		handleError(w, r, err, "list_users")
		return
	}
	responseWithList(w, dto.FromUserList(users))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_user")
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromUser(u))
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.CreateUserRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	u, err := h.users.Create(r.Context(), request.ToDraft())
	if err != nil {
		handleError(w, r, err, "create_user")
		return
	}

	logger.Info("HTTP_OUT: Пользователь создан",
		zap.Int64("user_id", u.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))
	responseWithJSON(w, http.StatusCreated, dto.FromUser(u))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var request dto.UpdateUserRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	u, err := h.users.Update(r.Context(), principal, id, request.ToPatch())
	if err != nil {
		handleError(w, r, err, "update_user")
		return
	}

	logger.Info("HTTP_OUT: Пользователь обновлён",
		zap.Int64("user_id", u.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))
	responseWithJSON(w, http.StatusOK, dto.FromUser(u))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), principal, id); err != nil {
		handleError(w, r, err, "delete_user")
		return
	}
	responseNoContent(w)
}

func requirePrincipal(w http.ResponseWriter, r *http.Request) (user.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		logger.Warn("HTTP: Запрос без аутентификации", zap.String("path", r.URL.Path))
		responseWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "требуется аутентификация")
		return user.Principal{}, false
	}
	return principal, true
}
