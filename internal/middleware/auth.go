package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"taskManager/internal/logger"
	"taskManager/internal/models/user"

	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (user.Principal, error)
}

// Authenticate пропускает запрос дальше только с действительным Bearer-токеном
// и кладёт пользователя токена в контекст.
func Authenticate(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, r, "Отсутствует или неверный заголовок Authorization")
				return
			}

			principal, err := parser.Parse(token)
			if err != nil {
				logger.Warn("HTTP: Недействительный токен",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err))
				unauthorized(w, r, "Недействительный или просроченный токен")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func WithPrincipal(ctx context.Context, principal user.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFrom возвращает пользователя запроса; false, если запрос не прошёл Authenticate
func PrincipalFrom(ctx context.Context) (user.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(user.Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":      "UNAUTHORIZED",
		"message":    message,
		"request_id": GetRequestID(r.Context()),
	})
}
