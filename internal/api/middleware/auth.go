package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	requestIDKey contextKey = "request_id"

	// UserIDHeader заголовок с идентификатором пользователя, проставляется шлюзом
	UserIDHeader = "X-User-ID"
	// RequestIDHeader заголовок с идентификатором запроса
	RequestIDHeader = "X-Request-ID"
)

// Auth требует заголовок X-User-ID и кладёт его значение в контекст
// Права на конкретного ситтера проверяет сервис
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			handlers.RespondUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает пользователя, установленного Auth
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID кладёт пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
