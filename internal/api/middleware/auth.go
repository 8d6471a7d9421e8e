// Package middleware HTTP middleware сервиса
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	requestIDKey contextKey = "request_id"

	// HeaderUserID идентификатор пользователя, проставляемый шлюзом
	HeaderUserID = "X-User-ID"
)

// Auth читает идентификатор пользователя из заголовка X-User-ID.
// Запросы без валидного идентификатора получают 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing "+HeaderUserID+" header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid "+HeaderUserID+" header")
			return
		}

		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUserID кладет идентификатор пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
