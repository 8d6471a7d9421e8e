package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// AccessLog пишет строку лога на каждый запрос
func AccessLog(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("route", routeTemplate(r)),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", GetRequestID(r.Context())),
			}
			if userID := r.Header.Get(HeaderUserID); userID != "" {
				fields = append(fields, zap.String("user_id", userID))
			}

			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error("http request", fields...)
			case rec.status >= http.StatusBadRequest:
				log.Warn("http request", fields...)
			default:
				log.Info("http request", fields...)
			}
		})
	}
}
