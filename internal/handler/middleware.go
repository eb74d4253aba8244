package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/njunio10/Convel-Controle/internal/infra/observability"
	"github.com/njunio10/Convel-Controle/internal/service"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type contextKey string

const userIDKey contextKey = "user_id"

// authMiddleware guards the panel routes with a bearer access token and
// stores the authenticated user id in the request context.
func authMiddleware(auth *service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeMessage(w, http.StatusUnauthorized, "Não autenticado.")
				return
			}

			userID, err := auth.ValidateAccessToken(token)
			if err != nil {
				logger.Debug("rejected access token", zap.Error(err))
				writeMessage(w, http.StatusUnauthorized, "Não autenticado.")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// metricsMiddleware feeds the request counters behind GET /status and
// /metrics. Server-side failures count as errors; client errors do not.
func metricsMiddleware(m *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if ww.Status() >= 500 {
				m.IncrRequest("error")
			} else {
				m.IncrRequest("success")
			}
		})
	}
}
