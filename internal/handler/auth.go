package handler

import (
	"errors"
	"net/http"

	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/service"

	"go.uber.org/zap"
)

// writeCredentialsRejected renders the fixed 401 body for bad logins.
// The same response covers unknown emails and wrong passwords.
func writeCredentialsRejected(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{
		"message": "Credenciais inválidas.",
		"errors": map[string][]string{
			"email": {"Email ou senha inválidos."},
		},
	})
}

func loginHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "login")
		defer span.End()

		req, err := parseLogin(r)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}

		session, err := svc.Login(ctx, req.Email, req.Password)
		if err != nil {
			var unauth *domain.ErrUnauthorized
			if errors.As(err, &unauth) {
				writeCredentialsRejected(w)
				return
			}
			handleServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

func refreshHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "refresh")
		defer span.End()

		token, err := parseRefresh(r)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}

		session, err := svc.Refresh(ctx, token)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

func meHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "me")
		defer span.End()

		user, err := svc.Me(ctx, userIDFrom(ctx))
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}

func logoutHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "logout")
		defer span.End()

		if err := svc.Logout(ctx, userIDFrom(ctx)); err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeMessage(w, http.StatusOK, "Logout realizado.")
	}
}
