package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/njunio10/Convel-Controle/internal/domain"

	"go.uber.org/zap"
)

// The API speaks two envelopes: successful payloads are wrapped in
// {"data": ...} and failures in {"message": ...}, with validation
// failures additionally carrying a per-field "errors" map.

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

func writeValidation(w http.ResponseWriter, verr *domain.ErrValidation) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "Dados inválidos.",
		"errors":  verr.Fields,
	})
}

// handleServiceError maps domain errors to HTTP responses. Every
// handler funnels its failures through here so the mapping stays in one
// place.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		verr        *domain.ErrValidation
		notFound    *domain.ErrNotFound
		unauth      *domain.ErrUnauthorized
		sandboxOnly *domain.ErrSandboxOnly
		circuitOpen *domain.ErrCircuitOpen
		timeout     *domain.ErrTimeout
		external    *domain.ErrExternalService
	)

	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr)
	case errors.As(err, &notFound):
		writeMessage(w, http.StatusNotFound, "Recurso não encontrado.")
	case errors.As(err, &unauth):
		writeMessage(w, http.StatusUnauthorized, unauth.Error())
	case errors.As(err, &sandboxOnly):
		writeMessage(w, http.StatusUnprocessableEntity, "Operação disponível apenas no ambiente sandbox.")
	case errors.As(err, &circuitOpen):
		logger.Warn("request rejected by open circuit", zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Serviço temporariamente indisponível.")
	case errors.As(err, &timeout):
		logger.Warn("request timed out", zap.Error(err))
		writeMessage(w, http.StatusGatewayTimeout, "Tempo de resposta excedido.")
	case errors.As(err, &external):
		logger.Error("provider request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Erro ao comunicar com o provedor de pagamentos.")
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Erro interno do servidor.")
	}
}
