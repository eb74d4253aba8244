package handler

import (
	"net/http"

	"github.com/njunio10/Convel-Controle/internal/service"

	"go.uber.org/zap"
)

func listClientsHandler(svc *service.ClientService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "listClients")
		defer span.End()

		clients, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newClientViews(clients))
	}
}

func getClientHandler(svc *service.ClientService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "getClient")
		defer span.End()

		id, ok := parseID(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}

		client, err := svc.Get(ctx, id)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newClientView(*client))
	}
}

func createClientHandler(svc *service.ClientService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "createClient")
		defer span.End()

		input, err := parseClientCreate(r)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}

		client, err := svc.Create(ctx, input)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusCreated, newClientView(*client))
	}
}

func updateClientHandler(svc *service.ClientService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "updateClient")
		defer span.End()

		id, ok := parseID(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}

		patch, err := parseClientUpdate(r)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}

		client, err := svc.Update(ctx, id, patch)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newClientView(*client))
	}
}

func deleteClientHandler(svc *service.ClientService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "deleteClient")
		defer span.End()

		id, ok := parseID(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			handleServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
