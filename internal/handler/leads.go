package handler

import (
	"net/http"

	"github.com/njunio10/Convel-Controle/internal/service"

	"go.uber.org/zap"
)

func listLeadsHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "listLeads")
		defer span.End()

		leads, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newLeadViews(leads))
	}
}

func getLeadHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "getLead")
		defer span.End()

		id, ok := parseID(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}

		lead, err := svc.Get(ctx, id)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newLeadView(*lead))
	}
}

func createLeadHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "createLead")
		defer span.End()

		input, err := parseLeadCreate(r)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}

		lead, err := svc.Create(ctx, input)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusCreated, newLeadView(*lead))
	}
}

func updateLeadHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "updateLead")
		defer span.End()

		id, ok := parseID(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}

		patch, err := parseLeadUpdate(r)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}

		lead, err := svc.Update(ctx, id, patch)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newLeadView(*lead))
	}
}

func updateLeadStatusHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "updateLeadStatus")
		defer span.End()

		id, ok := parseID(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}

		status, err := parseLeadStatus(r)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}

		lead, err := svc.UpdateStatus(ctx, id, status)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newLeadView(*lead))
	}
}

func deleteLeadHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "deleteLead")
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
