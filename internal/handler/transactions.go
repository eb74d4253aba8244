package handler

import (
	"net/http"
	"strconv"

	"github.com/njunio10/Convel-Controle/internal/repository"
	"github.com/njunio10/Convel-Controle/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var handlerTracer = otel.Tracer("handler")

// parseID reads the {id} route parameter. A non-numeric id behaves like
// a missing record.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func transactionFilterFromQuery(r *http.Request) repository.TransactionFilter {
	q := r.URL.Query()
	return repository.TransactionFilter{
		Type:      q.Get("type"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
}

func listTransactionsHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "listTransactions")
		defer span.End()

		transactions, err := svc.List(ctx, transactionFilterFromQuery(r))
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newTransactionViews(transactions))
	}
}

func getTransactionHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "getTransaction")
		defer span.End()

		id, ok := parseID(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}

		transaction, err := svc.Get(ctx, id)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newTransactionView(*transaction))
	}
}

func createTransactionHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "createTransaction")
		defer span.End()

		input, err := parseTransactionCreate(r)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}

		transaction, err := svc.Create(ctx, input)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusCreated, newTransactionView(*transaction))
	}
}

func updateTransactionHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "updateTransaction")
		defer span.End()

		id, ok := parseID(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}

		patch, err := parseTransactionUpdate(r)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}

		transaction, err := svc.Update(ctx, id, patch)
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, newTransactionView(*transaction))
	}
}

func deleteTransactionHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "deleteTransaction")
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

func transactionSummaryHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "transactionSummary")
		defer span.End()

		summary, err := svc.Summary(ctx, transactionFilterFromQuery(r))
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, summary)
	}
}
