package handler

import (
	"net/http"
	"net/url"

	"github.com/njunio10/Convel-Controle/internal/infra/asaas"
	"github.com/njunio10/Convel-Controle/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func queryDefault(q url.Values, key, fallback string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return fallback
}

// paymentFiltersFromQuery maps the panel's snake_case query parameters
// to provider filters. Paging defaults to the provider's first page of
// 100 records.
func paymentFiltersFromQuery(r *http.Request) asaas.PaymentFilters {
	q := r.URL.Query()
	return asaas.PaymentFilters{
		Customer:        q.Get("customer"),
		Subscription:    q.Get("subscription"),
		Installment:     q.Get("installment"),
		Status:          q.Get("status"),
		BillingType:     q.Get("billing_type"),
		PaymentDate:     q.Get("payment_date"),
		PaymentDateFrom: q.Get("payment_date_from"),
		PaymentDateTo:   q.Get("payment_date_to"),
		DueDateFrom:     q.Get("due_date_from"),
		DueDateTo:       q.Get("due_date_to"),
		Offset:          queryDefault(q, "offset", "0"),
		Limit:           queryDefault(q, "limit", "100"),
	}
}

func listPaymentsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "listPayments")
		defer span.End()

		records := svc.ListPayments(ctx, paymentFiltersFromQuery(r))
		writeData(w, http.StatusOK, records)
	}
}

func getPaymentHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "getPayment")
		defer span.End()

		record := svc.GetPayment(ctx, chi.URLParam(r, "id"))
		if record == nil {
			writeMessage(w, http.StatusNotFound, "Pagamento não encontrado")
			return
		}
		writeData(w, http.StatusOK, record)
	}
}

func getBalanceHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "getBalance")
		defer span.End()

		balance := svc.GetBalance(ctx)
		if balance == nil {
			writeMessage(w, http.StatusInternalServerError, "Erro ao consultar saldo")
			return
		}
		writeData(w, http.StatusOK, balance)
	}
}

// getFinancialHandler serves the three-bucket report. The filters here
// carry no status or paging: the aggregator derives one query per
// bucket itself. A degraded report still renders fully, but with a 400.
func getFinancialHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "getFinancial")
		defer span.End()

		q := r.URL.Query()
		filters := asaas.PaymentFilters{
			PaymentDateFrom: q.Get("start_date"),
			PaymentDateTo:   q.Get("end_date"),
			DueDateFrom:     q.Get("due_date_from"),
			DueDateTo:       q.Get("due_date_to"),
		}

		report := svc.GetFinancial(ctx, filters)
		status := http.StatusOK
		if report.Error != "" {
			status = http.StatusBadRequest
		}
		writeData(w, status, report)
	}
}

// getEntriesHandler lists received payments only; start_date/end_date
// bound the payment date.
func getEntriesHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "getEntries")
		defer span.End()

		q := r.URL.Query()
		filters := asaas.PaymentFilters{
			Status:          "RECEIVED",
			PaymentDateFrom: q.Get("start_date"),
			PaymentDateTo:   q.Get("end_date"),
			Offset:          queryDefault(q, "offset", "0"),
			Limit:           queryDefault(q, "limit", "100"),
		}
		writeData(w, http.StatusOK, svc.ListPayments(ctx, filters))
	}
}

// getOutflowsHandler lists upcoming obligations; start_date/end_date
// bound the due date and the status defaults to PENDING.
func getOutflowsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "getOutflows")
		defer span.End()

		q := r.URL.Query()
		filters := asaas.PaymentFilters{
			Status:      queryDefault(q, "status", "PENDING"),
			DueDateFrom: q.Get("start_date"),
			DueDateTo:   q.Get("end_date"),
			Offset:      queryDefault(q, "offset", "0"),
			Limit:       queryDefault(q, "limit", "100"),
		}
		writeData(w, http.StatusOK, svc.ListPayments(ctx, filters))
	}
}

func confirmPaymentHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := handlerTracer.Start(r.Context(), "confirmPayment")
		defer span.End()

		record, err := svc.ConfirmPayment(ctx, chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, logger, err)
			return
		}
		writeData(w, http.StatusOK, record)
	}
}
