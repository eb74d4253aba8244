package domain

// Types for the Asaas payment-provider integration. Payment records are
// owned by the provider and never mutated locally; the aggregator only
// reads and buckets them.

// Payment statuses used by the financial aggregation. The provider has
// more statuses (REFUNDED, CONFIRMED, ...); they pass through opaquely.
const (
	PaymentStatusReceived = "RECEIVED"
	PaymentStatusPending  = "PENDING"
	PaymentStatusOverdue  = "OVERDUE"
)

// PaymentRecord mirrors one Asaas payment as returned by the provider.
type PaymentRecord struct {
	ID                    string  `json:"id"`
	Customer              string  `json:"customer,omitempty"`
	Subscription          string  `json:"subscription,omitempty"`
	Installment           string  `json:"installment,omitempty"`
	BillingType           string  `json:"billingType,omitempty"` // BOLETO, CREDIT_CARD, DEBIT_CARD, PIX, TRANSFER
	Value                 float64 `json:"value"`
	NetValue              float64 `json:"netValue,omitempty"`
	Status                string  `json:"status,omitempty"`
	DueDate               string  `json:"dueDate,omitempty"`
	PaymentDate           string  `json:"paymentDate,omitempty"`
	Description           string  `json:"description,omitempty"`
	InvoiceURL            string  `json:"invoiceUrl,omitempty"`
	BankSlipURL           string  `json:"bankSlipUrl,omitempty"`
	TransactionReceiptURL string  `json:"transactionReceiptUrl,omitempty"`
}

// AccountBalance is the provider-side balance of the Asaas account.
type AccountBalance struct {
	Object  string  `json:"object,omitempty"`
	Balance float64 `json:"balance"`
}

// FinancialBucket groups the payments of one status.
// Invariant: Total == sum of Value over Data, Count == len(Data).
type FinancialBucket struct {
	Data  []PaymentRecord `json:"data"`
	Total float64         `json:"total"`
	Count int             `json:"count"`
}

// NewFinancialBucket computes totals for a result page. A nil page
// yields an empty bucket, never a nil Data slice.
func NewFinancialBucket(records []PaymentRecord) FinancialBucket {
	if records == nil {
		records = []PaymentRecord{}
	}
	var total float64
	for _, r := range records {
		total += r.Value
	}
	return FinancialBucket{Data: records, Total: total, Count: len(records)}
}

// FinancialEntries holds the three status buckets of a report.
type FinancialEntries struct {
	Received FinancialBucket `json:"received"`
	Pending  FinancialBucket `json:"pending"`
	Overdue  FinancialBucket `json:"overdue"`
}

// FinancialSummary carries the bucket totals. TotalExpected is always
// TotalPending + TotalOverdue, never set independently.
type FinancialSummary struct {
	TotalReceived float64 `json:"total_received"`
	TotalPending  float64 `json:"total_pending"`
	TotalOverdue  float64 `json:"total_overdue"`
	TotalExpected float64 `json:"total_expected"`
}

// FinancialReport is the combined three-bucket report. It is built
// fresh per request and never persisted. A non-empty Error means the
// aggregation degraded to the all-zero report.
type FinancialReport struct {
	Entries FinancialEntries `json:"entries"`
	Summary FinancialSummary `json:"summary"`
	Error   string           `json:"error,omitempty"`
}

// ZeroFinancialReport returns the all-zero report used when any of the
// three sub-queries fails. Partial aggregation is deliberately not
// supported: one fault poisons the whole report.
func ZeroFinancialReport(errMsg string) *FinancialReport {
	empty := NewFinancialBucket(nil)
	return &FinancialReport{
		Entries: FinancialEntries{Received: empty, Pending: empty, Overdue: empty},
		Summary: FinancialSummary{},
		Error:   errMsg,
	}
}
