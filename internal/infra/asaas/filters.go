package asaas

import "net/url"

// PaymentFilters is the normalized filter set forwarded to the
// provider's /payments query string. Empty fields are dropped entirely
// instead of being sent as empty parameters. Range bounds are
// independent keys; chronological order between them is not checked.
type PaymentFilters struct {
	Customer        string
	Subscription    string
	Installment     string
	Status          string
	BillingType     string
	PaymentDate     string
	PaymentDateFrom string
	PaymentDateTo   string
	DueDateFrom     string
	DueDateTo       string
	Offset          string
	Limit           string
}

// WithStatus returns a copy of the filters with only the status
// overridden. The aggregator uses it to derive the three bucket queries.
func (f PaymentFilters) WithStatus(status string) PaymentFilters {
	f.Status = status
	return f
}

// Values renders the filters as provider query parameters, stripping
// empty values.
func (f PaymentFilters) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("customer", f.Customer)
	set("subscription", f.Subscription)
	set("installment", f.Installment)
	set("status", f.Status)
	set("billingType", f.BillingType)
	set("paymentDate", f.PaymentDate)
	set("paymentDate[ge]", f.PaymentDateFrom)
	set("paymentDate[le]", f.PaymentDateTo)
	set("dueDate[ge]", f.DueDateFrom)
	set("dueDate[le]", f.DueDateTo)
	set("offset", f.Offset)
	set("limit", f.Limit)
	return v
}
