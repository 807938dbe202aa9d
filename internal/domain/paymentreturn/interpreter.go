package paymentreturn

import "net/url"

// Outcome classifies a gateway redirect-back. The three outcomes are
// mutually exclusive and final for the page's lifetime; there is no
// re-classification and no polling.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomePending  Outcome = "pending"
	OutcomeFailure  Outcome = "failure"
)

// Result is the render model for the payment return page. PaymentID echoes
// the gateway's identifier when one came back, for guest reference only.
type Result struct {
	Outcome   Outcome `json:"outcome"`
	PaymentID string  `json:"payment_id,omitempty"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Detail    string  `json:"detail"`
}

// Interpret maps the redirect query parameters to a terminal outcome:
// "approved" is approved, "pending" and "in_process" are pending, and
// anything else (including a missing or unrecognized status) is a failure.
// This page is advisory; authoritative confirmation arrives out of band
// (email), so neither the gateway nor the booking API is re-contacted.
func Interpret(params url.Values) Result {
	paymentID := params.Get("payment_id")

	switch params.Get("status") {
	case "approved":
		return Result{
			Outcome:   OutcomeApproved,
			PaymentID: paymentID,
			Title:     "Payment successful",
			Message:   "Your payment has been processed correctly.",
			Detail:    "Your reservation has been created. You will receive an email with the confirmation code and the details of your stay.",
		}
	case "pending", "in_process":
		return Result{
			Outcome:   OutcomePending,
			PaymentID: paymentID,
			Title:     "Payment pending",
			Message:   "Your payment is being processed.",
			Detail:    "This can take a few minutes. Once confirmed, you will receive an email with the details of your reservation.",
		}
	default:
		return Result{
			Outcome:   OutcomeFailure,
			PaymentID: paymentID,
			Title:     "Payment rejected",
			Message:   "Your payment could not be processed.",
			Detail:    "Check your card details, try another payment method, or contact your bank if the problem persists.",
		}
	}
}
