package dto

// CheckoutRequest body for POST /api/subscription/checkout.
type CheckoutRequest struct {
	Plan string `json:"plan"` // basic, pro, clinic+
}

// CheckoutResponse the provider order handed to the frontend widget.
type CheckoutResponse struct {
	OrderID   string `json:"order_id"`
	AmountINR int    `json:"amount_inr"`
	KeyID     string `json:"key_id"`
}

// VerifyPaymentRequest body for POST /api/subscription/verify, echoing the
// provider callback fields.
type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// SubscriptionStatusResponse current plan state for the settings page.
type SubscriptionStatusResponse struct {
	Plan               string `json:"plan"`
	SubscriptionStatus string `json:"subscription_status"`
	TrialEndsAt        string `json:"trial_ends_at,omitempty"`
	SubscriptionEndsAt string `json:"subscription_ends_at,omitempty"`
	BillingEnabled     bool   `json:"billing_enabled"`
}
