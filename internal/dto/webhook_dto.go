package dto

// CheckoutWebhook is the envelope posted by the payment collaborator after
// checkout/session lifecycle changes. Session creation itself happens on
// the provider side; this service only consumes the resulting events.
type CheckoutWebhook struct {
	APIVersion string        `json:"api_version"`
	Event      CheckoutEvent `json:"event"`
}

type CheckoutEvent struct {
	Type           string `json:"type"`
	ID             string `json:"id"`
	CustomerEmail  string `json:"customer_email"`
	SessionID      string `json:"session_id"`
	ProductID      string `json:"product_id"`
	PurchasedAtMs  int64  `json:"purchased_at_ms"`
	ExpirationAtMs int64  `json:"expiration_at_ms"`
	Environment    string `json:"environment"`
}
