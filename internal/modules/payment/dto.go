package payment

type CreateIntentRequest struct {
	BookingID *int64        `json:"booking_id,omitempty"`
	Currency  string        `json:"currency"`
	Packages  []PackageLine `json:"packages" binding:"required"`
}

type PackageLine struct {
	PackageID int64         `json:"package_id"`
	SubItems  []SubItemLine `json:"sub_items"`
}

type SubItemLine struct {
	SubPackageID int64    `json:"sub_package_id"`
	Price        *float64 `json:"price"`
	Quantity     *int     `json:"quantity,omitempty"`
}

type CreateIntentResponse struct {
	IntentID     string  `json:"intent_id"`
	ClientSecret string  `json:"client_secret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// ProcessorEvent is the verified, already-authenticated form of a webhook
// delivery.
type ProcessorEvent struct {
	Type     string
	IntentID string
}

const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)
