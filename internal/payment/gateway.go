package payment

import "context"

// Normalized charge outcomes; gateway-specific statuses are mapped here.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
	StatusRefunded = "refunded"
)

type Charge struct {
	ID           string
	Status       string
	CardLastFour string
}

type CreateChargingInput struct {
	Amount      float64
	Description string

	CardToken  string
	Method     string // visa | mastercard
	PayerEmail string
}

// Gateway is the card processor seen by the booking core. It only needs
// "charge", "look a charge up" and "refund".
type Gateway interface {
	CreateCharge(ctx context.Context, in CreateChargingInput) (*Charge, error)
	GetCharge(ctx context.Context, id string) (*Charge, error)
	Refund(ctx context.Context, id string) error
}
