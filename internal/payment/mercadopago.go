package payment

import (
	"context"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	mprefund "github.com/mercadopago/sdk-go/pkg/refund"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
)

type MercadoPagoGateway struct {
	payments mppayment.Client
	refunds  mprefund.Client
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPagoGateway{
		payments: mppayment.NewClient(cfg),
		refunds:  mprefund.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) CreateCharge(
	ctx context.Context,
	in CreateChargingInput,
) (*Charge, error) {

	res, err := g.payments.Create(ctx, mppayment.Request{
		TransactionAmount: in.Amount,
		Token:             in.CardToken,
		Description:       in.Description,
		PaymentMethodID:   in.Method,
		Installments:      1,
		Payer: &mppayment.PayerRequest{
			Email: in.PayerEmail,
		},
	})
	if err != nil {
		return nil, err
	}

	return chargeFromResponse(res), nil
}

func (g *MercadoPagoGateway) GetCharge(
	ctx context.Context,
	id string,
) (*Charge, error) {

	paymentID, err := strconv.Atoi(id)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_transaction_id")
	}

	res, err := g.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return chargeFromResponse(res), nil
}

func (g *MercadoPagoGateway) Refund(ctx context.Context, id string) error {
	paymentID, err := strconv.Atoi(id)
	if err != nil {
		return httperr.ErrBusiness("invalid_transaction_id")
	}

	_, err = g.refunds.Create(ctx, paymentID)
	return err
}

func chargeFromResponse(res *mppayment.Response) *Charge {
	return &Charge{
		ID:           strconv.Itoa(res.ID),
		Status:       normalizeStatus(res.Status),
		CardLastFour: res.Card.LastFourDigits,
	}
}

func normalizeStatus(status string) string {
	switch status {
	case "approved":
		return StatusApproved
	case "refunded", "cancelled", "charged_back":
		return StatusRefunded
	case "rejected":
		return StatusRejected
	default:
		return StatusPending
	}
}

var _ Gateway = (*MercadoPagoGateway)(nil)
