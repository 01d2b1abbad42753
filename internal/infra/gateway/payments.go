package gateway

import (
	"context"
	"net/http"

	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

// PaymentProcessorClient drives the payment step of the booking workflow and
// serves payment lookups for the detail view.
type PaymentProcessorClient struct {
	*client
	base string
}

func NewPaymentProcessorClient(cfg config.UpstreamConfig) *PaymentProcessorClient {
	return &PaymentProcessorClient{
		client: newClient(cfg),
		base:   cfg.PaymentProcessorURL,
	}
}

type paymentPayload struct {
	ID            int64   `json:"id"`
	ReservationID string  `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
}

func (g *PaymentProcessorClient) Charge(ctx context.Context, reservationID uuid.UUID, amountCents int64) (*commands.PaymentReceipt, error) {
	body := map[string]any{
		"reservation_id": reservationID.String(),
		"amount":         float64(amountCents) / 100.0,
	}

	var payload paymentPayload
	if _, err := g.sendJSON(ctx, http.MethodPost, g.base+"/pay", body, &payload); err != nil {
		return nil, err
	}

	return &commands.PaymentReceipt{
		ID:            payload.ID,
		ReservationID: reservationID,
		AmountCents:   toCents(payload.Amount),
		Status:        payload.Status,
	}, nil
}

func (g *PaymentProcessorClient) FetchPayment(ctx context.Context, reservationID uuid.UUID) (string, int64, error) {
	var payload paymentPayload
	if _, err := g.getJSON(ctx, joinURL(g.base, "/payments/%s", reservationID), &payload); err != nil {
		return "", 0, err
	}
	return payload.Status, toCents(payload.Amount), nil
}
