package payment

import (
	"context"
	"log"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/cardtoken"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
)

// mercadoPagoGateway implements Gateway with the Mercado Pago card token
// API. Tokenization only; charging the stored method is handled by the
// billing backoffice, not this service.
type mercadoPagoGateway struct {
	client cardtoken.Client
}

// NewMercadoPagoGateway creates a Gateway from the configured access token.
func NewMercadoPagoGateway(accessToken string) (Gateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &mercadoPagoGateway{
		client: cardtoken.NewClient(cfg),
	}, nil
}

// TokenizeCard exchanges card details for an opaque token reference.
func (g *mercadoPagoGateway) TokenizeCard(ctx context.Context, card CardDetails) (string, error) {
	if _, err := strconv.Atoi(card.ExpirationMonth); err != nil {
		return "", ErrCard
	}
	if _, err := strconv.Atoi(card.ExpirationYear); err != nil {
		return "", ErrCard
	}

	req := cardtoken.Request{
		CardNumber:      card.Number,
		ExpirationMonth: card.ExpirationMonth,
		ExpirationYear:  card.ExpirationYear,
		SecurityCode:    card.SecurityCode,
		Cardholder: &cardtoken.CardholderRequest{
			Name: card.HolderName,
		},
	}

	resource, err := g.client.Create(ctx, req)
	if err != nil {
		// The SDK does not expose a typed decline error; anything the token
		// endpoint rejects is treated as a card problem for the user while the
		// underlying cause goes to the log.
		log.Printf("ERROR: Card tokenization failed: %v", err)
		return "", ErrCard
	}
	return resource.ID, nil
}
