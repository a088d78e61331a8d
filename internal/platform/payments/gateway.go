package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// Intent is the subset of a gateway payment intent the API exposes to
// clients. ClientSecret is what the frontend needs to confirm the card.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway creates card payment intents with an external processor.
type Gateway interface {
	CreateCardIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error)
}

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateCardIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}
