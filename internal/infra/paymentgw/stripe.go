package paymentgw

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

type StripeProvider struct {
	currency string
}

func NewStripeProvider(apiKey, currency string) *StripeProvider {
	stripe.Key = apiKey
	return &StripeProvider{currency: currency}
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amount float64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		// Stripe cobra en centavos
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(p.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	return &Intent{
		Reference:    pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

var _ Provider = (*StripeProvider)(nil)
