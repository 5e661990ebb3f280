package paymentgw

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// MercadoPagoProvider modela el intent como una preferencia de
// checkout: la referencia es el ID de la preferencia y el "secret" es
// el init point que abre el flujo de pago.
type MercadoPagoProvider struct {
	client   preference.Client
	currency string
}

func NewMercadoPagoProvider(accessToken, currency string) (*MercadoPagoProvider, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: invalid credentials: %w", err)
	}

	return &MercadoPagoProvider{
		client:   preference.NewClient(cfg),
		currency: strings.ToUpper(currency),
	}, nil
}

func (p *MercadoPagoProvider) CreateIntent(ctx context.Context, amount float64) (*Intent, error) {
	req := preference.Request{
		ExternalReference: uuid.NewString(),
		Items: []preference.ItemRequest{
			{
				Title:      "Reserva mdbarber",
				Quantity:   1,
				UnitPrice:  amount,
				CurrencyID: p.currency,
			},
		},
	}

	resp, err := p.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: failed to create preference: %w", err)
	}

	return &Intent{
		Reference:    resp.ID,
		ClientSecret: resp.InitPoint,
	}, nil
}

var _ Provider = (*MercadoPagoProvider)(nil)
