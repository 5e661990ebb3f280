package paymentgw

import "context"

// Intent es lo que el frontend necesita para cobrar: una referencia
// persistible y el secreto/URL que consume el widget de pago.
type Intent struct {
	Reference    string `json:"reference"`
	ClientSecret string `json:"client_secret"`
}

type Provider interface {
	CreateIntent(ctx context.Context, amount float64) (*Intent, error)
}
