package stripe

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

type Config struct {
	SecretKey          string   `mapstructure:"secret_key"`
	PubKey             string   `mapstructure:"pub_key"`
	Currency           string   `mapstructure:"currency"`
	PaymentMethodTypes []string `mapstructure:"payment_method_types"`
}

// Processor opens Stripe payment intents for ONLINE checkouts. COD orders
// never touch it.
type Processor struct {
	c *Config
}

func New(c *Config) (*Processor, error) {
	if c.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}
	if c.Currency == "" {
		c.Currency = "usd"
	}
	if len(c.PaymentMethodTypes) == 0 {
		c.PaymentMethodTypes = []string{"card"}
	}
	stripe.Key = c.SecretKey

	return &Processor{c: c}, nil
}

// CreateInvoice creates a PaymentIntent for the order total and returns the
// client secret the storefront needs to finish the payment.
func (p *Processor) CreateInvoice(ctx context.Context, orderUUID string, total decimal.Decimal) (string, error) {
	amountCents := total.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(p.c.Currency),
		PaymentMethodTypes: stripe.StringSlice(p.c.PaymentMethodTypes),
		Description:        stripe.String(fmt.Sprintf("order #%s", orderUUID)),
		Metadata: map[string]string{
			"order_id": orderUUID,
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create PaymentIntent: %w", err)
	}

	return pi.ClientSecret, nil
}
