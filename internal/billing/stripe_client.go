package billing

import (
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/webhook"
)

// sdkClient is the StripeClient backed by the real Stripe SDK.
type sdkClient struct {
	webhookSecret string
}

func newSDKClient(cfg Config) *sdkClient {
	stripe.Key = cfg.SecretKey
	return &sdkClient{webhookSecret: cfg.WebhookSecret}
}

func (c *sdkClient) GetPrice(priceID string) (*stripe.Price, error) {
	return price.Get(priceID, nil)
}

func (c *sdkClient) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

func (c *sdkClient) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, c.webhookSecret)
}

var _ StripeClient = (*sdkClient)(nil)
