package billing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"github.com/kingcrud12/easy-flight-project/internal/account"
	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/logger"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/timeutil"
)

// fakeStripe is a scripted StripeClient.
type fakeStripe struct {
	price      *stripe.Price
	priceErr   error
	session    *stripe.CheckoutSession
	sessionErr error
	lastParams *stripe.CheckoutSessionParams

	event    stripe.Event
	eventErr error
}

func (f *fakeStripe) GetPrice(string) (*stripe.Price, error) {
	return f.price, f.priceErr
}

func (f *fakeStripe) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.lastParams = params
	return f.session, f.sessionErr
}

func (f *fakeStripe) ConstructEvent([]byte, string) (stripe.Event, error) {
	return f.event, f.eventErr
}

func testService(t *testing.T, client StripeClient) (*Service, account.Store, *timeutil.MockClock) {
	t.Helper()
	clock := timeutil.NewMockClockFromString("2026-08-01T12:00:00Z")
	users := account.NewMemoryStore(clock)
	cfg := Config{
		SecretKey:     "sk_test",
		PriceID:       "price_123",
		WebhookSecret: "whsec_test",
		FrontendURL:   "https://app.example.com",
	}
	return NewService(cfg, client, users, nil, clock, logger.Nop()), users, clock
}

func eventWith(t *testing.T, eventType string, obj map[string]any) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(obj)
	require.NoError(t, err)
	return stripe.Event{Type: stripe.EventType(eventType), Data: &stripe.EventData{Raw: raw}}
}

// TestService_Configured tests the configuration checks.
func TestService_Configured(t *testing.T) {
	svc, _, _ := testService(t, &fakeStripe{})
	assert.True(t, svc.Configured())
	assert.True(t, svc.WebhookConfigured())

	bare := NewService(Config{}, &fakeStripe{}, nil, nil, nil, nil)
	assert.False(t, bare.Configured())
	assert.False(t, bare.WebhookConfigured())
}

// TestService_SubscriptionPrice tests price lookup and its fallbacks.
func TestService_SubscriptionPrice(t *testing.T) {
	client := &fakeStripe{price: &stripe.Price{UnitAmount: 4999, Currency: stripe.CurrencyUSD}}
	svc, _, _ := testService(t, client)

	p, err := svc.SubscriptionPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4999), p.Amount)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "49.99 USD", p.Formatted)

	// Zero amount and empty currency fall back to defaults.
	client.price = &stripe.Price{}
	p, err = svc.SubscriptionPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), p.Amount)
	assert.Equal(t, "EUR", p.Currency)
	assert.Equal(t, "10.00 EUR", p.Formatted)

	client.price, client.priceErr = nil, errors.New("stripe down")
	_, err = svc.SubscriptionPrice(context.Background())
	assert.Error(t, err)

	unconfigured := NewService(Config{}, client, nil, nil, nil, nil)
	_, err = unconfigured.SubscriptionPrice(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

// TestService_CreateCheckoutSession tests checkout creation.
func TestService_CreateCheckoutSession(t *testing.T) {
	client := &fakeStripe{session: &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/cs_1"}}
	svc, users, _ := testService(t, client)

	user, err := users.Create(context.Background(), "user@example.com")
	require.NoError(t, err)

	sess, err := svc.CreateCheckoutSession(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/cs_1", sess.CheckoutURL)
	assert.Equal(t, "cs_1", sess.SessionID)

	require.NotNil(t, client.lastParams)
	assert.Equal(t, "user@example.com", *client.lastParams.CustomerEmail)
	assert.Equal(t, "https://app.example.com/success.html?session_id={CHECKOUT_SESSION_ID}", *client.lastParams.SuccessURL)
	assert.Equal(t, user.Token, client.lastParams.Metadata["user_token"])

	user.SubscriptionActive = true
	_, err = svc.CreateCheckoutSession(context.Background(), user)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

// TestService_HandleWebhook_CheckoutCompleted tests subscription activation.
func TestService_HandleWebhook_CheckoutCompleted(t *testing.T) {
	ctx := context.Background()
	client := &fakeStripe{}
	svc, users, clock := testService(t, client)

	user, err := users.Create(ctx, "user@example.com")
	require.NoError(t, err)
	count := 3
	require.NoError(t, users.Update(ctx, "user@example.com", account.Update{FreeCount: &count}))

	client.event = eventWith(t, "checkout.session.completed", map[string]any{
		"id":           "cs_1",
		"customer":     "cus_42",
		"amount_total": 4999,
		"currency":     "usd",
		"metadata":     map[string]string{"user_token": user.Token},
	})

	require.NoError(t, svc.HandleWebhook(ctx, []byte("{}"), "sig"))

	fresh, err := users.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, fresh.SubscriptionActive)
	assert.Equal(t, 0, fresh.FreeCount)
	assert.Equal(t, clock.Now(), fresh.LastReset)
	assert.Equal(t, "cus_42", fresh.StripeCustomerID)
}

// TestService_HandleWebhook_UnknownToken verifies unknown tokens are
// acknowledged without failing the delivery.
func TestService_HandleWebhook_UnknownToken(t *testing.T) {
	client := &fakeStripe{}
	svc, _, _ := testService(t, client)

	client.event = eventWith(t, "checkout.session.completed", map[string]any{
		"metadata": map[string]string{"user_token": "nope"},
	})
	assert.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	client.event = eventWith(t, "checkout.session.completed", map[string]any{})
	assert.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
}

// TestService_HandleWebhook_Suspension tests deactivation events.
func TestService_HandleWebhook_Suspension(t *testing.T) {
	for _, eventType := range []string{"invoice.payment_failed", "customer.subscription.deleted"} {
		t.Run(eventType, func(t *testing.T) {
			ctx := context.Background()
			client := &fakeStripe{}
			svc, users, _ := testService(t, client)

			_, err := users.Create(ctx, "user@example.com")
			require.NoError(t, err)
			active := true
			customer := "cus_42"
			require.NoError(t, users.Update(ctx, "user@example.com", account.Update{
				SubscriptionActive: &active,
				StripeCustomerID:   &customer,
			}))

			client.event = eventWith(t, eventType, map[string]any{"customer": "cus_42"})
			require.NoError(t, svc.HandleWebhook(ctx, []byte("{}"), "sig"))

			fresh, err := users.GetByEmail(ctx, "user@example.com")
			require.NoError(t, err)
			assert.False(t, fresh.SubscriptionActive)
		})
	}
}

// TestService_HandleWebhook_UnknownCustomer verifies suspension events for
// unknown customers are acknowledged.
func TestService_HandleWebhook_UnknownCustomer(t *testing.T) {
	client := &fakeStripe{}
	svc, _, _ := testService(t, client)

	client.event = eventWith(t, "invoice.payment_failed", map[string]any{"customer": "cus_missing"})
	assert.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
}

// TestService_HandleWebhook_Errors tests signature and configuration
// failures.
func TestService_HandleWebhook_Errors(t *testing.T) {
	client := &fakeStripe{eventErr: errors.New("bad signature")}
	svc, _, _ := testService(t, client)

	err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	assert.ErrorIs(t, err, ErrInvalidWebhook)

	unconfigured := NewService(Config{SecretKey: "sk", PriceID: "p"}, client, nil, nil, nil, nil)
	err = unconfigured.HandleWebhook(context.Background(), []byte("{}"), "sig")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

// TestService_HandleWebhook_IgnoresOtherEvents tests the default branch.
func TestService_HandleWebhook_IgnoresOtherEvents(t *testing.T) {
	client := &fakeStripe{}
	svc, _, _ := testService(t, client)

	client.event = eventWith(t, "customer.created", map[string]any{})
	assert.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
}
