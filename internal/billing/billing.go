// Package billing handles the subscription lifecycle through Stripe:
// price lookup, checkout-session creation and webhook processing.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"

	"github.com/kingcrud12/easy-flight-project/internal/account"
	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/email"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/logger"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/timeutil"
)

// Sentinel errors surfaced to the HTTP layer.
var (
	ErrAlreadySubscribed = errors.New("subscription already active")
	ErrInvalidWebhook    = errors.New("invalid webhook payload")
)

// Config holds the Stripe settings and the frontend base URL used for
// checkout redirects.
type Config struct {
	SecretKey     string
	PriceID       string
	WebhookSecret string
	FrontendURL   string
}

// StripeClient abstracts the Stripe SDK calls the service needs.
type StripeClient interface {
	GetPrice(priceID string) (*stripe.Price, error)
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}

// Price is a displayable subscription price.
type Price struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// CheckoutSession points the frontend at a hosted checkout page.
type CheckoutSession struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// Service drives the subscription flow.
type Service struct {
	cfg    Config
	client StripeClient
	users  account.Store
	mailer *email.Mailer
	clock  timeutil.Clock
	log    *logger.Logger
}

// NewService creates a billing service. A nil client falls back to the real
// Stripe SDK.
func NewService(cfg Config, client StripeClient, users account.Store, mailer *email.Mailer, clock timeutil.Clock, log *logger.Logger) *Service {
	if client == nil {
		client = newSDKClient(cfg)
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{cfg: cfg, client: client, users: users, mailer: mailer, clock: clock, log: log}
}

// Configured reports whether checkout can be offered.
func (s *Service) Configured() bool {
	return s.cfg.SecretKey != "" && s.cfg.PriceID != ""
}

// WebhookConfigured reports whether webhook signatures can be verified.
func (s *Service) WebhookConfigured() bool {
	return s.cfg.WebhookSecret != ""
}

// SubscriptionPrice fetches the current subscription price.
func (s *Service) SubscriptionPrice(_ context.Context) (Price, error) {
	if !s.Configured() {
		return Price{}, fmt.Errorf("%w: stripe is not set up", domain.ErrNotConfigured)
	}

	p, err := s.client.GetPrice(s.cfg.PriceID)
	if err != nil {
		return Price{}, fmt.Errorf("retrieve price: %w", err)
	}

	amount := p.UnitAmount
	if amount == 0 {
		amount = 1000
	}
	currency := strings.ToUpper(string(p.Currency))
	if currency == "" {
		currency = "EUR"
	}
	return Price{
		Amount:    amount,
		Currency:  currency,
		Formatted: fmt.Sprintf("%.2f %s", float64(amount)/100, currency),
	}, nil
}

// CreateCheckoutSession opens a hosted checkout for the given user. Users
// with an active subscription are rejected.
func (s *Service) CreateCheckoutSession(_ context.Context, user *account.User) (CheckoutSession, error) {
	if !s.Configured() {
		return CheckoutSession{}, fmt.Errorf("%w: stripe is not set up", domain.ErrNotConfigured)
	}
	if user.SubscriptionActive {
		return CheckoutSession{}, ErrAlreadySubscribed
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(s.cfg.PriceID), Quantity: stripe.Int64(1)},
		},
		CustomerEmail: stripe.String(user.Email),
		SuccessURL:    stripe.String(s.cfg.FrontendURL + "/success.html?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(s.cfg.FrontendURL + "/index.html"),
	}
	params.AddMetadata("email", user.Email)
	params.AddMetadata("user_token", user.Token)

	sess, err := s.client.CreateCheckoutSession(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return CheckoutSession{CheckoutURL: sess.URL, SessionID: sess.ID}, nil
}

// webhookObject is the slice of the event payload the service acts on.
type webhookObject struct {
	ID          string            `json:"id"`
	Customer    string            `json:"customer"`
	AmountTotal int64             `json:"amount_total"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata"`
}

// HandleWebhook verifies and processes one Stripe event. Unknown event types
// are acknowledged without action.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.WebhookConfigured() {
		return fmt.Errorf("%w: stripe webhook secret is not set", domain.ErrNotConfigured)
	}

	event, err := s.client.ConstructEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	var obj webhookObject
	if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.activateSubscription(ctx, obj)
	case "invoice.payment_failed", "customer.subscription.deleted":
		return s.suspendSubscription(ctx, obj, string(event.Type))
	default:
		s.log.Debug().Str("event_type", string(event.Type)).Msg("ignoring stripe event")
		return nil
	}
}

// activateSubscription flips the paying user to unmetered and mails a
// receipt. A missing or unknown user token is logged, not failed, so Stripe
// does not redeliver the event forever.
func (s *Service) activateSubscription(ctx context.Context, obj webhookObject) error {
	token := obj.Metadata["user_token"]
	if token == "" {
		s.log.Warn().Msg("checkout completed without user_token metadata")
		return nil
	}

	user, err := s.users.GetByToken(ctx, token)
	if errors.Is(err, account.ErrNotFound) {
		s.log.Warn().Msg("checkout completed for unknown user token")
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve paying user: %w", err)
	}

	now := s.clock.Now()
	active := true
	zero := 0
	upd := account.Update{
		SubscriptionActive: &active,
		FreeCount:          &zero,
		LastReset:          &now,
	}
	if obj.Customer != "" {
		customer := obj.Customer
		upd.StripeCustomerID = &customer
	}
	if err := s.users.Update(ctx, user.Email, upd); err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}
	s.log.Info().Str("email", user.Email).Msg("subscription activated")

	if s.mailer != nil {
		currency := obj.Currency
		if currency == "" {
			currency = "eur"
		}
		details := email.SubscriptionConfirmation{
			Amount:        float64(obj.AmountTotal) / 100,
			Currency:      currency,
			StartDate:     now.Format("02/01/2006"),
			EndDate:       now.AddDate(0, 0, 365).Format("02/01/2006"),
			TransactionID: obj.ID,
		}
		if err := s.mailer.SendSubscriptionConfirmation(ctx, user.Email, details); err != nil {
			// Mail is best-effort; the subscription is already active.
			s.log.Error().Err(err).Str("email", user.Email).Msg("confirmation email failed")
		}
	}
	return nil
}

// suspendSubscription deactivates the account tied to the billing customer.
func (s *Service) suspendSubscription(ctx context.Context, obj webhookObject, eventType string) error {
	user, err := s.users.GetByCustomerID(ctx, obj.Customer)
	if errors.Is(err, account.ErrNotFound) {
		s.log.Warn().Str("event_type", eventType).Msg("billing event for unknown customer")
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve billed user: %w", err)
	}

	inactive := false
	if err := s.users.Update(ctx, user.Email, account.Update{SubscriptionActive: &inactive}); err != nil {
		return fmt.Errorf("suspend subscription: %w", err)
	}
	s.log.Warn().Str("email", user.Email).Str("event_type", eventType).Msg("subscription suspended")
	return nil
}
