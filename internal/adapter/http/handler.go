// Package http provides the HTTP handler layer for the offer search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/kingcrud12/easy-flight-project/internal/account"
	"github.com/kingcrud12/easy-flight-project/internal/adapter/http/response"
	"github.com/kingcrud12/easy-flight-project/internal/billing"
	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/logger"
	"github.com/kingcrud12/easy-flight-project/internal/quota"
	"github.com/kingcrud12/easy-flight-project/internal/usecase"
)

// Identity headers. Anonymous callers are tracked by session ID; logged-in
// callers by their opaque account token.
const (
	HeaderSessionID = "X-Session-ID"
	HeaderUserToken = "X-User-Token"
)

// OfferHandler handles HTTP requests for search, auth and billing endpoints.
type OfferHandler struct {
	search  usecase.OfferSearchUseCase
	quota   *quota.Service
	users   account.Store
	billing *billing.Service
	log     *logger.Logger
}

// NewOfferHandler creates a new OfferHandler. A nil log falls back to a
// no-op logger.
func NewOfferHandler(search usecase.OfferSearchUseCase, quotas *quota.Service, users account.Store, bill *billing.Service, log *logger.Logger) *OfferHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &OfferHandler{
		search:  search,
		quota:   quotas,
		users:   users,
		billing: bill,
		log:     log,
	}
}

// SearchOffers handles GET /api/v1/flights/search
//
// @Summary Search for flight offers
// @Description Search for flight offers across multiple providers, metered by the free-search quota
// @Tags flights
// @Produce json
// @Param departure_id query string true "Departure IATA code"
// @Param arrival_id query string true "Arrival IATA code"
// @Param outbound_date query string true "Outbound date (YYYY-MM-DD)"
// @Param return_date query string false "Return date (YYYY-MM-DD)"
// @Param currency query string false "ISO 4217 currency code"
// @Param max_price query number false "Maximum price filter"
// @Param max_stops query integer false "Maximum stops filter"
// @Param airlines query string false "Comma-separated airline whitelist"
// @Param sort_by query string false "Provider sort hint"
// @Param top_n query integer false "Maximum number of offers (1-100)"
// @Param X-Session-ID header string false "Anonymous session identifier"
// @Param X-User-Token header string false "Account token"
// @Success 200 {object} domain.SearchResult
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 402 {object} response.QuotaExceededResponse "Quota exhausted"
// @Failure 502 {object} response.ErrorDetail "Provider unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/flights/search [get]
func (h *OfferHandler) SearchOffers(c echo.Context) error {
	var req SearchOffersRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	ctx := c.Request().Context()

	user, err := h.currentUser(ctx, c)
	if err != nil {
		return response.InternalServerError(c)
	}

	// The session ID comes back in a response header so anonymous clients
	// can persist it for subsequent requests.
	sessionID := quota.EnsureSessionID(c.Request().Header.Get(HeaderSessionID))
	c.Response().Header().Set(HeaderSessionID, sessionID)

	allowed, _, err := h.checkQuota(ctx, sessionID, user)
	if err != nil {
		return response.InternalServerError(c)
	}
	if !allowed {
		return response.QuotaExceeded(c, user == nil)
	}

	criteria := ToDomainCriteria(&req)
	result, err := h.search.Search(ctx, criteria)
	if err != nil {
		return h.handleSearchError(c, err)
	}

	// A failed charge must not cost the caller their successful result.
	if err := h.quota.Increment(ctx, sessionID, user); err != nil {
		h.log.Error().Err(err).Msg("Failed to charge search quota")
	}

	return response.SearchResults(c, result)
}

// Login handles POST /api/v1/auth/login
//
// @Summary Log in or register by email
// @Description Finds or creates the account for the given email and returns its token and quota
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} response.ErrorDetail "Invalid email"
// @Router /api/v1/auth/login [post]
func (h *OfferHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	email := account.NormalizeEmail(req.Email)
	if email == "" {
		return response.BadRequest(c, "A valid email is required")
	}

	ctx := c.Request().Context()

	user, err := h.users.GetByEmail(ctx, email)
	if errors.Is(err, account.ErrNotFound) {
		user, err = h.users.Create(ctx, email)
	}
	if err != nil {
		return response.InternalServerError(c)
	}

	return h.loginResponse(c, user)
}

// Me handles GET /api/v1/auth/me
//
// @Summary Get the current account
// @Description Returns the account and quota for the X-User-Token header
// @Tags auth
// @Produce json
// @Param X-User-Token header string true "Account token"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} response.ErrorDetail "Unknown or missing token"
// @Router /api/v1/auth/me [get]
func (h *OfferHandler) Me(c echo.Context) error {
	user, err := h.currentUser(c.Request().Context(), c)
	if err != nil {
		return response.InternalServerError(c)
	}
	if user == nil {
		return response.Unauthorized(c, "Not logged in")
	}

	return h.loginResponse(c, user)
}

// Quota handles GET /api/v1/billing/quota
//
// @Summary Get the current search allowance
// @Tags billing
// @Produce json
// @Param X-Session-ID header string false "Anonymous session identifier"
// @Param X-User-Token header string false "Account token"
// @Success 200 {object} QuotaResponse
// @Router /api/v1/billing/quota [get]
func (h *OfferHandler) Quota(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.currentUser(ctx, c)
	if err != nil {
		return response.InternalServerError(c)
	}

	if user != nil {
		_, status, err := h.quota.CheckUser(ctx, user)
		if err != nil {
			return response.InternalServerError(c)
		}
		return response.OK(c, ToQuotaResponse(status))
	}

	sessionID := quota.EnsureSessionID(c.Request().Header.Get(HeaderSessionID))
	c.Response().Header().Set(HeaderSessionID, sessionID)

	_, status, err := h.quota.CheckSession(ctx, sessionID)
	if err != nil {
		return response.InternalServerError(c)
	}
	return response.OK(c, ToQuotaResponse(status))
}

// SubscriptionPrice handles GET /api/v1/billing/price
//
// @Summary Get the subscription price
// @Tags billing
// @Produce json
// @Success 200 {object} billing.Price
// @Failure 500 {object} response.ErrorDetail "Billing not configured"
// @Router /api/v1/billing/price [get]
func (h *OfferHandler) SubscriptionPrice(c echo.Context) error {
	price, err := h.billing.SubscriptionPrice(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return response.InternalServerErrorWithMessage(c, "Stripe is not configured on the server")
		}
		return response.BadRequest(c, "Stripe error: "+err.Error())
	}
	return response.OK(c, price)
}

// CreateCheckoutSession handles POST /api/v1/billing/session
//
// @Summary Start a subscription checkout
// @Description Creates a Stripe Checkout session for the authenticated account
// @Tags billing
// @Accept json
// @Produce json
// @Param request body CheckoutSessionRequest false "Checkout payload"
// @Param X-User-Token header string true "Account token"
// @Success 200 {object} billing.CheckoutSession
// @Failure 400 {object} response.ErrorDetail "Already subscribed or Stripe error"
// @Failure 401 {object} response.ErrorDetail "Not logged in"
// @Router /api/v1/billing/session [post]
func (h *OfferHandler) CreateCheckoutSession(c echo.Context) error {
	var req CheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	ctx := c.Request().Context()

	user, err := h.currentUser(ctx, c)
	if err != nil {
		return response.InternalServerError(c)
	}
	if user == nil {
		return response.Unauthorized(c, "Log in to subscribe")
	}

	session, err := h.billing.CreateCheckoutSession(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrAlreadySubscribed):
			return response.BadRequest(c, "Subscription is already active")
		case errors.Is(err, domain.ErrNotConfigured):
			return response.InternalServerErrorWithMessage(c, "Stripe is not configured on the server")
		default:
			return response.BadRequest(c, "Stripe error: "+err.Error())
		}
	}

	return response.OK(c, session)
}

// StripeWebhook handles POST /api/v1/stripe/webhook
//
// @Summary Process Stripe webhook events
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} WebhookAck
// @Failure 400 {object} response.ErrorDetail "Invalid payload or signature"
// @Failure 500 {object} response.ErrorDetail "Webhook not configured"
// @Router /api/v1/stripe/webhook [post]
func (h *OfferHandler) StripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "Failed to read webhook payload")
	}

	err = h.billing.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotConfigured):
			return response.InternalServerErrorWithMessage(c, "Stripe webhook is not configured on the server")
		case errors.Is(err, billing.ErrInvalidWebhook):
			return response.BadRequest(c, "Invalid webhook payload or signature")
		default:
			return response.InternalServerError(c)
		}
	}

	return response.OK(c, &WebhookAck{Status: "success"})
}

// Health handles GET /health
// Simple health check endpoint.
func (h *OfferHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// currentUser resolves the X-User-Token header to an account. A missing or
// unknown token yields a nil user, not an error.
func (h *OfferHandler) currentUser(ctx context.Context, c echo.Context) (*account.User, error) {
	token := c.Request().Header.Get(HeaderUserToken)
	if token == "" {
		return nil, nil
	}

	user, err := h.users.GetByToken(ctx, token)
	if errors.Is(err, account.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// checkQuota routes the quota check to the user or session meter.
func (h *OfferHandler) checkQuota(ctx context.Context, sessionID string, user *account.User) (bool, quota.Status, error) {
	if user != nil {
		return h.quota.CheckUser(ctx, user)
	}
	return h.quota.CheckSession(ctx, sessionID)
}

// loginResponse builds the shared login/me payload with a fresh quota check.
func (h *OfferHandler) loginResponse(c echo.Context, user *account.User) error {
	_, status, err := h.quota.CheckUser(c.Request().Context(), user)
	if err != nil {
		return response.InternalServerError(c)
	}

	return response.OK(c, &LoginResponse{
		Token:              user.Token,
		Email:              user.Email,
		SubscriptionActive: user.SubscriptionActive,
		Remaining:          status.Remaining,
		Limit:              status.Limit,
	})
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *OfferHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleSearchError maps search errors to appropriate HTTP responses.
func (h *OfferHandler) handleSearchError(c echo.Context, err error) error {
	// A missing primary-provider credential is a server misconfiguration.
	if errors.Is(err, domain.ErrNotConfigured) {
		return response.InternalServerErrorWithMessage(c, "Search provider API key is not configured on the server")
	}

	// An upstream provider failure surfaces as a bad gateway.
	var unavailable *domain.ProviderUnavailableError
	if errors.As(err, &unavailable) {
		return response.BadGateway(c, "")
	}

	if errors.Is(err, domain.ErrNoProviders) {
		return response.ServiceUnavailable(c)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	if errors.Is(err, domain.ErrInvalidRequest) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	return response.InternalServerError(c)
}
