// Package integration provides helpers and integration tests for the offer
// search system. Integration tests verify that components work together
// correctly, including HTTP handlers, the search use case, quota metering and
// mock providers.
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v82"

	"github.com/kingcrud12/easy-flight-project/internal/account"
	httpAdapter "github.com/kingcrud12/easy-flight-project/internal/adapter/http"
	"github.com/kingcrud12/easy-flight-project/internal/billing"
	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/timeutil"
	"github.com/kingcrud12/easy-flight-project/internal/quota"
	"github.com/kingcrud12/easy-flight-project/internal/usecase"
)

// FreeLimit is the free-search allowance used by test servers.
const FreeLimit = 3

// TestServer wraps an Echo instance and provides helper methods for
// integration testing. The account and session stores are exposed so tests
// can seed and inspect quota state.
type TestServer struct {
	Echo     *echo.Echo
	Handler  *httpAdapter.OfferHandler
	Users    account.Store
	Sessions quota.SessionStore
	Quota    *quota.Service
	Clock    *timeutil.MockClock
}

// NewTestServer creates a new test server over the given use case with
// in-memory account and session stores. Billing is left unconfigured; the
// billing endpoints have their own unit tests.
func NewTestServer(uc usecase.OfferSearchUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	clock := timeutil.NewMockClockFromString("2026-08-01T12:00:00Z")
	users := account.NewMemoryStore(clock)
	sessions := quota.NewMemorySessionStore()
	quotas := quota.NewService(sessions, users, FreeLimit, clock)
	bill := billing.NewService(billing.Config{}, noopStripe{}, users, nil, clock, nil)

	handler := httpAdapter.NewOfferHandler(uc, quotas, users, bill, nil)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:     e,
		Handler:  handler,
		Users:    users,
		Sessions: sessions,
		Quota:    quotas,
		Clock:    clock,
	}
}

// noopStripe satisfies billing.StripeClient without doing anything. The
// test server's billing config is empty, so these methods are unreachable.
type noopStripe struct{}

func (noopStripe) GetPrice(string) (*stripe.Price, error) {
	return nil, errors.New("stripe not configured in tests")
}

func (noopStripe) CreateCheckoutSession(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return nil, errors.New("stripe not configured in tests")
}

func (noopStripe) ConstructEvent([]byte, string) (stripe.Event, error) {
	return stripe.Event{}, errors.New("stripe not configured in tests")
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
	Headers     map[string]string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest performs a GET search with the given query string and headers.
func (ts *TestServer) SearchRequest(query string, headers map[string]string) Response {
	return ts.Do(Request{
		Method:  http.MethodGet,
		Path:    "/api/v1/flights/search?" + query,
		Headers: headers,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResult parses the response body as a SearchResult.
func (r *Response) ParseSearchResult() (*domain.SearchResult, error) {
	var result domain.SearchResult
	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// DefaultQuery returns a valid search query string.
func DefaultQuery() string {
	return "departure_id=CDG&arrival_id=JFK&outbound_date=2026-09-10"
}

// CreateUseCase creates a use case over the given providers with default
// configuration. Registration order fixes merge priority; the first provider
// is primary.
func CreateUseCase(providers ...domain.OfferProvider) usecase.OfferSearchUseCase {
	return CreateUseCaseWithConfig(nil, providers...)
}

// CreateUseCaseWithConfig creates a use case with custom configuration.
func CreateUseCaseWithConfig(config *usecase.Config, providers ...domain.OfferProvider) usecase.OfferSearchUseCase {
	registry := domain.NewProviderRegistry()
	for _, p := range providers {
		registry.Register(p)
	}
	return usecase.NewOfferSearchUseCase(registry, config, nil)
}

// DefaultSearchCriteria returns valid search criteria with defaults applied.
func DefaultSearchCriteria() domain.SearchCriteria {
	criteria := domain.SearchCriteria{
		DepartureID:  "CDG",
		ArrivalID:    "JFK",
		OutboundDate: "2026-09-10",
	}
	criteria.SetDefaults()
	return criteria
}
