package aviasales

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/timeutil"
)

const (
	// ProviderName is the registry name and the Source stamped on offers.
	ProviderName = "aviasales"

	defaultBaseURL = "https://api.travelpayouts.com/aviasales/v3/prices_for_dates"
	defaultTimeout = 20 * time.Second

	// maxLimit is the upstream page-size ceiling.
	maxLimit = 50
)

// Adapter fetches cached fares from the Travelpayouts Aviasales data API.
// It is an optional provider: when no access token is configured it yields
// nothing instead of failing the search.
type Adapter struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewAdapter creates an adapter against the production endpoint.
func NewAdapter(token string) *Adapter {
	return NewAdapterWithClient(token, defaultBaseURL, &http.Client{Timeout: defaultTimeout})
}

// NewAdapterWithClient creates an adapter with a custom endpoint and client.
// Tests point baseURL at an httptest server.
func NewAdapterWithClient(token, baseURL string, client *http.Client) *Adapter {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Adapter{token: token, baseURL: baseURL, client: client}
}

// Name implements domain.OfferProvider.
func (a *Adapter) Name() string {
	return ProviderName
}

// Fetch implements domain.OfferProvider. An unset token is not an error: the
// provider simply contributes nothing.
func (a *Adapter) Fetch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Offer, error) {
	if a.token == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build aviasales request: %w", err)
	}
	req.URL.RawQuery = a.query(criteria).Encode()
	req.Header.Set("X-Access-Token", a.token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, domain.NewProviderUnavailable(ProviderName, 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewProviderUnavailable(ProviderName, resp.StatusCode, "aviasales request failed")
	}

	var payload pricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.NewProviderUnavailable(ProviderName, resp.StatusCode, "malformed response body")
	}

	return normalize(&payload, criteria), nil
}

// query builds the request parameters. Dates are only forwarded when they
// are well-formed, since the upstream rejects partial dates.
func (a *Adapter) query(criteria domain.SearchCriteria) url.Values {
	q := url.Values{}
	q.Set("origin", criteria.DepartureID)
	q.Set("destination", criteria.ArrivalID)
	q.Set("currency", criteria.Currency)

	limit := criteria.TopN
	if limit > maxLimit {
		limit = maxLimit
	}
	q.Set("limit", strconv.Itoa(limit))

	if timeutil.ValidDate(criteria.OutboundDate) {
		q.Set("departure_at", criteria.OutboundDate)
	}
	if timeutil.ValidDate(criteria.ReturnDate) {
		q.Set("return_at", criteria.ReturnDate)
	}
	return q
}
