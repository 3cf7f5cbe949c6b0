package aviationstack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
)

const (
	// ProviderName is the registry name and the Source stamped on offers.
	ProviderName = "aviationstack"

	defaultBaseURL = "http://api.aviationstack.com/v1/flights"
	defaultTimeout = 20 * time.Second

	// maxLimit is the upstream page-size ceiling.
	maxLimit = 50
)

// Adapter fetches scheduled flights from Aviationstack. The upstream has no
// fares, so offers carry estimated prices derived from flight duration. It is
// an optional provider: when no access key is configured it yields nothing
// instead of failing the search.
type Adapter struct {
	accessKey string
	baseURL   string
	client    *http.Client
}

// NewAdapter creates an adapter against the production endpoint.
func NewAdapter(accessKey string) *Adapter {
	return NewAdapterWithClient(accessKey, defaultBaseURL, &http.Client{Timeout: defaultTimeout})
}

// NewAdapterWithClient creates an adapter with a custom endpoint and client.
// Tests point baseURL at an httptest server.
func NewAdapterWithClient(accessKey, baseURL string, client *http.Client) *Adapter {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Adapter{accessKey: accessKey, baseURL: baseURL, client: client}
}

// Name implements domain.OfferProvider.
func (a *Adapter) Name() string {
	return ProviderName
}

// Fetch implements domain.OfferProvider. An unset access key is not an
// error: the provider simply contributes nothing.
func (a *Adapter) Fetch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Offer, error) {
	if a.accessKey == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build aviationstack request: %w", err)
	}
	req.URL.RawQuery = a.query(criteria).Encode()

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, domain.NewProviderUnavailable(ProviderName, 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewProviderUnavailable(ProviderName, resp.StatusCode, "aviationstack request failed")
	}

	var payload flightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.NewProviderUnavailable(ProviderName, resp.StatusCode, "malformed response body")
	}

	return normalize(&payload, criteria), nil
}

// query builds the request parameters. The limit is doubled relative to
// TopN because schedule entries are filtered further during normalization.
func (a *Adapter) query(criteria domain.SearchCriteria) url.Values {
	q := url.Values{}
	q.Set("access_key", a.accessKey)
	q.Set("dep_iata", criteria.DepartureID)
	q.Set("arr_iata", criteria.ArrivalID)
	q.Set("flight_status", "scheduled")

	limit := criteria.TopN * 2
	if limit > maxLimit {
		limit = maxLimit
	}
	q.Set("limit", strconv.Itoa(limit))

	if criteria.OutboundDate != "" {
		q.Set("flight_date", criteria.OutboundDate)
	}
	return q
}
