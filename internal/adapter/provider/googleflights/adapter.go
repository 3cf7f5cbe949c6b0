package googleflights

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
)

const (
	// ProviderName is the registry name and the Source stamped on offers.
	ProviderName = "google_flights"

	defaultBaseURL = "https://serpapi.com/search.json"
	defaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an upstream error body is carried into
	// the returned error.
	maxErrorBody = 500
)

// Adapter fetches structured flight offers from the SerpApi Google Flights
// engine. It is the primary provider: callers treat its absence or failure as
// fatal for the whole search.
type Adapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAdapter creates an adapter against the production endpoint.
func NewAdapter(apiKey string) *Adapter {
	return NewAdapterWithClient(apiKey, defaultBaseURL, &http.Client{Timeout: defaultTimeout})
}

// NewAdapterWithClient creates an adapter with a custom endpoint and client.
// Tests point baseURL at an httptest server.
func NewAdapterWithClient(apiKey, baseURL string, client *http.Client) *Adapter {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Adapter{apiKey: apiKey, baseURL: baseURL, client: client}
}

// Name implements domain.OfferProvider.
func (a *Adapter) Name() string {
	return ProviderName
}

// Fetch implements domain.OfferProvider. It returns domain.ErrNotConfigured
// when no API key is set, and a domain.ProviderUnavailableError for transport
// failures, non-2xx responses and malformed bodies.
func (a *Adapter) Fetch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Offer, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("%w: google flights API key is not set", domain.ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build google flights request: %w", err)
	}
	req.URL.RawQuery = a.query(criteria).Encode()

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, domain.NewProviderUnavailable(ProviderName, 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewProviderUnavailable(ProviderName, resp.StatusCode, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewProviderUnavailable(ProviderName, resp.StatusCode, excerpt(body))
	}

	payload, err := decodeSearchResponse(body)
	if err != nil {
		return nil, domain.NewProviderUnavailable(ProviderName, resp.StatusCode, "malformed response body")
	}

	return normalize(payload, criteria), nil
}

// query builds the engine parameters for one search.
func (a *Adapter) query(criteria domain.SearchCriteria) url.Values {
	q := url.Values{}
	q.Set("engine", "google_flights")
	q.Set("departure_id", criteria.DepartureID)
	q.Set("arrival_id", criteria.ArrivalID)
	q.Set("outbound_date", criteria.OutboundDate)
	q.Set("currency", criteria.Currency)
	q.Set("hl", "en")
	q.Set("api_key", a.apiKey)

	if criteria.ReturnDate != "" {
		q.Set("return_date", criteria.ReturnDate)
	}
	if criteria.MaxPrice != nil {
		// The engine expects an integer ceiling.
		q.Set("max_price", strconv.Itoa(int(*criteria.MaxPrice)))
	}
	if criteria.SortHint != "" {
		q.Set("sort_by", criteria.SortHint)
	}
	return q
}

// excerpt truncates an upstream error body for inclusion in an error message.
func excerpt(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}
