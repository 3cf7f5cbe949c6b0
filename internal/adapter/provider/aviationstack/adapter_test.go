package aviationstack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
)

// TestAdapter_Name tests the Name method.
func TestAdapter_Name(t *testing.T) {
	adapter := NewAdapter("")
	assert.Equal(t, "aviationstack", adapter.Name())
}

// TestAdapter_ImplementsInterface ensures Adapter implements OfferProvider.
func TestAdapter_ImplementsInterface(t *testing.T) {
	var _ domain.OfferProvider = (*Adapter)(nil)
}

// TestAdapter_Fetch_NoKey verifies that a missing access key yields no
// offers and no error, without any HTTP call.
func TestAdapter_Fetch_NoKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	adapter := NewAdapterWithClient("", srv.URL, srv.Client())
	offers, err := adapter.Fetch(context.Background(), testCriteria())

	require.NoError(t, err)
	assert.Nil(t, offers)
	assert.False(t, called, "should not call upstream without an access key")
}

// TestAdapter_Fetch tests the Fetch method with various upstream payloads.
func TestAdapter_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		criteria   domain.SearchCriteria
		wantOffers int
		wantErr    bool
		checkFirst func(*testing.T, domain.Offer)
	}{
		{
			name:   "successful parsing with estimated price",
			status: http.StatusOK,
			body: `{
				"data": [
					{
						"flight_status": "scheduled",
						"departure": {"airport": "Charles de Gaulle", "iata": "CDG", "scheduled": "2026-09-10T14:00:00+00:00"},
						"arrival": {"airport": "John F Kennedy", "iata": "JFK", "scheduled": "2026-09-10T22:30:00+00:00"},
						"airline": {"name": "Air France"},
						"flight": {"number": "6", "iata": "AF006"}
					}
				]
			}`,
			criteria:   testCriteria(),
			wantOffers: 1,
			wantErr:    false,
			checkFirst: func(t *testing.T, o domain.Offer) {
				// 510 minutes -> 8.5h -> 60 + 8.5*40
				assert.Equal(t, float64(400), o.Price)
				assert.Equal(t, "USD", o.Currency)
				assert.Equal(t, "Air France", o.Airlines)
				assert.Equal(t, 0, o.Stops)
				require.NotNil(t, o.TotalDurationMin)
				assert.Equal(t, 510, *o.TotalDurationMin)
				assert.Equal(t, "CDG → JFK (AF006)", o.SegmentsSummary)
				assert.Equal(t, "scheduled", o.Type)
				assert.Equal(t, "https://www.google.com/travel/flights?hl=fr#flt=CDG.JFK", o.PurchaseURL)
				assert.Equal(t, "aviationstack", o.Source)
			},
		},
		{
			name:   "missing schedule times price a default hop",
			status: http.StatusOK,
			body: `{
				"data": [
					{
						"flight_status": "scheduled",
						"departure": {"iata": "CDG"},
						"arrival": {"iata": "JFK"},
						"airline": {"name": "Air France"},
						"flight": {"number": "8"}
					}
				]
			}`,
			criteria:   testCriteria(),
			wantOffers: 1,
			wantErr:    false,
			checkFirst: func(t *testing.T, o domain.Offer) {
				// unknown duration -> 90 min floor -> 60 + 1.5*40
				assert.Equal(t, float64(120), o.Price)
				assert.Nil(t, o.TotalDurationMin)
				assert.Equal(t, "CDG → JFK (8)", o.SegmentsSummary)
			},
		},
		{
			name:   "sub-hour trips are priced at the one-hour floor",
			status: http.StatusOK,
			body: `{
				"data": [
					{
						"flight_status": "scheduled",
						"departure": {"iata": "AMS", "scheduled": "2026-09-10T09:00:00+00:00"},
						"arrival": {"iata": "BRU", "scheduled": "2026-09-10T09:40:00+00:00"},
						"airline": {"name": "KLM"},
						"flight": {}
					}
				]
			}`,
			criteria:   testCriteria(),
			wantOffers: 1,
			wantErr:    false,
			checkFirst: func(t *testing.T, o domain.Offer) {
				assert.Equal(t, float64(100), o.Price)
				require.NotNil(t, o.TotalDurationMin)
				assert.Equal(t, 40, *o.TotalDurationMin)
				assert.Equal(t, "AMS → BRU", o.SegmentsSummary)
			},
		},
		{
			name:   "falls back to airport names without IATA codes",
			status: http.StatusOK,
			body: `{
				"data": [
					{
						"flight_status": "scheduled",
						"departure": {"airport": "Charles de Gaulle"},
						"arrival": {"airport": "John F Kennedy"},
						"airline": {},
						"flight": {}
					}
				]
			}`,
			criteria:   testCriteria(),
			wantOffers: 1,
			wantErr:    false,
			checkFirst: func(t *testing.T, o domain.Offer) {
				assert.Equal(t, "Charles de Gaulle → John F Kennedy", o.SegmentsSummary)
			},
		},
		{
			name:   "max price constraint filters estimates",
			status: http.StatusOK,
			body: `{
				"data": [
					{
						"flight_status": "scheduled",
						"departure": {"iata": "CDG", "scheduled": "2026-09-10T14:00:00+00:00"},
						"arrival": {"iata": "JFK", "scheduled": "2026-09-10T22:30:00+00:00"},
						"airline": {"name": "Air France"},
						"flight": {}
					},
					{
						"flight_status": "scheduled",
						"departure": {"iata": "CDG", "scheduled": "2026-09-10T09:00:00+00:00"},
						"arrival": {"iata": "JFK", "scheduled": "2026-09-10T10:00:00+00:00"},
						"airline": {"name": "Air France"},
						"flight": {}
					}
				]
			}`,
			criteria: func() domain.SearchCriteria {
				c := testCriteria()
				maxPrice := 150.0
				c.MaxPrice = &maxPrice
				return c
			}(),
			wantOffers: 1,
			wantErr:    false,
			checkFirst: func(t *testing.T, o domain.Offer) {
				assert.Equal(t, float64(100), o.Price)
			},
		},
		{
			name:   "top_n caps the scan",
			status: http.StatusOK,
			body: `{
				"data": [
					{"flight_status": "scheduled", "departure": {"iata": "CDG"}, "arrival": {"iata": "JFK"}, "airline": {}, "flight": {}},
					{"flight_status": "scheduled", "departure": {"iata": "CDG"}, "arrival": {"iata": "JFK"}, "airline": {}, "flight": {}},
					{"flight_status": "scheduled", "departure": {"iata": "CDG"}, "arrival": {"iata": "JFK"}, "airline": {}, "flight": {}}
				]
			}`,
			criteria: func() domain.SearchCriteria {
				c := testCriteria()
				c.TopN = 2
				return c
			}(),
			wantOffers: 2,
			wantErr:    false,
		},
		{
			name:       "empty data returns empty slice",
			status:     http.StatusOK,
			body:       `{"data": []}`,
			criteria:   testCriteria(),
			wantOffers: 0,
			wantErr:    false,
		},
		{
			name:       "upstream 4xx becomes provider unavailable",
			status:     http.StatusUnauthorized,
			body:       `{"error": {"code": "invalid_access_key"}}`,
			criteria:   testCriteria(),
			wantOffers: 0,
			wantErr:    true,
		},
		{
			name:       "malformed JSON becomes provider unavailable",
			status:     http.StatusOK,
			body:       `{ invalid json }`,
			criteria:   testCriteria(),
			wantOffers: 0,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
				assert.Equal(t, "scheduled", r.URL.Query().Get("flight_status"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			adapter := NewAdapterWithClient("test-key", srv.URL, srv.Client())
			offers, err := adapter.Fetch(context.Background(), tt.criteria)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
				var provErr *domain.ProviderUnavailableError
				require.True(t, errors.As(err, &provErr))
				assert.Equal(t, ProviderName, provErr.Provider)
			} else {
				require.NoError(t, err)
				assert.Len(t, offers, tt.wantOffers)
				if tt.checkFirst != nil && len(offers) > 0 {
					tt.checkFirst(t, offers[0])
				}
			}
		})
	}
}

// TestAdapter_Fetch_QueryParameters verifies the doubled limit and its
// ceiling.
func TestAdapter_Fetch_QueryParameters(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	adapter := NewAdapterWithClient("test-key", srv.URL, srv.Client())

	criteria := testCriteria()
	_, err := adapter.Fetch(context.Background(), criteria)
	require.NoError(t, err)
	assert.Equal(t, "CDG", got["dep_iata"])
	assert.Equal(t, "JFK", got["arr_iata"])
	assert.Equal(t, "2026-09-10", got["flight_date"])
	assert.Equal(t, "20", got["limit"])

	criteria.TopN = 40
	criteria.OutboundDate = ""
	_, err = adapter.Fetch(context.Background(), criteria)
	require.NoError(t, err)
	assert.Equal(t, "50", got["limit"])
	assert.NotContains(t, got, "flight_date")
}

// TestEstimatePrice tests the fare-estimation model.
func TestEstimatePrice(t *testing.T) {
	minutes := func(m int) *int { return &m }

	tests := []struct {
		name     string
		duration *int
		stops    int
		want     float64
	}{
		{"nil duration uses default hop", nil, 0, 120},
		{"sub-hour floors at one hour", minutes(30), 0, 100},
		{"exact hours", minutes(120), 0, 140},
		{"fractional hours", minutes(510), 0, 400},
		{"stops add a surcharge", minutes(120), 2, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, estimatePrice(tt.duration, tt.stops))
		})
	}
}

// TestAdapter_Fetch_ServerDown tests transport-level failures.
func TestAdapter_Fetch_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	adapter := NewAdapterWithClient("test-key", srv.URL, nil)
	offers, err := adapter.Fetch(context.Background(), testCriteria())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
	assert.Empty(t, offers)
}

// testCriteria returns criteria with defaults applied, as the use case hands
// them to providers.
func testCriteria() domain.SearchCriteria {
	c := domain.SearchCriteria{
		DepartureID:  "CDG",
		ArrivalID:    "JFK",
		OutboundDate: "2026-09-10",
	}
	c.SetDefaults()
	return c
}
