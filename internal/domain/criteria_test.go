package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCriteria() SearchCriteria {
	return SearchCriteria{
		DepartureID:  "CDG",
		ArrivalID:    "LHR",
		OutboundDate: "2026-09-15",
		Currency:     "USD",
		TopN:         10,
	}
}

func TestSearchCriteria_Validate(t *testing.T) {
	maxPrice := func(v float64) *float64 { return &v }
	maxStops := func(v int) *int { return &v }

	tests := []struct {
		name    string
		modify  func(*SearchCriteria)
		wantErr string
	}{
		{
			name:   "valid criteria",
			modify: func(s *SearchCriteria) {},
		},
		{
			name:   "valid with return date and filters",
			modify: func(s *SearchCriteria) { s.ReturnDate = "2026-09-22"; s.MaxPrice = maxPrice(500); s.MaxStops = maxStops(1) },
		},
		{
			name:    "missing departure",
			modify:  func(s *SearchCriteria) { s.DepartureID = "" },
			wantErr: "departure_id is required",
		},
		{
			name:    "lowercase departure rejected",
			modify:  func(s *SearchCriteria) { s.DepartureID = "cdg" },
			wantErr: "3-letter IATA code",
		},
		{
			name:    "missing arrival",
			modify:  func(s *SearchCriteria) { s.ArrivalID = "" },
			wantErr: "arrival_id is required",
		},
		{
			name:    "same origin and destination",
			modify:  func(s *SearchCriteria) { s.ArrivalID = "CDG" },
			wantErr: "must be different",
		},
		{
			name:    "missing outbound date",
			modify:  func(s *SearchCriteria) { s.OutboundDate = "" },
			wantErr: "outbound_date is required",
		},
		{
			name:    "malformed outbound date",
			modify:  func(s *SearchCriteria) { s.OutboundDate = "15/09/2026" },
			wantErr: "YYYY-MM-DD",
		},
		{
			name:    "impossible outbound date",
			modify:  func(s *SearchCriteria) { s.OutboundDate = "2026-13-45" },
			wantErr: "not a valid date",
		},
		{
			name:    "malformed return date",
			modify:  func(s *SearchCriteria) { s.ReturnDate = "sometime" },
			wantErr: "return_date must be in YYYY-MM-DD",
		},
		{
			name:    "bad currency",
			modify:  func(s *SearchCriteria) { s.Currency = "EURO" },
			wantErr: "currency must be a 3-letter ISO code",
		},
		{
			name:    "non-positive max price",
			modify:  func(s *SearchCriteria) { s.MaxPrice = maxPrice(0) },
			wantErr: "max_price must be positive",
		},
		{
			name:    "negative max stops",
			modify:  func(s *SearchCriteria) { s.MaxStops = maxStops(-1) },
			wantErr: "max_stops cannot be negative",
		},
		{
			name:    "top_n too small",
			modify:  func(s *SearchCriteria) { s.TopN = 0 },
			wantErr: "top_n must be between 1 and 100",
		},
		{
			name:    "top_n too large",
			modify:  func(s *SearchCriteria) { s.TopN = 101 },
			wantErr: "top_n must be between 1 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := validCriteria()
			tt.modify(&criteria)

			err := criteria.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchCriteria_SetDefaults(t *testing.T) {
	criteria := SearchCriteria{
		DepartureID:  " cdg ",
		ArrivalID:    "lhr",
		OutboundDate: "2026-09-15",
	}
	criteria.SetDefaults()

	assert.Equal(t, "CDG", criteria.DepartureID)
	assert.Equal(t, "LHR", criteria.ArrivalID)
	assert.Equal(t, "USD", criteria.Currency)
	assert.Equal(t, DefaultTopN, criteria.TopN)
	require.NoError(t, criteria.Validate())
}

func TestSearchCriteria_SetDefaults_PreservesExplicitValues(t *testing.T) {
	criteria := validCriteria()
	criteria.Currency = "eur"
	criteria.TopN = 25
	criteria.SetDefaults()

	assert.Equal(t, "EUR", criteria.Currency)
	assert.Equal(t, 25, criteria.TopN)
}

func TestSearchCriteria_Constraints(t *testing.T) {
	price := 300.0
	stops := 1
	criteria := validCriteria()
	criteria.MaxPrice = &price
	criteria.MaxStops = &stops
	criteria.Airlines = []string{"Air France"}

	c := criteria.Constraints()
	assert.Equal(t, &price, c.MaxPrice)
	assert.Equal(t, &stops, c.MaxStops)
	assert.Equal(t, []string{"Air France"}, c.Airlines)
}
