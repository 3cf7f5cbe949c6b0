package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// validSearchRequest returns a request that passes validation.
func validSearchRequest() SearchOffersRequest {
	return SearchOffersRequest{
		DepartureID:  "CDG",
		ArrivalID:    "JFK",
		OutboundDate: "2026-09-10",
	}
}

// TestSearchOffersRequest_Validate_Valid tests requests that should pass.
func TestSearchOffersRequest_Validate_Valid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *SearchOffersRequest)
	}{
		{name: "minimal request", modify: func(r *SearchOffersRequest) {}},
		{
			name: "all optional fields",
			modify: func(r *SearchOffersRequest) {
				r.ReturnDate = "2026-09-20"
				r.Currency = "EUR"
				r.MaxPrice = floatPtr(800)
				r.MaxStops = intPtr(1)
				r.Airlines = "Air France, Delta"
				r.SortBy = "2"
				r.TopN = intPtr(25)
			},
		},
		{
			name: "lowercase codes are normalized",
			modify: func(r *SearchOffersRequest) {
				r.DepartureID = "cdg"
				r.ArrivalID = "jfk"
				r.Currency = "usd"
			},
		},
		{
			name: "codes with surrounding whitespace",
			modify: func(r *SearchOffersRequest) {
				r.DepartureID = " CDG "
				r.ArrivalID = " JFK "
			},
		},
		{
			name:   "top_n at lower bound",
			modify: func(r *SearchOffersRequest) { r.TopN = intPtr(1) },
		},
		{
			name:   "top_n at upper bound",
			modify: func(r *SearchOffersRequest) { r.TopN = intPtr(100) },
		},
		{
			name:   "zero max_price",
			modify: func(r *SearchOffersRequest) { r.MaxPrice = floatPtr(0) },
		},
		{
			name:   "zero max_stops means direct only",
			modify: func(r *SearchOffersRequest) { r.MaxStops = intPtr(0) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSearchRequest()
			tt.modify(&req)

			err := req.Validate()

			assert.NoError(t, err)
		})
	}
}

// TestSearchOffersRequest_Validate_Invalid tests requests that should fail
// with errors on the expected fields.
func TestSearchOffersRequest_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(r *SearchOffersRequest)
		errorFields []string
	}{
		{
			name:        "missing departure_id",
			modify:      func(r *SearchOffersRequest) { r.DepartureID = "" },
			errorFields: []string{"departure_id"},
		},
		{
			name:        "missing arrival_id",
			modify:      func(r *SearchOffersRequest) { r.ArrivalID = "" },
			errorFields: []string{"arrival_id"},
		},
		{
			name:        "departure_id too short",
			modify:      func(r *SearchOffersRequest) { r.DepartureID = "CD" },
			errorFields: []string{"departure_id"},
		},
		{
			name:        "departure_id with digits",
			modify:      func(r *SearchOffersRequest) { r.DepartureID = "C1G" },
			errorFields: []string{"departure_id"},
		},
		{
			name: "same departure and arrival",
			modify: func(r *SearchOffersRequest) {
				r.DepartureID = "CDG"
				r.ArrivalID = "cdg"
			},
			errorFields: []string{"arrival_id"},
		},
		{
			name:        "missing outbound_date",
			modify:      func(r *SearchOffersRequest) { r.OutboundDate = "" },
			errorFields: []string{"outbound_date"},
		},
		{
			name:        "outbound_date wrong format",
			modify:      func(r *SearchOffersRequest) { r.OutboundDate = "10/09/2026" },
			errorFields: []string{"outbound_date"},
		},
		{
			name:        "outbound_date impossible day",
			modify:      func(r *SearchOffersRequest) { r.OutboundDate = "2026-02-30" },
			errorFields: []string{"outbound_date"},
		},
		{
			name:        "return_date wrong format",
			modify:      func(r *SearchOffersRequest) { r.ReturnDate = "20-09-2026" },
			errorFields: []string{"return_date"},
		},
		{
			name:        "return_date impossible month",
			modify:      func(r *SearchOffersRequest) { r.ReturnDate = "2026-13-01" },
			errorFields: []string{"return_date"},
		},
		{
			name:        "currency too long",
			modify:      func(r *SearchOffersRequest) { r.Currency = "EURO" },
			errorFields: []string{"currency"},
		},
		{
			name:        "negative max_price",
			modify:      func(r *SearchOffersRequest) { r.MaxPrice = floatPtr(-10) },
			errorFields: []string{"max_price"},
		},
		{
			name:        "negative max_stops",
			modify:      func(r *SearchOffersRequest) { r.MaxStops = intPtr(-1) },
			errorFields: []string{"max_stops"},
		},
		{
			name:        "empty airline entry",
			modify:      func(r *SearchOffersRequest) { r.Airlines = "Air France,,Delta" },
			errorFields: []string{"airlines[1]"},
		},
		{
			name:        "top_n below range",
			modify:      func(r *SearchOffersRequest) { r.TopN = intPtr(0) },
			errorFields: []string{"top_n"},
		},
		{
			name:        "top_n above range",
			modify:      func(r *SearchOffersRequest) { r.TopN = intPtr(101) },
			errorFields: []string{"top_n"},
		},
		{
			name: "multiple errors reported together",
			modify: func(r *SearchOffersRequest) {
				r.DepartureID = ""
				r.OutboundDate = ""
				r.TopN = intPtr(500)
			},
			errorFields: []string{"departure_id", "outbound_date", "top_n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSearchRequest()
			tt.modify(&req)

			err := req.Validate()

			require.Error(t, err)
			var validationErrs *ValidationErrors
			require.ErrorAs(t, err, &validationErrs)

			errMap := validationErrs.ToMap()
			for _, field := range tt.errorFields {
				assert.Contains(t, errMap, field, "expected error on field %q", field)
			}
		})
	}
}

// TestSearchOffersRequest_Validate_Normalization verifies in-place
// normalization of codes.
func TestSearchOffersRequest_Validate_Normalization(t *testing.T) {
	req := SearchOffersRequest{
		DepartureID:  " cdg ",
		ArrivalID:    "jfk",
		OutboundDate: "2026-09-10",
		Currency:     "eur",
	}

	require.NoError(t, req.Validate())

	assert.Equal(t, "CDG", req.DepartureID)
	assert.Equal(t, "JFK", req.ArrivalID)
	assert.Equal(t, "EUR", req.Currency)
}

func TestValidationErrors_Error(t *testing.T) {
	errs := &ValidationErrors{}
	assert.Equal(t, "validation failed", errs.Error())

	errs.Add("departure_id", "departure_id is required")
	errs.Add("arrival_id", "arrival_id is required")
	assert.Equal(t, "departure_id is required", errs.Error())
	assert.True(t, errs.HasErrors())
	assert.Len(t, errs.ToMap(), 2)
}

// TestToDomainCriteria verifies the request-to-criteria conversion.
func TestToDomainCriteria(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		req := validSearchRequest()
		require.NoError(t, req.Validate())

		criteria := ToDomainCriteria(&req)

		assert.Equal(t, "CDG", criteria.DepartureID)
		assert.Equal(t, "JFK", criteria.ArrivalID)
		assert.Equal(t, "2026-09-10", criteria.OutboundDate)
		assert.Equal(t, "USD", criteria.Currency)
		assert.Equal(t, 10, criteria.TopN)
		assert.Nil(t, criteria.Airlines)
	})

	t.Run("carries all fields", func(t *testing.T) {
		req := validSearchRequest()
		req.ReturnDate = "2026-09-20"
		req.Currency = "EUR"
		req.MaxPrice = floatPtr(800)
		req.MaxStops = intPtr(1)
		req.Airlines = "Air France, Delta,"
		req.SortBy = "2"
		req.TopN = intPtr(25)

		criteria := ToDomainCriteria(&req)

		assert.Equal(t, "2026-09-20", criteria.ReturnDate)
		assert.Equal(t, "EUR", criteria.Currency)
		require.NotNil(t, criteria.MaxPrice)
		assert.Equal(t, 800.0, *criteria.MaxPrice)
		require.NotNil(t, criteria.MaxStops)
		assert.Equal(t, 1, *criteria.MaxStops)
		assert.Equal(t, []string{"Air France", "Delta"}, criteria.Airlines)
		assert.Equal(t, "2", criteria.SortHint)
		assert.Equal(t, 25, criteria.TopN)
	})
}
