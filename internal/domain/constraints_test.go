package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraints_Matches(t *testing.T) {
	maxPrice := func(v float64) *float64 { return &v }
	maxStops := func(v int) *int { return &v }

	offer := Offer{
		Price:    250,
		Currency: "USD",
		Airlines: "Air France, KLM",
		Stops:    1,
		Source:   "google_flights",
	}

	tests := []struct {
		name        string
		constraints *Constraints
		want        bool
	}{
		{
			name:        "nil constraints match everything",
			constraints: nil,
			want:        true,
		},
		{
			name:        "zero constraints match everything",
			constraints: &Constraints{},
			want:        true,
		},
		{
			name:        "price within limit",
			constraints: &Constraints{MaxPrice: maxPrice(250)},
			want:        true,
		},
		{
			name:        "price over limit",
			constraints: &Constraints{MaxPrice: maxPrice(249.99)},
			want:        false,
		},
		{
			name:        "stops within limit",
			constraints: &Constraints{MaxStops: maxStops(1)},
			want:        true,
		},
		{
			name:        "too many stops",
			constraints: &Constraints{MaxStops: maxStops(0)},
			want:        false,
		},
		{
			name:        "airline whitelist matches second entry case-insensitively",
			constraints: &Constraints{Airlines: []string{"klm"}},
			want:        true,
		},
		{
			name:        "airline whitelist misses",
			constraints: &Constraints{Airlines: []string{"Lufthansa"}},
			want:        false,
		},
		{
			name:        "all constraints combined",
			constraints: &Constraints{MaxPrice: maxPrice(300), MaxStops: maxStops(2), Airlines: []string{"Air France"}},
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.constraints.Matches(offer))
		})
	}
}

func TestConstraints_Matches_NoAirlineInfo(t *testing.T) {
	// An offer without airline information never matches a whitelist.
	c := &Constraints{Airlines: []string{"Air France"}}
	assert.False(t, c.Matches(Offer{Price: 100, Currency: "USD"}))
}
