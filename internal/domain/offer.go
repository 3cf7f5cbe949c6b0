// Package domain contains the core business entities and rules for the flight
// offer aggregation system. These entities are provider-agnostic and form the
// foundation upon which all other components are built.
package domain

// Offer is the canonical flight-price record produced by every provider
// adapter. All providers, whatever their upstream schema, normalize into this
// shape before results are merged and ranked.
//
// Offers are constructed fresh inside an adapter call, live for a single
// request and are discarded once the response is serialized. They are never
// persisted and hold no shared state.
type Offer struct {
	// Price is the total price in Currency. Always present and >= 0;
	// records whose upstream price cannot be parsed are dropped before
	// they reach the aggregator.
	Price float64 `json:"price"`

	// Currency is the uppercase ISO 4217 code of the requested currency
	// (e.g. "USD"). Always present.
	Currency string `json:"currency"`

	// Airlines is a human-readable, comma-joined list of operating airline
	// names, de-duplicated preserving first-seen order. Empty when unknown.
	Airlines string `json:"airlines,omitempty"`

	// Stops is the number of intermediate stops (segments - 1, floored at 0).
	Stops int `json:"stops"`

	// TotalDurationMin is the total itinerary duration in minutes.
	// Nil when the provider does not report it.
	TotalDurationMin *int `json:"total_duration_min,omitempty"`

	// SegmentsSummary is a human-readable route/segment description.
	SegmentsSummary string `json:"segments_summary,omitempty"`

	// Type is a provider-specific classification, e.g. "round_trip" for the
	// structured-search provider or a flight status for the schedule provider.
	Type string `json:"type,omitempty"`

	// AirlineLogo is an optional URL to the airline's logo image.
	AirlineLogo string `json:"airline_logo,omitempty"`

	// DepartureToken is a provider-specific continuation token for a
	// follow-up query. Only the structured-search provider supplies one.
	DepartureToken string `json:"departure_token,omitempty"`

	// LowestPriceInsight is the provider's own historical-low-price signal,
	// when supplied.
	LowestPriceInsight *float64 `json:"lowest_price_insight,omitempty"`

	// PurchaseURL is a best-effort deep link to book the offer, falling back
	// to a generic search URL. Empty only when no candidate could be resolved.
	PurchaseURL string `json:"purchase_url,omitempty"`

	// Source identifies which provider adapter produced this record.
	Source string `json:"source"`
}

// Valid reports whether the offer satisfies the canonical invariants:
// non-negative price, a 3-letter currency code, and non-negative stops.
func (o *Offer) Valid() bool {
	if o.Price < 0 {
		return false
	}
	if len(o.Currency) != 3 {
		return false
	}
	return o.Stops >= 0
}
