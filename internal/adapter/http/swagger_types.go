// Package http provides swagger type definitions for API documentation.
// These types mirror domain types but are defined here to help swag generate proper documentation.
package http

// SwaggerSearchResult represents the offer search response for swagger documentation.
// @Description Ranked flight offers with the full candidate pool size
type SwaggerSearchResult struct {
	// Results is the ranked, truncated offer list
	Results []SwaggerOffer `json:"results"`

	// Count is the size of the full candidate pool before truncation
	Count int `json:"count" example:"42"`
}

// SwaggerOffer represents a single flight offer.
// @Description Normalized flight offer from one of the providers
type SwaggerOffer struct {
	// Price is the total price in Currency
	Price float64 `json:"price" example:"412.50"`

	// Currency is the ISO 4217 currency code
	Currency string `json:"currency" example:"USD"`

	// Airlines is a comma-joined list of operating airline names
	Airlines string `json:"airlines,omitempty" example:"Air France, Delta"`

	// Stops is the number of intermediate stops (0 = direct)
	Stops int `json:"stops" example:"1"`

	// TotalDurationMin is the total itinerary duration in minutes
	TotalDurationMin *int `json:"total_duration_min,omitempty" example:"510"`

	// SegmentsSummary is a human-readable route description
	SegmentsSummary string `json:"segments_summary,omitempty" example:"CDG (2026-09-10 10:30) -> JFK (2026-09-10 13:00) [Air France]"`

	// Type is a provider-specific classification
	Type string `json:"type,omitempty" example:"round_trip"`

	// AirlineLogo is an optional URL to the airline's logo image
	AirlineLogo string `json:"airline_logo,omitempty" example:"https://example.com/af-logo.png"`

	// DepartureToken is a provider continuation token, when supplied
	DepartureToken string `json:"departure_token,omitempty"`

	// LowestPriceInsight is the provider's historical-low-price signal
	LowestPriceInsight *float64 `json:"lowest_price_insight,omitempty" example:"389.00"`

	// PurchaseURL is a best-effort deep link to book the offer
	PurchaseURL string `json:"purchase_url,omitempty" example:"https://www.google.com/travel/flights?..."`

	// Source identifies the provider that produced this offer
	Source string `json:"source" example:"google_flights"`
}

// SwaggerErrorResponse represents an error response.
// @Description Error response from the API
type SwaggerErrorResponse struct {
	// Code is a machine-readable error code
	Code string `json:"code" example:"validation_error"`

	// Message is a human-readable error message
	Message string `json:"message" example:"Request validation failed"`

	// Details contains field-specific error details
	Details map[string]string `json:"details,omitempty"`
}

// SwaggerQuotaExceeded represents the quota-exhausted error response.
// @Description Returned with status 402 when the free-search allowance is used up
type SwaggerQuotaExceeded struct {
	// Code is always "quota_exceeded"
	Code string `json:"code" example:"quota_exceeded"`

	// Message is a human-readable error message
	Message string `json:"message" example:"Free search limit reached. Log in or subscribe to continue."`

	// RequiresLogin is true when logging in would grant a fresh allowance
	RequiresLogin bool `json:"requires_login" example:"true"`
}
