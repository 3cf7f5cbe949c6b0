package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Criteria limits.
const (
	// MinTopN is the smallest allowed result count.
	MinTopN = 1

	// MaxTopN is the largest allowed result count.
	MaxTopN = 100

	// DefaultTopN is the result count used when the caller does not specify one.
	DefaultTopN = 10

	// DefaultCurrency is the currency used when the caller does not specify one.
	DefaultCurrency = "USD"
)

// SearchCriteria defines the parameters for an offer search request.
// It is shared verbatim across every provider adapter; adapters ignore the
// fields their upstream API has no equivalent for.
type SearchCriteria struct {
	// DepartureID is the IATA code of the departure airport (e.g. "CDG")
	DepartureID string `json:"departure_id"`

	// ArrivalID is the IATA code of the arrival airport (e.g. "LHR")
	ArrivalID string `json:"arrival_id"`

	// OutboundDate is the desired departure date in YYYY-MM-DD format
	OutboundDate string `json:"outbound_date"`

	// ReturnDate is the optional return date in YYYY-MM-DD format
	ReturnDate string `json:"return_date,omitempty"`

	// Currency is the requested ISO 4217 currency code (default "USD")
	Currency string `json:"currency"`

	// MaxPrice drops offers priced above this amount (optional)
	MaxPrice *float64 `json:"max_price,omitempty"`

	// MaxStops drops offers with more stops than this value (optional)
	MaxStops *int `json:"max_stops,omitempty"`

	// Airlines restricts offers to these airline names (optional)
	Airlines []string `json:"airlines,omitempty"`

	// SortHint is an opaque sort key forwarded to the structured-search
	// provider. Other providers ignore it.
	SortHint string `json:"sort_hint,omitempty"`

	// TopN is the maximum number of offers to return (1-100, default 10)
	TopN int `json:"top_n"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// currencyRegex matches 3-letter ISO currency codes.
var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks if the search criteria is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (s *SearchCriteria) Validate() error {
	if s.DepartureID == "" {
		return fmt.Errorf("%w: departure_id is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(s.DepartureID) {
		return fmt.Errorf("%w: departure_id must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.DepartureID)
	}

	if s.ArrivalID == "" {
		return fmt.Errorf("%w: arrival_id is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(s.ArrivalID) {
		return fmt.Errorf("%w: arrival_id must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.ArrivalID)
	}

	if s.DepartureID == s.ArrivalID {
		return fmt.Errorf("%w: departure_id and arrival_id must be different", ErrInvalidRequest)
	}

	if s.OutboundDate == "" {
		return fmt.Errorf("%w: outbound_date is required", ErrInvalidRequest)
	}
	if !dateRegex.MatchString(s.OutboundDate) {
		return fmt.Errorf("%w: outbound_date must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, s.OutboundDate)
	}
	if _, err := time.Parse("2006-01-02", s.OutboundDate); err != nil {
		return fmt.Errorf("%w: outbound_date is not a valid date: %s", ErrInvalidRequest, s.OutboundDate)
	}

	// Return date is optional; when present it must parse.
	if s.ReturnDate != "" {
		if !dateRegex.MatchString(s.ReturnDate) {
			return fmt.Errorf("%w: return_date must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, s.ReturnDate)
		}
		if _, err := time.Parse("2006-01-02", s.ReturnDate); err != nil {
			return fmt.Errorf("%w: return_date is not a valid date: %s", ErrInvalidRequest, s.ReturnDate)
		}
	}

	if !currencyRegex.MatchString(s.Currency) {
		return fmt.Errorf("%w: currency must be a 3-letter ISO code, got %q", ErrInvalidRequest, s.Currency)
	}

	if s.MaxPrice != nil && *s.MaxPrice <= 0 {
		return fmt.Errorf("%w: max_price must be positive", ErrInvalidRequest)
	}

	if s.MaxStops != nil && *s.MaxStops < 0 {
		return fmt.Errorf("%w: max_stops cannot be negative", ErrInvalidRequest)
	}

	if s.TopN < MinTopN || s.TopN > MaxTopN {
		return fmt.Errorf("%w: top_n must be between %d and %d, got %d", ErrInvalidRequest, MinTopN, MaxTopN, s.TopN)
	}

	return nil
}

// SetDefaults applies default values to empty optional fields and normalizes
// codes to uppercase. Call before Validate.
func (s *SearchCriteria) SetDefaults() {
	s.DepartureID = strings.ToUpper(strings.TrimSpace(s.DepartureID))
	s.ArrivalID = strings.ToUpper(strings.TrimSpace(s.ArrivalID))
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if s.TopN == 0 {
		s.TopN = DefaultTopN
	}
}

// Constraints returns the client-supplied post-filter shared by every
// adapter's normalization pass.
func (s *SearchCriteria) Constraints() Constraints {
	return Constraints{
		MaxPrice: s.MaxPrice,
		MaxStops: s.MaxStops,
		Airlines: s.Airlines,
	}
}
