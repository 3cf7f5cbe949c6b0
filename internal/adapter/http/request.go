// Package http provides the HTTP handler layer for the offer search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
)

// SearchOffersRequest represents the query parameters of an offer search.
type SearchOffersRequest struct {
	// DepartureID is the IATA code of the departure airport (e.g., "CDG")
	DepartureID string `query:"departure_id"`

	// ArrivalID is the IATA code of the arrival airport (e.g., "JFK")
	ArrivalID string `query:"arrival_id"`

	// OutboundDate is the outbound date in YYYY-MM-DD format
	OutboundDate string `query:"outbound_date"`

	// ReturnDate is the optional return date in YYYY-MM-DD format
	ReturnDate string `query:"return_date"`

	// Currency is the ISO 4217 currency for prices (defaults to USD)
	Currency string `query:"currency"`

	// MaxPrice filters offers priced above this amount
	MaxPrice *float64 `query:"max_price"`

	// MaxStops filters offers with more stops than this value
	MaxStops *int `query:"max_stops"`

	// Airlines is a comma-separated airline whitelist
	Airlines string `query:"airlines"`

	// SortBy is an opaque sort hint forwarded to the primary provider
	SortBy string `query:"sort_by"`

	// TopN is the maximum number of offers to return (1-100, default 10)
	TopN *int `query:"top_n"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	currencyPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request and returns any validation errors.
// Airport and currency codes are normalized to uppercase in place.
func (r *SearchOffersRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateDepartureID(errs)
	r.validateArrivalID(errs)
	r.validateRouteEndpointsDiffer(errs)
	r.validateOutboundDate(errs)
	r.validateReturnDate(errs)
	r.validateCurrency(errs)
	r.validateFilters(errs)
	r.validateTopN(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchOffersRequest) validateDepartureID(errs *ValidationErrors) {
	if r.DepartureID == "" {
		errs.Add("departure_id", "departure_id is required")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(r.DepartureID))
	if !airportCodePattern.MatchString(code) {
		errs.Add("departure_id", "departure_id must be a valid 3-letter IATA airport code")
		return
	}
	r.DepartureID = code
}

func (r *SearchOffersRequest) validateArrivalID(errs *ValidationErrors) {
	if r.ArrivalID == "" {
		errs.Add("arrival_id", "arrival_id is required")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(r.ArrivalID))
	if !airportCodePattern.MatchString(code) {
		errs.Add("arrival_id", "arrival_id must be a valid 3-letter IATA airport code")
		return
	}
	r.ArrivalID = code
}

func (r *SearchOffersRequest) validateRouteEndpointsDiffer(errs *ValidationErrors) {
	if r.DepartureID != "" && r.ArrivalID != "" &&
		strings.EqualFold(r.DepartureID, r.ArrivalID) {
		errs.Add("arrival_id", "departure_id and arrival_id must be different")
	}
}

func (r *SearchOffersRequest) validateOutboundDate(errs *ValidationErrors) {
	if r.OutboundDate == "" {
		errs.Add("outbound_date", "outbound_date is required")
		return
	}

	if !datePattern.MatchString(r.OutboundDate) {
		errs.Add("outbound_date", "outbound_date must be in YYYY-MM-DD format")
		return
	}

	if _, err := time.Parse("2006-01-02", r.OutboundDate); err != nil {
		errs.Add("outbound_date", "outbound_date is not a valid date")
	}
}

func (r *SearchOffersRequest) validateReturnDate(errs *ValidationErrors) {
	if r.ReturnDate == "" {
		return
	}

	if !datePattern.MatchString(r.ReturnDate) {
		errs.Add("return_date", "return_date must be in YYYY-MM-DD format")
		return
	}

	if _, err := time.Parse("2006-01-02", r.ReturnDate); err != nil {
		errs.Add("return_date", "return_date is not a valid date")
	}
}

func (r *SearchOffersRequest) validateCurrency(errs *ValidationErrors) {
	if r.Currency == "" {
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if !currencyPattern.MatchString(currency) {
		errs.Add("currency", "currency must be a 3-letter ISO 4217 code")
		return
	}
	r.Currency = currency
}

func (r *SearchOffersRequest) validateFilters(errs *ValidationErrors) {
	if r.MaxPrice != nil && *r.MaxPrice < 0 {
		errs.Add("max_price", "max_price must be a positive number")
	}
	if r.MaxStops != nil && *r.MaxStops < 0 {
		errs.Add("max_stops", "max_stops must be a non-negative number")
	}

	for i, airline := range r.airlineList() {
		if airline == "" {
			errs.Add(fmt.Sprintf("airlines[%d]", i), "airline name cannot be empty")
		}
	}
}

func (r *SearchOffersRequest) validateTopN(errs *ValidationErrors) {
	if r.TopN == nil {
		return
	}
	if *r.TopN < domain.MinTopN || *r.TopN > domain.MaxTopN {
		errs.Add("top_n", fmt.Sprintf("top_n must be between %d and %d", domain.MinTopN, domain.MaxTopN))
	}
}

// airlineList splits the comma-separated airlines parameter, trimming
// whitespace but keeping empty entries so validation can point at them.
func (r *SearchOffersRequest) airlineList() []string {
	if strings.TrimSpace(r.Airlines) == "" {
		return nil
	}

	parts := strings.Split(r.Airlines, ",")
	list := make([]string, len(parts))
	for i, p := range parts {
		list[i] = strings.TrimSpace(p)
	}
	return list
}

// LoginRequest is the body of the email-only login endpoint.
type LoginRequest struct {
	Email string `json:"email"`
}

// CheckoutSessionRequest is the body of the checkout endpoint. The email is
// informational; the authenticated token decides the account.
type CheckoutSessionRequest struct {
	Email string `json:"email,omitempty"`
}
