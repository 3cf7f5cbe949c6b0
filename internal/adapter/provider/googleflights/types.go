package googleflights

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// searchResponse is the wire format of the SerpApi google_flights engine.
// Only the fields the normalizer consumes are declared.
type searchResponse struct {
	SearchMetadata searchMetadata `json:"search_metadata"`
	BestFlights    []offerGroup   `json:"best_flights"`
	OtherFlights   []offerGroup   `json:"other_flights"`
}

// searchMetadata carries the global fallback search URL.
type searchMetadata struct {
	GoogleFlightsURL string `json:"google_flights_url"`
}

// offerGroup is one priced itinerary in either result bucket. The long tail
// of purchase-URL fields mirrors the shapes the upstream has been observed to
// send; resolvePurchaseURL walks them in a fixed order.
type offerGroup struct {
	Price          flexPrice      `json:"price"`
	Type           string         `json:"type"`
	TotalDuration  *int           `json:"total_duration"`
	AirlineLogo    string         `json:"airline_logo"`
	DepartureToken string         `json:"departure_token"`
	Flights        []segment      `json:"flights"`
	PriceInsights  *priceInsights `json:"price_insights"`

	PurchaseURL     string       `json:"purchase_url"`
	PurchaseLink    string       `json:"purchase_link"`
	BookingURL      string       `json:"booking_url"`
	BookingLink     string       `json:"booking_link"`
	Link            string       `json:"link"`
	DeepLink        string       `json:"deep_link"`
	Deeplink        string       `json:"deeplink"`
	BookingDeeplink string       `json:"booking_deeplink"`
	BuyLink         string       `json:"buy_link"`
	Booking         *bookingInfo `json:"booking"`
	BookingURLs     []bookingURL `json:"booking_urls"`
}

// segment is one leg of an itinerary.
type segment struct {
	DepartureAirport airportRef `json:"departure_airport"`
	ArrivalAirport   airportRef `json:"arrival_airport"`
	Airline          string     `json:"airline"`
}

// airportRef identifies one end of a leg.
type airportRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}

// priceInsights carries the provider's historical price signals.
type priceInsights struct {
	LowestPrice *float64 `json:"lowest_price"`
}

// bookingInfo is the nested booking object variant.
type bookingInfo struct {
	URL        string `json:"url"`
	Link       string `json:"link"`
	BookingURL string `json:"booking_url"`
}

// bookingURL is one entry of the booking_urls list, which upstream sends
// either as a bare string or as an object.
type bookingURL struct {
	URL  string `json:"url"`
	Link string `json:"link"`
}

// UnmarshalJSON accepts both the string and the object shape.
func (b *bookingURL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.URL = s
		return nil
	}

	type alias bookingURL
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		// Tolerate unexpected shapes; the entry simply resolves to nothing.
		return nil
	}
	*b = bookingURL(obj)
	return nil
}

// first returns the entry's URL, preferring url over link.
func (b *bookingURL) first() string {
	if v := strings.TrimSpace(b.URL); v != "" {
		return v
	}
	return strings.TrimSpace(b.Link)
}

// flexPrice parses a price that upstream sends either as a JSON number or as
// a locale-formatted string ("1 024,50", "1,234", non-breaking spaces).
// Unparsable values leave the price invalid, which drops the record during
// normalization rather than failing the provider call.
type flexPrice struct {
	value float64
	valid bool
}

// priceCleaner strips thousands separators and (non-breaking) spaces.
var priceCleaner = strings.NewReplacer(" ", "", "\u00a0", "", ",", "")

// UnmarshalJSON implements tolerant price decoding. It never returns an
// error: a malformed price is a per-record skip decision, not a provider
// failure.
func (p *flexPrice) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		p.value, p.valid = num, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	cleaned := priceCleaner.Replace(strings.TrimSpace(s))
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		p.value, p.valid = v, true
	}
	return nil
}
