package googleflights

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
)

// decodeSearchResponse parses the raw upstream body.
func decodeSearchResponse(body []byte) (*searchResponse, error) {
	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// normalize converts the wire payload into domain offers. The best_flights
// bucket is scanned before other_flights so cheaper curated itineraries keep
// their position. Records without a usable price are skipped, constraints are
// applied per offer, and the scan stops once TopN offers are collected.
func normalize(payload *searchResponse, criteria domain.SearchCriteria) []domain.Offer {
	constraints := criteria.Constraints()

	groups := make([]offerGroup, 0, len(payload.BestFlights)+len(payload.OtherFlights))
	groups = append(groups, payload.BestFlights...)
	groups = append(groups, payload.OtherFlights...)

	offers := make([]domain.Offer, 0, len(groups))
	for _, group := range groups {
		if !group.Price.valid {
			continue
		}

		offer := domain.Offer{
			Price:            group.Price.value,
			Currency:         criteria.Currency,
			Airlines:         joinAirlines(group.Flights),
			Stops:            stopCount(group.Flights),
			TotalDurationMin: group.TotalDuration,
			SegmentsSummary:  summarize(group.Flights),
			Type:             group.Type,
			AirlineLogo:      group.AirlineLogo,
			DepartureToken:   group.DepartureToken,
			PurchaseURL:      resolvePurchaseURL(group, payload.SearchMetadata),
			Source:           ProviderName,
		}
		if group.PriceInsights != nil && group.PriceInsights.LowestPrice != nil {
			v := *group.PriceInsights.LowestPrice
			offer.LowestPriceInsight = &v
		}

		if !constraints.Matches(offer) {
			continue
		}
		offers = append(offers, offer)
		if len(offers) == criteria.TopN {
			break
		}
	}
	return offers
}

// resolvePurchaseURL walks the known purchase-URL shapes in order of
// reliability and falls back to the global search URL.
func resolvePurchaseURL(group offerGroup, meta searchMetadata) string {
	candidates := []string{
		group.PurchaseURL,
		group.PurchaseLink,
		group.BookingURL,
		group.BookingLink,
		group.Link,
		group.DeepLink,
		group.Deeplink,
		group.BookingDeeplink,
		group.BuyLink,
	}
	if group.Booking != nil {
		candidates = append(candidates, group.Booking.URL, group.Booking.Link, group.Booking.BookingURL)
	}
	if len(group.BookingURLs) > 0 {
		candidates = append(candidates, group.BookingURLs[0].first())
	}
	candidates = append(candidates, meta.GoogleFlightsURL)

	for _, c := range candidates {
		if v := strings.TrimSpace(c); v != "" {
			return v
		}
	}
	return ""
}

// joinAirlines lists the operating airlines, deduplicated in leg order.
func joinAirlines(segments []segment) string {
	seen := make(map[string]struct{}, len(segments))
	names := make([]string, 0, len(segments))
	for _, seg := range segments {
		name := strings.TrimSpace(seg.Airline)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// stopCount derives the stop count from the leg count.
func stopCount(segments []segment) int {
	if len(segments) <= 1 {
		return 0
	}
	return len(segments) - 1
}

// summarize renders the legs as a compact human-readable route description.
func summarize(segments []segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		part := fmt.Sprintf("%s (%s) -> %s (%s)",
			airportLabel(seg.DepartureAirport), seg.DepartureAirport.Time,
			airportLabel(seg.ArrivalAirport), seg.ArrivalAirport.Time)
		if airline := strings.TrimSpace(seg.Airline); airline != "" {
			part += " [" + airline + "]"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " | ")
}

// airportLabel prefers the IATA code and falls back to the display name.
func airportLabel(ref airportRef) string {
	if ref.ID != "" {
		return ref.ID
	}
	return ref.Name
}
