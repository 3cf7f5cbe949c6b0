package aviationstack

import (
	"fmt"
	"math"
	"strings"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/timeutil"
)

// Price-estimation model. The upstream publishes schedules without fares, so
// offers carry a deterministic estimate from trip duration and stop count.
const (
	basePrice      = 60.0
	pricePerHour   = 40.0
	pricePerStop   = 30.0
	defaultMinutes = 90
)

// normalize converts scheduled flights into priced domain offers. Flights
// are direct as listed, so the stop count is always zero. The scan stops
// once TopN offers are collected.
func normalize(payload *flightsResponse, criteria domain.SearchCriteria) []domain.Offer {
	constraints := criteria.Constraints()

	offers := make([]domain.Offer, 0, len(payload.Data))
	for _, flight := range payload.Data {
		duration := scheduledDuration(flight)

		offer := domain.Offer{
			Price:            estimatePrice(duration, 0),
			Currency:         criteria.Currency,
			Airlines:         flight.Airline.Name,
			Stops:            0,
			TotalDurationMin: duration,
			SegmentsSummary:  summarize(flight),
			Type:             flight.FlightStatus,
			PurchaseURL:      searchURL(criteria),
			Source:           ProviderName,
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

// scheduledDuration derives the trip duration from the scheduled times, or
// nil when either end is missing or unparsable.
func scheduledDuration(flight flightEntry) *int {
	dep, err := timeutil.ParseTimestamp(flight.Departure.Scheduled)
	if err != nil {
		return nil
	}
	arr, err := timeutil.ParseTimestamp(flight.Arrival.Scheduled)
	if err != nil {
		return nil
	}

	minutes := int(arr.Sub(dep).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return &minutes
}

// estimatePrice derives a fare estimate from duration and stops. Unknown
// durations are priced as a 90-minute hop.
func estimatePrice(durationMin *int, stops int) float64 {
	minutes := defaultMinutes
	if durationMin != nil {
		minutes = *durationMin
	}
	hours := math.Max(1, float64(minutes)/60)
	return math.Round((basePrice+hours*pricePerHour+float64(stops)*pricePerStop)*100) / 100
}

// summarize renders the route with the flight designator when present,
// e.g. "CDG → JFK (AF006)".
func summarize(flight flightEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s → %s", stopLabel(flight.Departure), stopLabel(flight.Arrival))

	if number := designator(flight.Flight); number != "" {
		fmt.Fprintf(&b, " (%s)", number)
	}
	return b.String()
}

// stopLabel prefers the IATA code and falls back to the airport name.
func stopLabel(stop stopInfo) string {
	if stop.IATA != "" {
		return stop.IATA
	}
	return stop.Airport
}

// designator prefers the IATA flight number over the bare number.
func designator(number flightNumber) string {
	if number.IATA != "" {
		return number.IATA
	}
	return number.Number
}

// searchURL points buyers at a route-prefilled flight search, since the
// upstream has no booking links.
func searchURL(criteria domain.SearchCriteria) string {
	return fmt.Sprintf("https://www.google.com/travel/flights?hl=fr#flt=%s.%s",
		criteria.DepartureID, criteria.ArrivalID)
}
