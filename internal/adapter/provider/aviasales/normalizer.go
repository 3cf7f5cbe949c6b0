package aviasales

import (
	"fmt"
	"strings"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/timeutil"
)

// fallbackSearchURL is used when an entry carries no deep link.
const fallbackSearchURL = "https://www.aviasales.com/search"

// summaryTimeLayout renders departure and return times inside the route
// summary, e.g. "10 Sep 14:30".
const summaryTimeLayout = "02 Jan 15:04"

// normalize converts cached fares into domain offers. Entries without a
// price are skipped, constraints are applied per offer, and the scan stops
// once TopN offers are collected.
func normalize(payload *pricesResponse, criteria domain.SearchCriteria) []domain.Offer {
	constraints := criteria.Constraints()

	offers := make([]domain.Offer, 0, len(payload.Data))
	for _, entry := range payload.Data {
		if entry.Price == nil {
			continue
		}

		offer := domain.Offer{
			Price:           *entry.Price,
			Currency:        criteria.Currency,
			Airlines:        entry.Airline,
			Stops:           entry.Transfers,
			SegmentsSummary: summarize(entry),
			Type:            ProviderName,
			PurchaseURL:     purchaseURL(entry),
			Source:          ProviderName,
		}
		if entry.Duration != nil && entry.Duration.Total != nil {
			minutes := *entry.Duration.Total
			offer.TotalDurationMin = &minutes
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

// summarize renders the route with departure and return times when they
// parse, e.g. "CDG → JFK (10 Sep 14:30) / Return 20 Sep 09:15".
func summarize(entry priceEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s → %s", entry.Origin, entry.Destination)

	if dep, err := timeutil.ParseTimestamp(entry.DepartureAt); err == nil {
		fmt.Fprintf(&b, " (%s)", dep.Format(summaryTimeLayout))
	}
	if ret, err := timeutil.ParseTimestamp(entry.ReturnAt); err == nil {
		fmt.Fprintf(&b, " / Return %s", ret.Format(summaryTimeLayout))
	}
	return b.String()
}

// purchaseURL prefers the entry's deep link over the generic search page.
func purchaseURL(entry priceEntry) string {
	if link := strings.TrimSpace(entry.Link); link != "" {
		return link
	}
	return fallbackSearchURL
}
