package domain

import "strings"

// Constraints is the client-supplied post-filter applied by every adapter
// after normalization and before an offer is collected. Adapters may
// over-fetch from their upstream to compensate for dropped records, but stop
// collecting once TopN offers have passed the filter.
type Constraints struct {
	// MaxPrice drops offers with Price above this amount.
	MaxPrice *float64

	// MaxStops drops offers with more stops than this value
	// (0 = direct flights only).
	MaxStops *int

	// Airlines restricts offers to those listing at least one of these
	// airline names. Matching is case-insensitive on whole names.
	Airlines []string
}

// Matches reports whether an offer passes all constraints.
// A zero Constraints matches everything.
func (c *Constraints) Matches(o Offer) bool {
	if c == nil {
		return true
	}

	if c.MaxPrice != nil && o.Price > *c.MaxPrice {
		return false
	}

	if c.MaxStops != nil && o.Stops > *c.MaxStops {
		return false
	}

	if len(c.Airlines) > 0 && !c.matchesAirline(o.Airlines) {
		return false
	}

	return true
}

// matchesAirline checks the comma-joined airline list of an offer against the
// whitelist. Offers with no airline information never match a whitelist.
func (c *Constraints) matchesAirline(airlines string) bool {
	if airlines == "" {
		return false
	}
	for _, offered := range strings.Split(airlines, ",") {
		offered = strings.TrimSpace(offered)
		for _, wanted := range c.Airlines {
			if strings.EqualFold(offered, strings.TrimSpace(wanted)) {
				return true
			}
		}
	}
	return false
}
