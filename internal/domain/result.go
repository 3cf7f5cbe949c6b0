package domain

// SearchResult is the aggregated outcome of an offer search.
type SearchResult struct {
	// Results is the ranked, truncated offer list, sorted non-decreasing by
	// price with per-provider representation back-filled where slots allow.
	Results []Offer `json:"results"`

	// Count is the size of the full candidate pool collected across all
	// providers before truncation. Always >= len(Results).
	Count int `json:"count"`
}

// NewSearchResult builds a SearchResult, normalizing a nil slice to an empty
// one so the JSON encoding is always an array.
func NewSearchResult(offers []Offer, count int) *SearchResult {
	if offers == nil {
		offers = []Offer{}
	}
	return &SearchResult{
		Results: offers,
		Count:   count,
	}
}
