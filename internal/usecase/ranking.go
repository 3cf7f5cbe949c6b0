package usecase

import (
	"sort"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
)

// rankWithBackfill sorts the candidate pool by price ascending (stable, so
// offers with equal prices keep their pool insertion order), truncates to
// topN, then back-fills provider coverage: every provider that contributed to
// the pool but lost all of its offers to truncation gets its cheapest
// unincluded offer appended, after which the selection is re-sorted and
// re-truncated. The back-fill runs once per provider, in the fixed priority
// order given by providerPriority.
//
// Re-truncation prefers evicting the most expensive offer of a provider that
// still holds multiple slots, so a freshly back-filled sole representative
// survives whenever topN >= the number of contributing providers. When every
// selected provider is down to a single slot there is nothing safe to evict
// and the most expensive offer goes regardless: coverage is not guaranteed
// when topN is smaller than the number of contributing providers. That
// limitation is intentional and observable, not a bug.
func rankWithBackfill(pool []domain.Offer, providerPriority []string, topN int) []domain.Offer {
	if len(pool) == 0 {
		return nil
	}

	sorted := make([]domain.Offer, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})

	limit := topN
	if limit > len(sorted) {
		limit = len(sorted)
	}

	// The selection is a set of indices into sorted. Because sorted is
	// ordered by price with stable ties, keeping the indices ascending keeps
	// the selection price-ordered, so re-sorting after an append reduces to
	// an integer sort.
	selection := make([]int, limit)
	included := make([]bool, len(sorted))
	for i := 0; i < limit; i++ {
		selection[i] = i
		included[i] = true
	}

	for _, provider := range providerPriority {
		if !contributed(sorted, provider) || representedIn(sorted, selection, provider) {
			continue
		}

		// Cheapest unincluded offer for this provider is the first match in
		// ascending-price order.
		candidate := -1
		for i, offer := range sorted {
			if !included[i] && offer.Source == provider {
				candidate = i
				break
			}
		}
		if candidate < 0 {
			continue
		}

		selection = append(selection, candidate)
		included[candidate] = true
		sort.Ints(selection)

		for len(selection) > topN {
			pos := evictionPos(sorted, selection)
			included[selection[pos]] = false
			selection = append(selection[:pos], selection[pos+1:]...)
		}
	}

	result := make([]domain.Offer, len(selection))
	for i, idx := range selection {
		result[i] = sorted[idx]
	}
	return result
}

// evictionPos picks the selection position to drop when over topN: the most
// expensive offer whose provider holds more than one slot, falling back to
// the most expensive offer overall when every provider is a sole
// representative.
func evictionPos(sorted []domain.Offer, selection []int) int {
	counts := make(map[string]int, len(selection))
	for _, idx := range selection {
		counts[sorted[idx].Source]++
	}
	for pos := len(selection) - 1; pos >= 0; pos-- {
		if counts[sorted[selection[pos]].Source] > 1 {
			return pos
		}
	}
	return len(selection) - 1
}

// contributed reports whether the provider has at least one offer in the pool.
func contributed(offers []domain.Offer, provider string) bool {
	for _, o := range offers {
		if o.Source == provider {
			return true
		}
	}
	return false
}

// representedIn reports whether the selection contains an offer from the provider.
func representedIn(sorted []domain.Offer, selection []int, provider string) bool {
	for _, idx := range selection {
		if sorted[idx].Source == provider {
			return true
		}
	}
	return false
}
