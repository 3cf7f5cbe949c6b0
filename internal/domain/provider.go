package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// OfferProvider is the uniform interface every provider adapter implements.
// The aggregator is polymorphic over this capability: adding or removing a
// provider must never require aggregator logic changes.
type OfferProvider interface {
	// Name returns the provider's unique identifier, used as the Source tag
	// on every offer it produces.
	Name() string

	// Fetch queries the provider and returns normalized canonical offers.
	// It honors the criteria's constraints (offers over max_price are dropped)
	// and returns at most criteria.TopN records.
	//
	// Optional providers return (nil, nil) when their credential is absent.
	// Transport or upstream HTTP failures are reported as
	// *ProviderUnavailableError.
	Fetch(ctx context.Context, criteria SearchCriteria) ([]Offer, error)
}

// ProviderRegistry holds the set of registered providers in a fixed
// registration order. The order doubles as the back-fill priority order, so
// the primary provider is registered first.
type ProviderRegistry struct {
	providers []OfferProvider
	byName    map[string]int
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		byName: make(map[string]int),
	}
}

// Register adds a provider to the registry. A provider with a name already
// registered replaces the previous one in place, preserving its position.
// Nil providers are ignored.
func (r *ProviderRegistry) Register(p OfferProvider) {
	if p == nil {
		return
	}
	if idx, ok := r.byName[p.Name()]; ok {
		r.providers[idx] = p
		return
	}
	r.byName[p.Name()] = len(r.providers)
	r.providers = append(r.providers, p)
}

// Get returns the provider with the given name, or nil if not registered.
func (r *ProviderRegistry) Get(name string) OfferProvider {
	idx, ok := r.byName[name]
	if !ok {
		return nil
	}
	return r.providers[idx]
}

// GetAll returns all registered providers in registration order.
func (r *ProviderRegistry) GetAll() []OfferProvider {
	out := make([]OfferProvider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Names returns the registered provider names in registration order.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}
