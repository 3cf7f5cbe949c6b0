// Package mock provides test doubles for the offer search system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
)

// Provider is a configurable mock implementation of domain.OfferProvider.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and partial failures.
type Provider struct {
	name      string
	offers    []domain.Offer
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{
		name: name,
	}
}

// WithOffers configures the provider to return the given offers.
func (p *Provider) WithOffers(offers []domain.Offer) *Provider {
	p.offers = offers
	return p
}

// WithError configures the provider to return the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
// This is useful for testing timeout behavior.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// Fetch implements domain.OfferProvider.Fetch.
// It respects context cancellation, applies the configured delay,
// and returns the configured offers or error.
func (p *Provider) Fetch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Offer, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	// Apply delay if configured
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	// Check context after delay
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Return configured error if set
	if p.err != nil {
		return nil, p.err
	}

	return p.offers, nil
}

// CallCount returns the number of times Fetch was called.
// This is useful for verifying provider interactions.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Reset resets the call count to zero.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
}

// Ensure Provider implements domain.OfferProvider at compile time.
var _ domain.OfferProvider = (*Provider)(nil)

// SampleOffers returns a slice of sample offers for testing.
// Prices climb with the index so ranking order is predictable.
func SampleOffers(source string, count int) []domain.Offer {
	offers := make([]domain.Offer, count)

	for i := 0; i < count; i++ {
		duration := 150 + i*30
		offers[i] = domain.Offer{
			Price:            200 + float64(i*50),
			Currency:         "USD",
			Airlines:         sourceToAirline(source),
			Stops:            i % 2,
			TotalDurationMin: &duration,
			SegmentsSummary:  fmt.Sprintf("CDG (2026-09-10 %02d:00) -> JFK (2026-09-10 %02d:30) [%s]", 8+i, 10+i, sourceToAirline(source)),
			Type:             "one_way",
			PurchaseURL:      "https://example.com/book/" + source,
			Source:           source,
		}
	}

	return offers
}

// sourceToAirline maps mock source names to airline names.
func sourceToAirline(source string) string {
	airlines := map[string]string{
		"google_flights": "Air France",
		"aviasales":      "Delta",
		"aviationstack":  "United",
	}
	if name, ok := airlines[source]; ok {
		return name
	}
	return "Test Airline"
}
