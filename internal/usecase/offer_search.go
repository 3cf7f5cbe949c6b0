// Package usecase contains the business logic for offer search operations.
// It orchestrates provider calls using the Scatter-Gather concurrency pattern
// and merges the normalized offers into a single ranked result.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/logger"
)

// Default timeout values.
const (
	DefaultGlobalTimeout   = 30 * time.Second
	DefaultProviderTimeout = 20 * time.Second
)

// OfferSearchUseCase defines the interface for offer search operations.
type OfferSearchUseCase interface {
	// Search queries all registered providers, merges their normalized
	// offers, ranks them by price and returns the truncated result together
	// with the full candidate pool size.
	Search(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error)
}

// offerSearchUseCase implements OfferSearchUseCase.
type offerSearchUseCase struct {
	providers       []domain.OfferProvider
	primary         string
	globalTimeout   time.Duration
	providerTimeout time.Duration
	log             *logger.Logger
}

// Config contains configuration options for the use case.
type Config struct {
	GlobalTimeout   time.Duration
	ProviderTimeout time.Duration

	// PrimaryProvider names the provider whose failure is terminal for the
	// whole search. Defaults to the first registered provider.
	PrimaryProvider string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		GlobalTimeout:   DefaultGlobalTimeout,
		ProviderTimeout: DefaultProviderTimeout,
	}
}

// NewOfferSearchUseCase creates a new OfferSearchUseCase over the registry's
/// providers. Registration order is significant: it fixes the merge order, the
// back-fill priority order, and (absent an explicit PrimaryProvider) which
// provider is primary. If config is nil, default timeouts are used.
func NewOfferSearchUseCase(registry *domain.ProviderRegistry, config *Config, log *logger.Logger) OfferSearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.GlobalTimeout > 0 {
			cfg.GlobalTimeout = config.GlobalTimeout
		}
		if config.ProviderTimeout > 0 {
			cfg.ProviderTimeout = config.ProviderTimeout
		}
		cfg.PrimaryProvider = config.PrimaryProvider
	}
	if log == nil {
		log = logger.Nop()
	}

	providers := registry.GetAll()
	primary := cfg.PrimaryProvider
	if primary == "" && len(providers) > 0 {
		primary = providers[0].Name()
	}

	return &offerSearchUseCase{
		providers:       providers,
		primary:         primary,
		globalTimeout:   cfg.GlobalTimeout,
		providerTimeout: cfg.ProviderTimeout,
		log:             log,
	}
}

// fetchResult holds the outcome of a single provider query.
type fetchResult struct {
	provider string
	offers   []domain.Offer
	err      error
	duration time.Duration
}

// Search implements OfferSearchUseCase.Search.
//
// Providers are queried concurrently, but the gathered pool concatenates
// per-provider results in registration order so that two identical requests
// against identical upstream responses produce identical ordered output.
func (uc *offerSearchUseCase) Search(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error) {
	if len(uc.providers) == 0 {
		return nil, domain.ErrNoProviders
	}

	ctx, cancel := context.WithTimeout(ctx, uc.globalTimeout)
	defer cancel()

	// Scatter: one goroutine per provider, each writing its own slot so the
	// gather phase needs no locking and keeps a deterministic order.
	results := make([]fetchResult, len(uc.providers))
	done := make(chan int, len(uc.providers))
	for i, provider := range uc.providers {
		go func(i int, p domain.OfferProvider) {
			results[i] = uc.queryProvider(ctx, p, criteria)
			done <- i
		}(i, provider)
	}
	for range uc.providers {
		<-done
	}

	// Gather: primary failures propagate, optional-provider failures are
	// logged and treated as zero results.
	var pool []domain.Offer
	for _, res := range results {
		if res.err != nil {
			if res.provider == uc.primary {
				return nil, fmt.Errorf("primary provider %s: %w", res.provider, res.err)
			}
			uc.log.Warn().
				Str("provider", res.provider).
				Dur("duration", res.duration).
				Err(res.err).
				Msg("Optional provider failed, continuing without it")
			continue
		}
		uc.log.Debug().
			Str("provider", res.provider).
			Int("offers", len(res.offers)).
			Dur("duration", res.duration).
			Msg("Provider returned")
		pool = append(pool, res.offers...)
	}

	// An empty pool is a valid result, not an error.
	if len(pool) == 0 {
		return domain.NewSearchResult(nil, 0), nil
	}

	ranked := rankWithBackfill(pool, providerOrder(uc.providers), criteria.TopN)
	return domain.NewSearchResult(ranked, len(pool)), nil
}

// queryProvider queries a single provider with its own timeout and panic
// recovery, so a misbehaving adapter cannot take down the whole search.
// A timed-out call is reported as that provider's unavailability.
func (uc *offerSearchUseCase) queryProvider(ctx context.Context, provider domain.OfferProvider, criteria domain.SearchCriteria) (res fetchResult) {
	ctx, cancel := context.WithTimeout(ctx, uc.providerTimeout)
	defer cancel()

	start := time.Now()
	res.provider = provider.Name()

	defer func() {
		res.duration = time.Since(start)
		if r := recover(); r != nil {
			res.offers = nil
			res.err = fmt.Errorf("provider panic: %v", r)
		}
	}()

	offers, err := provider.Fetch(ctx, criteria)
	if err != nil && ctx.Err() != nil {
		err = domain.NewProviderUnavailable(res.provider, 0, "request timed out")
	}

	res.offers = offers
	res.err = err
	return res
}

// providerOrder returns provider names in registration order.
func providerOrder(providers []domain.OfferProvider) []string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	return names
}

// Ensure offerSearchUseCase implements OfferSearchUseCase at compile time.
var _ OfferSearchUseCase = (*offerSearchUseCase)(nil)
