package ratelimit

import (
	"context"
	"fmt"

	"cartquote/internal/provider"
	"cartquote/internal/shipping"

	"golang.org/x/time/rate"
)

// Provider wraps a Provider and gates calls with a token bucket. A wait that
// outlives ctx fails the call, which the aggregator treats as a provider failure.
type Provider struct {
	P       provider.Provider
	Limiter *rate.Limiter
}

// PerMinute builds a limiter for rpm requests per minute with the given burst.
// It returns nil when rpm <= 0, meaning no limit.
func PerMinute(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// Wrap returns p unchanged when l is nil.
func Wrap(p provider.Provider, l *rate.Limiter) provider.Provider {
	if l == nil {
		return p
	}
	return &Provider{P: p, Limiter: l}
}

func (r *Provider) Name() string { return r.P.Name() }

func (r *Provider) Quote(ctx context.Context, sp shipping.Payload) (provider.Quote, error) {
	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			return provider.Quote{}, fmt.Errorf("%s: rate limit: %w", r.P.Name(), err)
		}
	}
	return r.P.Quote(ctx, sp)
}
