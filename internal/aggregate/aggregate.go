package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cartquote/internal/errx"
	"cartquote/internal/metrics"
	"cartquote/internal/provider"
	"cartquote/internal/shipping"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each provider call.
const DefaultTimeout = 5 * time.Second

//go:generate mockgen -package=aggregate_test -destination=mock_provider_test.go cartquote/internal/provider Provider

// Aggregator fans a shipment out to every provider and gathers the quotes
// that came back. It never fails as a whole.
type Aggregator struct {
	providers []provider.Provider
	timeout   time.Duration
	log       zerolog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithTimeout sets the per-provider deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the fallback logger used when ctx carries none.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Aggregator) { a.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

func New(providers []provider.Provider, opts ...Option) *Aggregator {
	a := &Aggregator{
		providers: providers,
		timeout:   DefaultTimeout,
		log:       zerolog.Nop(),
		tracer:    otel.Tracer("cartquote/internal/aggregate"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Providers returns the configured provider names in call order.
func (a *Aggregator) Providers() []string {
	names := make([]string, 0, len(a.providers))
	for _, p := range a.providers {
		names = append(names, p.Name())
	}
	return names
}

// Quotes calls all providers concurrently and waits for every one of them.
// Failed, timed-out or malformed providers are left out. The result keeps
// provider order so that selection ties stay stable.
func (a *Aggregator) Quotes(ctx context.Context, sp shipping.Payload) []provider.Quote {
	slots := make([]*provider.Quote, len(a.providers))
	errs := make([]error, len(a.providers))

	var g errgroup.Group
	for i, p := range a.providers {
		g.Go(func() error {
			q, err := a.call(ctx, p, sp)
			if err != nil {
				errs[i] = err
				return nil
			}
			slots[i] = &q
			return nil
		})
	}
	_ = g.Wait()

	out := make([]provider.Quote, 0, len(slots))
	for _, q := range slots {
		if q != nil {
			out = append(out, *q)
		}
	}

	l := a.logger(ctx)
	if err := multierr.Combine(errs...); err != nil {
		l.Warn().
			Err(err).
			Int("excluded", len(multierr.Errors(err))).
			Int("quotes", len(out)).
			Msg("quote.providers_excluded")
	}
	l.Debug().Int("quotes", len(out)).Msg("quote.gathered")
	return out
}

type result struct {
	q   provider.Quote
	err error
}

// call runs one provider under its own deadline. The deadline holds even if
// the provider ignores ctx.
func (a *Aggregator) call(parent context.Context, p provider.Provider, sp shipping.Payload) (provider.Quote, error) {
	ctx, cancel := context.WithTimeout(parent, a.timeout)
	defer cancel()
	ctx, span := a.tracer.Start(ctx, "aggregate.provider", trace.WithAttributes(attribute.String("provider", p.Name())))
	defer span.End()

	start := time.Now()
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- result{err: fmt.Errorf("%s: panic: %v", p.Name(), rec)}
			}
		}()
		q, err := p.Quote(ctx, sp)
		ch <- result{q: q, err: err}
	}()

	var r result
	select {
	case r = <-ch:
	case <-ctx.Done():
		r.err = fmt.Errorf("%s: %w", p.Name(), ctx.Err())
	}

	outcome := metrics.OutcomeSuccess
	if r.err != nil {
		outcome = metrics.OutcomeError
		if errors.Is(r.err, context.DeadlineExceeded) {
			outcome = metrics.OutcomeTimeout
		}
		span.RecordError(r.err)
		span.SetStatus(codes.Error, outcome)
	} else {
		span.SetAttributes(attribute.String("price", r.q.Price.String()))
	}
	a.metrics.ObserveProvider(p.Name(), outcome, time.Since(start))
	return r.q, r.err
}

func (a *Aggregator) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.log
}

// SelectBest returns the cheapest quote. On equal prices the earlier quote wins.
func SelectBest(quotes []provider.Quote) (provider.Quote, error) {
	if len(quotes) == 0 {
		return provider.Quote{}, errx.New(errx.KindNoQuotes, "no shipping options available")
	}
	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.Price.LessThan(best.Price) {
			best = q
		}
	}
	return best, nil
}
