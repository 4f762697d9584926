// Package app wires config into the cart pipeline. It is shared by the
// server and the command-line tools.
package app

import (
	"time"

	"cartquote/internal/aggregate"
	"cartquote/internal/catalog"
	"cartquote/internal/checkout"
	"cartquote/internal/config"
	"cartquote/internal/httpx"
	"cartquote/internal/metrics"
	"cartquote/internal/provider"
	"cartquote/internal/provider/ratelimit"
	"cartquote/internal/provider/traeloya"
	"cartquote/internal/provider/uder"

	"github.com/rs/zerolog"
)

const userAgent = "cartquote/1.0"

// App holds the pipeline built from one Config.
type App struct {
	Catalog    *catalog.Client
	Aggregator *aggregate.Aggregator
	Checkout   *checkout.Service
}

// New builds the catalog client, the enabled providers and the checkout
// service. m may be nil.
func New(cfg config.Config, log zerolog.Logger, m *metrics.Metrics) *App {
	catalogHTTP := httpx.New(config.Timeout(cfg.Catalog.TimeoutSec, 10*time.Second))
	catalogHTTP.UserAgent = userAgent
	cat := catalog.NewClient(
		catalog.WithBaseURL(cfg.Catalog.BaseURL),
		catalog.WithHTTPClient(catalogHTTP.Plain()),
		catalog.WithPageSize(cfg.Catalog.PageSize),
		catalog.WithMaxPages(cfg.Catalog.MaxPages),
	)

	providers := Providers(cfg, log)
	agg := aggregate.New(providers,
		aggregate.WithTimeout(providerTimeout(cfg)),
		aggregate.WithLogger(log),
		aggregate.WithMetrics(m),
	)
	return &App{
		Catalog:    cat,
		Aggregator: agg,
		Checkout:   checkout.NewService(cat, agg, m),
	}
}

// Providers returns the enabled couriers, each rate limited when configured.
// A courier without a credential is still called; the upstream decides.
func Providers(cfg config.Config, log zerolog.Logger) []provider.Provider {
	var out []provider.Provider
	if cfg.TraeloYa.Enabled {
		if cfg.TraeloYa.APIKey == "" {
			log.Warn().Msg("traeloya.enabled=true but TRAELOYA_CREDENTIAL not set")
		}
		hc := httpx.New(config.Timeout(cfg.TraeloYa.TimeoutSec, aggregate.DefaultTimeout))
		hc.UserAgent = userAgent
		p := traeloya.New(traeloya.Config{
			URL:        cfg.TraeloYa.Endpoint,
			APIKey:     cfg.TraeloYa.APIKey,
			AuthHeader: cfg.TraeloYa.AuthHeader,
		}, hc)
		out = append(out, ratelimit.Wrap(p, ratelimit.PerMinute(cfg.TraeloYa.MaxRequestsPerMinute, cfg.TraeloYa.Burst)))
	}
	if cfg.Uder.Enabled {
		if cfg.Uder.APIKey == "" {
			log.Warn().Msg("uder.enabled=true but UDER_CREDENTIAL not set")
		}
		hc := httpx.New(config.Timeout(cfg.Uder.TimeoutSec, aggregate.DefaultTimeout))
		hc.UserAgent = userAgent
		p := uder.New(uder.Config{
			URL:        cfg.Uder.Endpoint,
			APIKey:     cfg.Uder.APIKey,
			AuthHeader: cfg.Uder.AuthHeader,
		}, hc)
		out = append(out, ratelimit.Wrap(p, ratelimit.PerMinute(cfg.Uder.MaxRequestsPerMinute, cfg.Uder.Burst)))
	}
	return out
}

// providerTimeout is the largest configured courier timeout.
func providerTimeout(cfg config.Config) time.Duration {
	d := time.Duration(0)
	for _, c := range []config.Courier{cfg.TraeloYa, cfg.Uder} {
		if c.Enabled {
			d = max(d, config.Timeout(c.TimeoutSec, aggregate.DefaultTimeout))
		}
	}
	if d == 0 {
		return aggregate.DefaultTimeout
	}
	return d
}
