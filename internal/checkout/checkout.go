package checkout

import (
	"context"

	"cartquote/internal/aggregate"
	"cartquote/internal/cart"
	"cartquote/internal/catalog"
	"cartquote/internal/errx"
	"cartquote/internal/metrics"
	"cartquote/internal/provider"
	"cartquote/internal/shipping"

	"github.com/rs/zerolog"
)

// Request is the inbound cart.
type Request struct {
	Products []cart.LineItem   `json:"products" validate:"required,min=1,dive"`
	Customer shipping.Customer `json:"customer_data"`
}

// CatalogSource returns the full catalog snapshot.
type CatalogSource interface {
	FetchAll(ctx context.Context) ([]catalog.Product, error)
}

// QuoteSource gathers quotes from every provider.
type QuoteSource interface {
	Quotes(ctx context.Context, sp shipping.Payload) []provider.Quote
}

// Service runs the cart pipeline: catalog, validation, payload, quotes, selection.
type Service struct {
	catalog CatalogSource
	quotes  QuoteSource
	metrics *metrics.Metrics
}

func NewService(c CatalogSource, q QuoteSource, m *metrics.Metrics) *Service {
	return &Service{catalog: c, quotes: q, metrics: m}
}

// BestQuote returns the cheapest shipping quote for req. Every failure carries an errx.Kind.
func (s *Service) BestQuote(ctx context.Context, req Request) (provider.Quote, error) {
	q, err := s.bestQuote(ctx, req)
	if err != nil {
		s.metrics.IncCart(string(errx.KindOf(err)))
		return provider.Quote{}, err
	}
	s.metrics.IncCart("ok")
	return q, nil
}

func (s *Service) bestQuote(ctx context.Context, req Request) (provider.Quote, error) {
	l := zerolog.Ctx(ctx)

	products, err := s.catalog.FetchAll(ctx)
	if err != nil {
		return provider.Quote{}, errx.Wrap(errx.KindUpstreamCatalog, err, "failed to fetch products from catalog")
	}

	lines, err := cart.Validate(req.Products, products)
	if err != nil {
		return provider.Quote{}, err
	}
	l.Debug().
		Int("catalog_size", len(products)).
		Interface("cart", lines).
		Msg("cart.validated")

	quotes := s.quotes.Quotes(ctx, shipping.BuildPayload(req.Customer, lines))
	best, err := aggregate.SelectBest(quotes)
	if err != nil {
		return provider.Quote{}, err
	}
	l.Info().
		Str("courier", best.Courier).
		Str("price", best.Price.String()).
		Int("quotes", len(quotes)).
		Msg("quote.selected")
	return best, nil
}
