// Command quote runs the cart pipeline once against the configured catalog
// and couriers and prints the result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"cartquote/internal/app"
	"cartquote/internal/cart"
	"cartquote/internal/checkout"
	"cartquote/internal/config"
	"cartquote/internal/logx"
	"cartquote/internal/shipping"

	"github.com/rs/zerolog"
)

func main() {
	var (
		cartPath   string
		configPath string
		all        bool
		timeoutSec int
		logLevel   string
	)
	flag.StringVar(&cartPath, "cart", "cart.json", "JSON file with {products, customer_data}")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.BoolVar(&all, "all", false, "print every courier quote instead of the cheapest")
	flag.IntVar(&timeoutSec, "timeout", 30, "overall timeout seconds")
	flag.StringVar(&logLevel, "log-level", "warn", "log level")
	flag.Parse()

	log := logx.New(logx.Options{Level: logLevel, Format: "console", Output: os.Stderr})

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	req, err := readCart(cartPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cart")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	ctx = log.WithContext(ctx)

	if err := run(ctx, app.New(cfg, log, nil), req, all, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("quote")
	}
}

func readCart(path string) (checkout.Request, error) {
	var req checkout.Request
	b, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(b, &req); err != nil {
		return req, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

type quoteRow struct {
	Courier string      `json:"courier"`
	Price   json.Number `json:"price"`
}

func run(ctx context.Context, a *app.App, req checkout.Request, all bool, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if !all {
		q, err := a.Checkout.BestQuote(ctx, req)
		if err != nil {
			return err
		}
		return enc.Encode(quoteRow{Courier: q.Courier, Price: json.Number(q.Price.String())})
	}

	products, err := a.Catalog.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	lines, err := cart.Validate(req.Products, products)
	if err != nil {
		return err
	}
	quotes := a.Aggregator.Quotes(ctx, shipping.BuildPayload(req.Customer, lines))
	zerolog.Ctx(ctx).Info().Int("quotes", len(quotes)).Strs("providers", a.Aggregator.Providers()).Msg("quotes.collected")
	rows := make([]quoteRow, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, quoteRow{Courier: q.Courier, Price: json.Number(q.Price.String())})
	}
	return enc.Encode(struct {
		Quotes []quoteRow `json:"quotes"`
	}{Quotes: rows})
}
