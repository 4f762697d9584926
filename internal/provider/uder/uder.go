package uder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cartquote/internal/httpx"
	"cartquote/internal/provider"
	"cartquote/internal/shipping"
)

// Config controls the Uder provider.
type Config struct {
	Name       string
	URL        string
	APIKey     string
	AuthHeader string // header carrying APIKey, default "user"
}

// Provider quotes shipments against the Uder tarifier.
type Provider struct {
	cfg    Config
	client httpx.Doer
}

func New(cfg Config, hc httpx.Doer) *Provider {
	if cfg.Name == "" {
		cfg.Name = "Uder"
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = "user"
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

// Request is the flat Uder quote schema.
type Request struct {
	PickupAddress      string         `json:"pickup_address"`
	PickupName         string         `json:"pickup_name"`
	PickupPhoneNumber  string         `json:"pickup_phone_number"`
	DropoffAddress     string         `json:"dropoff_address"`
	DropoffName        string         `json:"dropoff_name"`
	DropoffPhoneNumber string         `json:"dropoff_phone_number"`
	ManifestItems      []ManifestItem `json:"manifest_items"`
}

type ManifestItem struct {
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	Price      float64    `json:"price"`
	Dimensions Dimensions `json:"dimensions"`
}

type Dimensions struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
}

// NewRequest maps a shipment into the flat schema. The drop-off uses the
// customer's address field, not the shipping street.
func NewRequest(sp shipping.Payload) Request {
	items := make([]ManifestItem, 0, len(sp.Cart))
	for _, l := range sp.Cart {
		items = append(items, ManifestItem{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
			Dimensions: Dimensions{
				Height: l.Dimensions.Height,
				Width:  l.Dimensions.Width,
				Depth:  l.Dimensions.Depth,
			},
		})
	}
	return Request{
		PickupAddress:      sp.Origin.Address,
		PickupName:         sp.Origin.Name,
		PickupPhoneNumber:  sp.Origin.Phone,
		DropoffAddress:     sp.Customer.Address,
		DropoffName:        sp.Customer.Name,
		DropoffPhoneNumber: sp.Customer.Phone,
		ManifestItems:      items,
	}
}

type apiResponse struct {
	Fee *json.Number `json:"fee"`
}

func (p *Provider) Quote(ctx context.Context, sp shipping.Payload) (provider.Quote, error) {
	if p.cfg.URL == "" {
		return provider.Quote{}, fmt.Errorf("%s: missing URL", p.cfg.Name)
	}
	header := http.Header{}
	if p.cfg.APIKey != "" {
		header.Set(p.cfg.AuthHeader, p.cfg.APIKey)
	}

	var api apiResponse
	if err := httpx.PostJSON(ctx, p.client, p.cfg.URL, header, NewRequest(sp), &api); err != nil {
		return provider.Quote{}, fmt.Errorf("%s: %w", p.cfg.Name, err)
	}
	price, err := provider.ParsePrice(api.Fee)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("%s: fee: %w", p.cfg.Name, err)
	}
	return provider.Quote{Courier: p.cfg.Name, Price: price}, nil
}
