package traeloya

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cartquote/internal/httpx"
	"cartquote/internal/provider"
	"cartquote/internal/shipping"
)

const (
	WaypointPickUp  = "PICK_UP"
	WaypointDropOff = "DROP_OFF"
)

// Config controls the TraeloYa provider.
type Config struct {
	Name       string
	URL        string
	APIKey     string
	AuthHeader string // header carrying APIKey, default X-Api-Key
}

// Provider quotes shipments against the TraeloYa tarifier.
type Provider struct {
	cfg    Config
	client httpx.Doer
}

func New(cfg Config, hc httpx.Doer) *Provider {
	if cfg.Name == "" {
		cfg.Name = "TraeloYa"
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = "X-Api-Key"
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

// Request is the TraeloYa quote schema.
type Request struct {
	Items     []Item     `json:"items"`
	Waypoints []Waypoint `json:"waypoints"`
}

type Item struct {
	Quantity int     `json:"quantity"`
	Value    float64 `json:"value"`
	Volume   float64 `json:"volume"`
}

type Waypoint struct {
	Type          string `json:"type"`
	AddressStreet string `json:"addressStreet"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	Name          string `json:"name"`
}

// NewRequest maps a shipment into the waypoint schema: pick-up at the origin,
// drop-off at the customer's shipping street.
func NewRequest(sp shipping.Payload) Request {
	items := make([]Item, 0, len(sp.Cart))
	for _, l := range sp.Cart {
		items = append(items, Item{Quantity: l.Quantity, Value: l.UnitPrice, Volume: l.Volume})
	}
	return Request{
		Items: items,
		Waypoints: []Waypoint{
			{
				Type:          WaypointPickUp,
				AddressStreet: sp.Origin.Address,
				City:          sp.Origin.Commune,
				Phone:         sp.Origin.Phone,
				Name:          sp.Origin.Name,
			},
			{
				Type:          WaypointDropOff,
				AddressStreet: sp.Customer.ShippingStreet,
				City:          sp.Customer.Commune,
				Phone:         sp.Customer.Phone,
				Name:          sp.Customer.Name,
			},
		},
	}
}

type apiResponse struct {
	DeliveryOffers *struct {
		Pricing *struct {
			Total    *json.Number `json:"total"`
			Currency string       `json:"currency"`
		} `json:"pricing"`
	} `json:"deliveryOffers"`
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
	var total *json.Number
	if api.DeliveryOffers != nil && api.DeliveryOffers.Pricing != nil {
		total = api.DeliveryOffers.Pricing.Total
	}
	price, err := provider.ParsePrice(total)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("%s: deliveryOffers.pricing.total: %w", p.cfg.Name, err)
	}
	return provider.Quote{Courier: p.cfg.Name, Price: price}, nil
}
