package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cartquote/internal/shipping"

	"github.com/shopspring/decimal"
)

// ErrMissingPrice is returned when a 2xx response lacks the price field.
var ErrMissingPrice = errors.New("response has no price")

// Quote is the normalized shape returned by all providers.
type Quote struct {
	Courier string          `json:"courier"`
	Price   decimal.Decimal `json:"price"`
}

// Provider is an external shipping-quote service.
type Provider interface {
	Name() string
	Quote(ctx context.Context, p shipping.Payload) (Quote, error)
}

// ParsePrice converts a decoded JSON number into an exact price.
// A nil or empty number means the field was absent.
func ParsePrice(n *json.Number) (decimal.Decimal, error) {
	if n == nil || n.String() == "" {
		return decimal.Decimal{}, ErrMissingPrice
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price %q: %w", n.String(), err)
	}
	return d, nil
}
