// Package providertest holds shared fixtures for provider tests.
package providertest

import (
	"cartquote/internal/cart"
	"cartquote/internal/catalog"
	"cartquote/internal/shipping"
)

// Payload returns a two-line shipment with distinct address fields.
func Payload() shipping.Payload {
	return shipping.BuildPayload(
		shipping.Customer{
			Name:           "Ana Rojas",
			Phone:          "56987654321",
			Address:        "Los Leones 123, depto 4",
			Commune:        "Providencia",
			ShippingStreet: "Los Leones 123",
		},
		[]cart.ValidatedLine{
			{
				LineItem:   cart.LineItem{ProductID: 7, Quantity: 2, UnitPrice: 1990, Discount: 5},
				Name:       "Desk Lamp",
				Stock:      20,
				Rating:     2,
				StockReal:  10,
				Volume:     24,
				Dimensions: catalog.Dimensions{Width: 2, Height: 3, Depth: 4},
			},
			{
				LineItem:  cart.LineItem{ProductID: 8, Quantity: 1, UnitPrice: 500},
				Name:      "Mug",
				Stock:     9,
				Rating:    4.7,
				StockReal: 1,
			},
		},
	)
}
