package shipping

import (
	"testing"

	"cartquote/internal/cart"

	"github.com/stretchr/testify/require"
)

func TestBuildPayload_UsesStoreOrigin(t *testing.T) {
	customer := Customer{Name: "Ana", Phone: "56900000000", Address: "Av. Siempre Viva 742", Commune: "Providencia", ShippingStreet: "Siempre Viva"}
	lines := []cart.ValidatedLine{
		{LineItem: cart.LineItem{ProductID: 2, Quantity: 1}, Name: "B"},
		{LineItem: cart.LineItem{ProductID: 1, Quantity: 3}, Name: "A"},
	}

	p := BuildPayload(customer, lines)

	require.Equal(t, customer, p.Customer)
	require.Equal(t, StoreOrigin, p.Origin)
	require.Equal(t, "Vitacura", p.Origin.Commune)
	require.Equal(t, []string{"B", "A"}, []string{p.Cart[0].Name, p.Cart[1].Name})
}
