package shipping

import "cartquote/internal/cart"

// Customer is the delivery contact. Address and ShippingStreet are kept
// separately because the providers read different fields.
type Customer struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Commune        string `json:"commune"`
	ShippingStreet string `json:"shipping_street"`
}

// Origin is the pick-up location.
type Origin struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Commune string `json:"commune"`
}

// StoreOrigin is where every shipment is picked up.
var StoreOrigin = Origin{
	Name:    "Tienda Flapp",
	Phone:   "56912345678",
	Address: "Juan de Valiente 3630",
	Commune: "Vitacura",
}

// Payload is the provider-neutral shipment description. It is built once per
// cart and only read afterwards.
type Payload struct {
	Customer Customer             `json:"customer_data"`
	Cart     []cart.ValidatedLine `json:"cart"`
	Origin   Origin               `json:"origin"`
}

// BuildPayload assembles the shipment for a validated cart.
func BuildPayload(customer Customer, lines []cart.ValidatedLine) Payload {
	return Payload{Customer: customer, Cart: lines, Origin: StoreOrigin}
}
