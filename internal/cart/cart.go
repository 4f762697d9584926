package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cartquote/internal/catalog"
)

// ProductID accepts both JSON numbers and numeric strings; the storefront sends either.
type ProductID int

func (id *ProductID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("productId %s is not an integer", string(b))
	}
	*id = ProductID(n)
	return nil
}

// LineItem is a cart line as submitted by the client.
type LineItem struct {
	ProductID ProductID `json:"productId"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
	UnitPrice float64   `json:"price" validate:"gte=0"`
	Discount  float64   `json:"discount" validate:"gte=0"`
}

// ValidatedLine is a LineItem joined with its catalog entry.
type ValidatedLine struct {
	LineItem
	Name       string             `json:"name"`
	Stock      int                `json:"stock"`
	Rating     float64            `json:"rating"`
	StockReal  int                `json:"stock_real"`
	Volume     float64            `json:"volume"`
	Dimensions catalog.Dimensions `json:"dimensions"`
}
