package cart

import (
	"math"

	"cartquote/internal/catalog"
	"cartquote/internal/errx"
)

// Index maps product id to product. When ids repeat the first occurrence wins.
func Index(products []catalog.Product) map[int]catalog.Product {
	idx := make(map[int]catalog.Product, len(products))
	for _, p := range products {
		if _, ok := idx[p.ID]; !ok {
			idx[p.ID] = p
		}
	}
	return idx
}

// EffectiveRating is the divisor used for stock; non-positive ratings count as 1.
func EffectiveRating(rating float64) float64 {
	if rating <= 0 || math.IsNaN(rating) {
		return 1
	}
	return rating
}

// StockReal is the rating-adjusted stock: floor(stock / rating).
func StockReal(stock int, rating float64) int {
	return int(math.Floor(float64(stock) / EffectiveRating(rating)))
}

// Volume multiplies the three dimensions; a missing factor yields 0.
func Volume(d catalog.Dimensions) float64 {
	return d.Height * d.Width * d.Depth
}

// Validate joins items against the catalog snapshot in input order. The first
// unknown product or short stock rejects the whole cart.
func Validate(items []LineItem, products []catalog.Product) ([]ValidatedLine, error) {
	idx := Index(products)
	out := make([]ValidatedLine, 0, len(items))
	for _, item := range items {
		p, ok := idx[int(item.ProductID)]
		if !ok {
			return nil, errx.New(errx.KindProductNotFound, "product with id %d not found", item.ProductID)
		}
		rating := EffectiveRating(p.Rating)
		line := ValidatedLine{
			LineItem:   item,
			Name:       p.Title,
			Stock:      p.Stock,
			Rating:     rating,
			StockReal:  StockReal(p.Stock, rating),
			Volume:     Volume(p.Dimensions),
			Dimensions: p.Dimensions,
		}
		if item.Quantity > line.StockReal {
			return nil, errx.New(errx.KindInsufficientStock, "insufficient stock for product %s", p.Title)
		}
		out = append(out, line)
	}
	return out, nil
}
