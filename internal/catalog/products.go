package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrTooManyPages is returned when the source keeps returning full pages past the guard.
var ErrTooManyPages = errors.New("catalog: page limit reached without a short page")

// Product is a catalog entry. Only the fields the cart pipeline reads are decoded.
type Product struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Stock      int        `json:"stock"`
	Rating     float64    `json:"rating"`
	Dimensions Dimensions `json:"dimensions"`
}

// Dimensions of a product. Missing factors decode as zero.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// StatusError reports a non-200 page response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s -> %d: %s", e.URL, e.StatusCode, e.Body)
}

type pageResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// FetchPage retrieves one page of products.
func (c *Client) FetchPage(ctx context.Context, limit, skip int) ([]Product, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))

	u := fmt.Sprintf("%s/products?%s", strings.TrimRight(c.baseURL, "/"), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, &StatusError{URL: u, StatusCode: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var page pageResponse
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding products page: %w", err)
	}
	return page.Products, nil
}

// FetchAll walks the catalog from the first page until a page shorter than the
// page size comes back. Pages are fetched sequentially and concatenated in order.
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	var all []Product
	for page := 1; page <= c.maxPages; page++ {
		items, err := c.FetchPage(ctx, c.pageSize, (page-1)*c.pageSize)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, items...)
		if len(items) < c.pageSize {
			return all, nil
		}
	}
	return nil, fmt.Errorf("%w (%d pages of %d)", ErrTooManyPages, c.maxPages, c.pageSize)
}
