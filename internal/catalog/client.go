package catalog

import (
	"net/http"
)

const (
	defaultBaseURL  = "https://dummyjson.com"
	defaultPageSize = 10
	defaultMaxPages = 1000
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=catalog_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads the product catalog page by page.
type Client struct {
	// baseURL is the base URL for the catalog API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// pageSize is the limit sent on every page request.
	pageSize int
	// maxPages bounds FetchAll against a source that never returns a short page.
	maxPages int
}

// ClientOption is a configuration option for the catalog client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithPageSize overrides the page size. Non-positive values are ignored.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithMaxPages overrides the page guard. Non-positive values are ignored.
func WithMaxPages(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// NewClient creates a new catalog client.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		pageSize:   defaultPageSize,
		maxPages:   defaultMaxPages,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// PageSize reports the configured page size.
func (c *Client) PageSize() int { return c.pageSize }
