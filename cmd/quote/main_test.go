package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cartquote/internal/app"
	"cartquote/internal/config"
	"cartquote/internal/errx"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCart(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadCart(t *testing.T) {
	req, err := readCart(writeCart(t, `{"products":[{"productId":"7","quantity":1}],"customer_data":{"name":"Ana"}}`))
	require.NoError(t, err)
	require.Len(t, req.Products, 1)
	assert.EqualValues(t, 7, req.Products[0].ProductID)
	assert.Equal(t, "Ana", req.Customer.Name)

	_, err = readCart(writeCart(t, `{"products":[]}`))
	assert.ErrorContains(t, err, "products must have at least 1 item(s)")

	_, err = readCart(writeCart(t, `{"products":[{"productId":7,"quantity":-2,"price":10}]}`))
	assert.ErrorContains(t, err, "products[0].quantity must be >= 0")
	assert.Equal(t, errx.KindInvalidRequest, errx.KindOf(err))

	_, err = readCart(writeCart(t, `{`))
	assert.ErrorContains(t, err, "parse")

	_, err = readCart(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	cat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[{"id":7,"title":"Desk Lamp","stock":50,"rating":5}]}`))
	}))
	defer cat.Close()
	ty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"deliveryOffers":{"pricing":{"total":3000}}}`))
	}))
	defer ty.Close()
	ud := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"fee":3500.5}`))
	}))
	defer ud.Close()

	cfg := config.Default()
	cfg.Catalog.BaseURL = cat.URL
	cfg.TraeloYa.Endpoint = ty.URL
	cfg.Uder.Endpoint = ud.URL
	a := app.New(cfg, zerolog.Nop(), nil)
	req, err := readCart(writeCart(t, `{"products":[{"productId":7,"quantity":2,"price":100}]}`))
	require.NoError(t, err)

	var best bytes.Buffer
	require.NoError(t, run(t.Context(), a, req, false, &best))
	assert.JSONEq(t, `{"courier":"TraeloYa","price":3000}`, best.String())

	var every bytes.Buffer
	require.NoError(t, run(t.Context(), a, req, true, &every))
	assert.JSONEq(t, `{"quotes":[{"courier":"TraeloYa","price":3000},{"courier":"Uder","price":3500.5}]}`, every.String())
}
