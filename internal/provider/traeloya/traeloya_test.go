package traeloya

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cartquote/internal/httpx"
	"cartquote/internal/provider"
	"cartquote/internal/provider/providertest"
	"cartquote/internal/shipping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_Waypoints(t *testing.T) {
	req := NewRequest(providertest.Payload())

	require.Len(t, req.Waypoints, 2)
	require.Equal(t, Waypoint{
		Type:          WaypointPickUp,
		AddressStreet: shipping.StoreOrigin.Address,
		City:          shipping.StoreOrigin.Commune,
		Phone:         shipping.StoreOrigin.Phone,
		Name:          shipping.StoreOrigin.Name,
	}, req.Waypoints[0])
	require.Equal(t, WaypointDropOff, req.Waypoints[1].Type)
	require.Equal(t, "Los Leones 123", req.Waypoints[1].AddressStreet)
	require.Equal(t, "Providencia", req.Waypoints[1].City)

	require.Equal(t, []Item{
		{Quantity: 2, Value: 1990, Volume: 24},
		{Quantity: 1, Value: 500, Volume: 0},
	}, req.Items)
}

func TestQuote_NestedTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-a", r.Header.Get("X-Api-Key"))
		var body Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.Waypoints, 2)
		_, _ = w.Write([]byte(`{"deliveryOffers":{"pricing":{"currency":"CLP","total":5000}}}`))
	}))
	defer srv.Close()

	p := New(Config{URL: srv.URL, APIKey: "key-a"}, httpx.New(time.Second))
	q, err := p.Quote(t.Context(), providertest.Payload())
	require.NoError(t, err)
	require.Equal(t, "TraeloYa", q.Courier)
	require.Equal(t, "5000", q.Price.String())
}

func TestQuote_MissingTotal(t *testing.T) {
	for _, body := range []string{`{}`, `{"deliveryOffers":{}}`, `{"deliveryOffers":{"pricing":{"currency":"CLP"}}}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		_, err := New(Config{URL: srv.URL}, httpx.New(time.Second)).Quote(t.Context(), providertest.Payload())
		srv.Close()
		require.ErrorIsf(t, err, provider.ErrMissingPrice, "body %s", body)
	}
}

func TestQuote_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(Config{URL: srv.URL}, httpx.New(time.Second)).Quote(t.Context(), providertest.Payload())
	var se *httpx.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestQuote_MissingURL(t *testing.T) {
	_, err := New(Config{}, httpx.New(time.Second)).Quote(t.Context(), providertest.Payload())
	require.ErrorContains(t, err, "missing URL")
}
