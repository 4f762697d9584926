package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf_ThroughWrapping(t *testing.T) {
	base := New(KindProductNotFound, "product with id %d not found", 7)
	wrapped := fmt.Errorf("validate: %w", base)

	require.Equal(t, KindProductNotFound, KindOf(wrapped))
	require.Equal(t, "product with id 7 not found", PublicMessage(wrapped))
	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestWrap_KeepsCauseOutOfPublicMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(KindUpstreamCatalog, cause, "failed to fetch products from catalog")

	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to fetch products from catalog", PublicMessage(err))
	require.Contains(t, err.Error(), "connection refused")
	require.NoError(t, Wrap(KindUpstreamCatalog, nil, "unused"))
}

func TestHTTPStatus(t *testing.T) {
	for _, k := range []Kind{KindInvalidRequest, KindUpstreamCatalog, KindProductNotFound, KindInsufficientStock, KindNoQuotes} {
		require.Equalf(t, http.StatusBadRequest, HTTPStatus(k), "kind %q", k)
	}
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(KindUnknown))
	require.Equal(t, "internal server error", PublicMessage(errors.New("boom")))
}
