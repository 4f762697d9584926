package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"cartquote/internal/checkout"
	"cartquote/internal/errx"
	"cartquote/internal/provider"

	"github.com/rs/zerolog"
)

// quoter is the part of checkout.Service the handler needs.
type quoter interface {
	BestQuote(ctx context.Context, req checkout.Request) (provider.Quote, error)
}

type quoteResponse struct {
	Courier string      `json:"courier"`
	Price   json.Number `json:"price"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func handleCart(svc quoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkout.Request
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		q, err := svc.BestQuote(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, quoteResponse{Courier: q.Courier, Price: json.Number(q.Price.String())})
	}
}

func decodeJSONBody(r *http.Request, req *checkout.Request) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errx.Wrap(errx.KindInvalidRequest, err, "request body too large")
		}
		return errx.Wrap(errx.KindInvalidRequest, err, "invalid JSON body")
	}
	return req.Validate()
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errx.KindOf(err)
	status := errx.HTTPStatus(kind)
	ev := zerolog.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		ev = zerolog.Ctx(r.Context()).Error()
	}
	ev.Err(err).Str("kind", string(kind)).Int("status", status).Msg("cart.failed")
	writeJSON(w, status, errorResponse{Error: errx.PublicMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
