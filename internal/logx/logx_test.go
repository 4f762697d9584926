package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	require.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNew_JSONWithServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Service: "cartquote", Level: "info", Output: &buf})

	l.Debug().Msg("hidden")
	l.Info().Str("courier", "Uder").Msg("quote.selected")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "cartquote", entry["service"])
	require.Equal(t, "Uder", entry["courier"])
	require.Equal(t, "quote.selected", entry["message"])
}
