package main

import (
	"bytes"
	"testing"

	"cartquote/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRows(t *testing.T) {
	rows := buildRows([]catalog.Product{
		{ID: 9, Title: "Mug", Stock: 9, Rating: 4.7},
		{ID: 7, Title: "Desk Lamp", Stock: 20, Rating: 2, Dimensions: catalog.Dimensions{Width: 2, Height: 3, Depth: 4}},
		{ID: 8, Title: "Unrated", Stock: 5, Rating: 0},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, row{ID: 7, Title: "Desk Lamp", Stock: 20, Rating: 2, StockReal: 10, Volume: 24}, rows[0])
	assert.Equal(t, row{ID: 8, Title: "Unrated", Stock: 5, Rating: 0, StockReal: 5}, rows[1])
	assert.Equal(t, 1, rows[2].StockReal)
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRows(&buf, []catalog.Product{{ID: 1, Title: "A & B", Stock: 3, Rating: 1.5}}))
	assert.JSONEq(t, `[{"id":1,"title":"A & B","stock":3,"rating":1.5,"stock_real":2,"volume":0}]`, buf.String())
	assert.Contains(t, buf.String(), "A & B")
}
