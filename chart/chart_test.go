package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/gobbletick/gobble"
	"github.com/rustyeddy/gobbletick/market"
)

func TestWriteLedgerHTML(t *testing.T) {
	t.Parallel()

	led, err := gobble.Run([]float64{100, 95, 105, 110}, gobble.Params{
		InitialBank:  5000,
		GobbleAmount: 500,
		ExitRate:     0.03,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "run.html")
	require.NoError(t, WriteLedgerHTML(path, "SLAB_52W", led))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Value distribution")
	assert.Contains(t, html, "Price and performance")
}

func TestWriteLedgerHTMLZeroBank(t *testing.T) {
	t.Parallel()

	led, err := gobble.Run([]float64{100, 110}, gobble.Params{
		InitialBank:  0,
		GobbleAmount: 500,
		ExitRate:     0.03,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "run.html")
	require.NoError(t, WriteLedgerHTML(path, "zero-bank", led))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"ROI"`)
}

func TestWriteCandleHTML(t *testing.T) {
	t.Parallel()

	cs := &market.CandleSet{
		Symbol:     "SLAB",
		Resolution: "W",
		Candles: []market.Candle{
			{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Open: 100, High: 110, Low: 95, Close: 105},
			{Time: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), Open: 105, High: 112, Low: 101, Close: 108},
		},
	}

	path := filepath.Join(t.TempDir(), "candles.html")
	require.NoError(t, WriteCandleHTML(path, cs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SLAB (W)")
}
