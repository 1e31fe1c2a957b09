package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const candleJSON = `{
	"o": [100.5, 101.0, 99.25],
	"h": [102.0, 103.0, 101.0],
	"l": [99.0, 100.5, 98.0],
	"c": [101.0, 99.5, 100.75],
	"v": [1200, 900, 1500],
	"t": [1709251200, 1709337600, 1709424000],
	"s": "ok"
}`

func TestCandlesRequestID(t *testing.T) {
	t.Parallel()

	count := CandlesRequest{Symbol: "SLAB", Resolution: "W", Count: 52}
	assert.Equal(t, "SLAB_52W", count.ID())

	from := time.Unix(1700000000, 0)
	to := time.Unix(1710000000, 0)
	ranged := CandlesRequest{Symbol: "AAPL", Resolution: "D", From: from, To: to}
	assert.Equal(t, "AAPL_1700000000_to_1710000000_by_D", ranged.ID())
}

func TestCandlesRequestValidate(t *testing.T) {
	t.Parallel()

	assert.Error(t, CandlesRequest{Resolution: "D", Count: 10}.Validate())
	assert.Error(t, CandlesRequest{Symbol: "SLAB", Count: 10}.Validate())
	assert.Error(t, CandlesRequest{Symbol: "SLAB", Resolution: "D"}.Validate())
	assert.NoError(t, CandlesRequest{Symbol: "SLAB", Resolution: "D", Count: 10}.Validate())
	assert.NoError(t, CandlesRequest{
		Symbol:     "SLAB",
		Resolution: "D",
		From:       time.Unix(1, 0),
		To:         time.Unix(2, 0),
	}.Validate())
}

func TestClientCandles(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stock/candle", r.URL.Path)
		gotQuery = map[string]string{
			"symbol":     r.URL.Query().Get("symbol"),
			"resolution": r.URL.Query().Get("resolution"),
			"count":      r.URL.Query().Get("count"),
			"token":      r.URL.Query().Get("token"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candleJSON))
	}))
	defer srv.Close()

	c := NewClient("test-token", srv.URL)
	cs, err := c.Candles(context.Background(), CandlesRequest{
		Symbol:     "SLAB",
		Resolution: "D",
		Count:      3,
	})
	require.NoError(t, err)

	assert.Equal(t, "SLAB", gotQuery["symbol"])
	assert.Equal(t, "D", gotQuery["resolution"])
	assert.Equal(t, "3", gotQuery["count"])
	assert.Equal(t, "test-token", gotQuery["token"])

	require.Equal(t, 3, cs.Len())
	assert.Equal(t, "SLAB", cs.Symbol)
	assert.Equal(t, 100.5, cs.Candles[0].Open)
	assert.Equal(t, 100.75, cs.Candles[2].Close)
	assert.Equal(t, time.Unix(1709251200, 0).UTC(), cs.Candles[0].Time)
}

func TestClientCandlesNoData(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"no_data"}`))
	}))
	defer srv.Close()

	c := NewClient("test-token", srv.URL)
	_, err := c.Candles(context.Background(), CandlesRequest{
		Symbol:     "SLAB",
		Resolution: "D",
		Count:      3,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data")
}

func TestClientCandlesRetriesServerErrors(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(candleJSON))
	}))
	defer srv.Close()

	c := NewClient("test-token", srv.URL)
	cs, err := c.Candles(context.Background(), CandlesRequest{
		Symbol:     "SLAB",
		Resolution: "D",
		Count:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 3, cs.Len())
}
