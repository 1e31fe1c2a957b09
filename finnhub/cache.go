package finnhub

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/gobbletick/market"
)

// Cache is a local CSV store in front of a Client. Datasets are keyed
// by CandlesRequest.ID, so an identical request never re-hits the API.
type Cache struct {
	Dir    string
	Client *Client
}

// Fetch returns the dataset for req, loading from the cache when
// present and falling back to the API (storing the result) otherwise.
// The second return value reports a cache hit.
func (c *Cache) Fetch(ctx context.Context, req CandlesRequest) (*market.CandleSet, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	path := c.Path(req)
	if _, err := os.Stat(path); err == nil {
		cs, err := ReadCandlesCSV(path, req.Symbol, req.Resolution)
		if err != nil {
			return nil, false, fmt.Errorf("finnhub: read cache %s: %w", path, err)
		}
		return cs, true, nil
	}

	cs, err := c.Client.Candles(ctx, req)
	if err != nil {
		return nil, false, err
	}

	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return nil, false, fmt.Errorf("finnhub: cache dir: %w", err)
	}
	if err := WriteCandlesCSV(path, cs); err != nil {
		return nil, false, fmt.Errorf("finnhub: write cache %s: %w", path, err)
	}
	slog.Info("cached candle dataset", "id", req.ID(), "path", path, "candles", cs.Len())

	return cs, false, nil
}

// Path returns the cache file for req.
func (c *Cache) Path(req CandlesRequest) string {
	return filepath.Join(c.Dir, req.ID()+".csv")
}

// WriteCandlesCSV writes a candle set as time,open,high,low,close,volume
// rows with an RFC3339 time column.
func WriteCandlesCSV(path string, cs *market.CandleSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}
	for _, cd := range cs.Candles {
		err := w.Write([]string{
			cd.Time.UTC().Format(time.RFC3339),
			fcsv(cd.Open),
			fcsv(cd.High),
			fcsv(cd.Low),
			fcsv(cd.Close),
			fcsv(cd.Volume),
		})
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadCandlesCSV reads a file written by WriteCandlesCSV. A header row
// is allowed but not required.
func ReadCandlesCSV(path, symbol, resolution string) (*market.CandleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	cs := &market.CandleSet{Symbol: symbol, Resolution: resolution}
	sawFirst := false

	for {
		row, err := r.Read()
		if err == io.EOF {
			return cs, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		cd, err := parseCandleRow(row)
		if err != nil {
			return nil, err
		}
		cs.Candles = append(cs.Candles, cd)
	}
}

func parseCandleRow(row []string) (market.Candle, error) {
	if len(row) < 5 {
		return market.Candle{}, fmt.Errorf("short row (need time,open,high,low,close[,volume]): %v", row)
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return market.Candle{}, fmt.Errorf("bad time %q: %w", row[0], err)
	}

	vals := make([]float64, 0, 5)
	for _, cell := range row[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("bad value %q: %w", cell, err)
		}
		vals = append(vals, v)
	}

	cd := market.Candle{
		Time:  ts,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}
	if len(vals) > 4 {
		cd.Volume = vals[4]
	}
	return cd, nil
}

func fcsv(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
