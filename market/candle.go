// Package market holds the price-series value types shared by the data
// layer and the simulation.
package market

import "time"

// Candle represents one OHLC (Open, High, Low, Close) bar.
type Candle struct {
	Time time.Time

	Open  float64
	High  float64
	Low   float64
	Close float64

	Volume float64
}

// CandleSet is an ordered series of candles for one symbol at one
// resolution.
type CandleSet struct {
	Symbol     string
	Resolution string
	Candles    []Candle
}

func (cs *CandleSet) Len() int {
	return len(cs.Candles)
}

// Opens extracts the open prices in tick order. The gobble-tick
// strategy trades on opens.
func (cs *CandleSet) Opens() []float64 {
	out := make([]float64, len(cs.Candles))
	for i, c := range cs.Candles {
		out[i] = c.Open
	}
	return out
}

// Closes extracts the close prices in tick order.
func (cs *CandleSet) Closes() []float64 {
	out := make([]float64, len(cs.Candles))
	for i, c := range cs.Candles {
		out[i] = c.Close
	}
	return out
}

// Times extracts the candle timestamps in tick order.
func (cs *CandleSet) Times() []time.Time {
	out := make([]time.Time, len(cs.Candles))
	for i, c := range cs.Candles {
		out[i] = c.Time
	}
	return out
}
