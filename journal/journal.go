// Package journal persists backtest output: the full per-tick ledger as
// CSV and a summary record per run in SQLite.
package journal

import (
	"time"

	"github.com/rustyeddy/gobbletick/gobble"
)

// RunRecord summarizes one completed simulation for the run journal.
type RunRecord struct {
	RunID   string
	Created time.Time
	Symbol  string
	Dataset string // deterministic dataset label, e.g. "SLAB_52W"

	InitialBank  float64
	GobbleAmount float64
	ExitRate     float64

	Ticks       int
	FinalBank   float64
	FinalStock  int64
	FinalValue  float64
	Gain        float64 // NaN when the run started with a zero bank
	StockGain   float64
	TotalProfit float64
	OpenLots    int
}

// Journal records completed runs.
type Journal interface {
	RecordRun(RunRecord) error
	Close() error
}

// NewRecord builds a RunRecord from a finished ledger.
func NewRecord(runID, symbol, dataset string, led *gobble.Ledger) RunRecord {
	final := led.Final()
	return RunRecord{
		RunID:        runID,
		Created:      time.Now().UTC(),
		Symbol:       symbol,
		Dataset:      dataset,
		InitialBank:  led.Params.InitialBank,
		GobbleAmount: led.Params.GobbleAmount,
		ExitRate:     led.Params.ExitRate,
		Ticks:        len(led.Rows),
		FinalBank:    final.Bank,
		FinalStock:   final.Stock,
		FinalValue:   final.Value,
		Gain:         final.Gain,
		StockGain:    final.StockGain,
		TotalProfit:  led.TotalProfit(),
		OpenLots:     led.OpenLotCount(),
	}
}

// StrategyID is the deterministic label for a parameter combination,
// used in output file names: "<bank>_<gobble>_<rate>".
func StrategyID(p gobble.Params) string {
	return formatParams(p)
}
