package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rustyeddy/gobbletick/chart"
	"github.com/rustyeddy/gobbletick/config"
	"github.com/rustyeddy/gobbletick/gobble"
	"github.com/rustyeddy/gobbletick/journal"
	"github.com/rustyeddy/gobbletick/market"
	"github.com/rustyeddy/gobbletick/pkg/id"
)

// persistRun writes the configured outputs for a finished simulation:
// ledger CSV and charts under <out>/<dataset>/, plus a journal record.
// cs may be nil when the run came from a plain price file.
func persistRun(cfg *config.Config, symbol, dataset string, led *gobble.Ledger, cs *market.CandleSet) (journal.RunRecord, error) {
	outDir := filepath.Join(cfg.Output.ResolvedDir(), dataset)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return journal.RunRecord{}, fmt.Errorf("output dir: %w", err)
	}

	stem := filepath.Join(outDir, journal.StrategyID(led.Params))

	if cfg.Output.CSV {
		if err := journal.WriteLedgerCSV(stem+".csv", led); err != nil {
			return journal.RunRecord{}, fmt.Errorf("write ledger csv: %w", err)
		}
		fmt.Printf("Ledger CSV:    %s.csv\n", stem)
	}

	if cfg.Output.Chart {
		if err := chart.WriteLedgerHTML(stem+".html", dataset, led); err != nil {
			return journal.RunRecord{}, fmt.Errorf("write ledger chart: %w", err)
		}
		fmt.Printf("Ledger chart:  %s.html\n", stem)

		if cs != nil {
			candlePath := filepath.Join(outDir, "candles.html")
			if err := chart.WriteCandleHTML(candlePath, cs); err != nil {
				return journal.RunRecord{}, fmt.Errorf("write candle chart: %w", err)
			}
			fmt.Printf("Candle chart:  %s\n", candlePath)
		}
	}
	fmt.Println()

	rec := journal.NewRecord(id.New(), symbol, dataset, led)

	j, err := journal.NewSQLite(cfg.Output.DBPath)
	if err != nil {
		return journal.RunRecord{}, fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	if err := j.RecordRun(rec); err != nil {
		return journal.RunRecord{}, fmt.Errorf("record run: %w", err)
	}

	return rec, nil
}
