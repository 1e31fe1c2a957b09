package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/gobbletick/config"
	"github.com/rustyeddy/gobbletick/finnhub"
	"github.com/rustyeddy/gobbletick/gobble"
	"github.com/rustyeddy/gobbletick/journal"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation over a local price CSV (offline)",
	Long: `Sim runs the gobble-tick simulation over prices from a local file, no
network involved. The file is either a cached candle CSV
(time,open,high,low,close,volume — opens are used) or a plain list with
one price per row (a "price" header row is allowed).

Example:
  gobbletick sim -p candle_data/SLAB_52W.csv --bank 50000 --gobble 1000 --rate 0.03`,
	RunE: runSim,
}

var (
	simPricesPath string
	simBank       float64
	simGobble     float64
	simRate       float64
	simOutDir     string
	simLabel      string
	simDBPath     string
	simNoCSV      bool
	simNoChart    bool
	simHead       int
)

func init() {
	rootCmd.AddCommand(simCmd)

	simCmd.Flags().StringVarP(&simPricesPath, "prices", "p", "", "path to price CSV (required)")
	simCmd.Flags().Float64VarP(&simBank, "bank", "b", 50000, "initial bank balance")
	simCmd.Flags().Float64VarP(&simGobble, "gobble", "g", 1000, "cash to deploy per tick")
	simCmd.Flags().Float64Var(&simRate, "rate", 0.03, "exit rate (0.03 = sell 3% above entry)")
	simCmd.Flags().StringVarP(&simOutDir, "out", "o", "./data", "output directory")
	simCmd.Flags().StringVar(&simLabel, "label", "", "optional label subdirectory under the output directory")
	simCmd.Flags().StringVarP(&simDBPath, "db", "d", "./gobbletick.sqlite", "path to the SQLite run journal")
	simCmd.Flags().BoolVar(&simNoCSV, "no-csv", false, "skip the ledger CSV dump")
	simCmd.Flags().BoolVar(&simNoChart, "no-chart", false, "skip HTML chart output")
	simCmd.Flags().IntVar(&simHead, "head", 10, "ledger rows to print (0 = all)")

	simCmd.MarkFlagRequired("prices")
}

func runSim(cmd *cobra.Command, args []string) error {
	prices, err := readPrices(simPricesPath)
	if err != nil {
		return fmt.Errorf("read prices: %w", err)
	}

	params := gobble.Params{
		InitialBank:  simBank,
		GobbleAmount: simGobble,
		ExitRate:     simRate,
	}

	led, err := gobble.Run(prices, params)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	dataset := strings.TrimSuffix(filepath.Base(simPricesPath), filepath.Ext(simPricesPath))
	cfg := &config.Config{
		Output: config.OutputConfig{
			Dir:    simOutDir,
			Label:  simLabel,
			CSV:    !simNoCSV,
			Chart:  !simNoChart,
			DBPath: simDBPath,
		},
	}

	rec, err := persistRun(cfg, dataset, dataset, led, nil)
	if err != nil {
		return err
	}

	journal.PrintRun(os.Stdout, rec)
	journal.PrintLedger(os.Stdout, led, simHead)

	return nil
}

// readPrices loads a price series from either a cached candle CSV or a
// plain one-price-per-row file.
func readPrices(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	firstRow, err := r.Read()
	if err != nil {
		return nil, err
	}

	// Candle cache format: delegate to the finnhub reader.
	if len(firstRow) > 0 && strings.EqualFold(strings.TrimSpace(firstRow[0]), "time") {
		cs, err := finnhub.ReadCandlesCSV(path, "", "")
		if err != nil {
			return nil, err
		}
		return cs.Opens(), nil
	}

	var prices []float64
	appendRow := func(row []string) error {
		if len(row) == 0 {
			return nil
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			return nil
		}
		px, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return fmt.Errorf("bad price %q: %w", cell, err)
		}
		prices = append(prices, px)
		return nil
	}

	// Allow a single "price" header row.
	if !strings.EqualFold(strings.TrimSpace(firstRow[0]), "price") {
		if err := appendRow(firstRow); err != nil {
			return nil, err
		}
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			return prices, nil
		}
		if err != nil {
			return nil, err
		}
		if err := appendRow(row); err != nil {
			return nil, err
		}
	}
}
