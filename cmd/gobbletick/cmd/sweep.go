package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/gobbletick/gobble"
	"github.com/rustyeddy/gobbletick/journal"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep a parameter grid over a local price CSV",
	Long: `Sweep runs one simulation per combination of the given bank, gobble
amount, and exit rate values, in parallel, and prints a comparison
table.

Example:
  gobbletick sweep -p candle_data/SLAB_52W.csv --banks 25000,50000 --gobbles 500,1000 --rates 0.01,0.03,0.05`,
	RunE: runSweep,
}

var (
	sweepPricesPath string
	sweepBanks      []float64
	sweepGobbles    []float64
	sweepRates      []float64
)

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&sweepPricesPath, "prices", "p", "", "path to price CSV (required)")
	sweepCmd.Flags().Float64SliceVar(&sweepBanks, "banks", []float64{50000}, "initial bank values")
	sweepCmd.Flags().Float64SliceVar(&sweepGobbles, "gobbles", []float64{1000}, "gobble amount values")
	sweepCmd.Flags().Float64SliceVar(&sweepRates, "rates", []float64{0.01, 0.03, 0.05}, "exit rate values")

	sweepCmd.MarkFlagRequired("prices")
}

func runSweep(cmd *cobra.Command, args []string) error {
	prices, err := readPrices(sweepPricesPath)
	if err != nil {
		return fmt.Errorf("read prices: %w", err)
	}

	combos := gobble.Grid{
		Banks:         sweepBanks,
		GobbleAmounts: sweepGobbles,
		ExitRates:     sweepRates,
	}.Expand()
	if len(combos) == 0 {
		return fmt.Errorf("empty parameter grid")
	}

	fmt.Printf("Sweeping %d combinations over %d ticks\n\n", len(combos), len(prices))

	results := gobble.Sweep(prices, combos)
	journal.PrintSweep(os.Stdout, results)

	return nil
}
