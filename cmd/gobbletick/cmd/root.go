package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gobbletick",
	Short: "Backtest the gobble-tick dollar-cost-averaging strategy",
	Long: `Gobbletick backtests a simple dollar-cost-averaging strategy against
historical price data: buy a fixed cash amount every tick, sell each
purchase as soon as it has risen by the exit rate.

It provides tools for:
  - Fetching and caching candle data from Finnhub
  - Running the simulation and dumping the full per-tick ledger to CSV
  - Rendering value/ROI and candlestick charts to HTML
  - Sweeping parameter grids in parallel
  - Journaling runs in SQLite for later comparison`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
