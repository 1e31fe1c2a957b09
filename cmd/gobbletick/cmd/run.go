package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/gobbletick/config"
	"github.com/rustyeddy/gobbletick/finnhub"
	"github.com/rustyeddy/gobbletick/gobble"
	"github.com/rustyeddy/gobbletick/journal"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch candle data and run the gobble-tick simulation",
	Long: `Run fetches candles from Finnhub (or the local cache), simulates the
strategy over the open prices, and writes the ledger CSV, charts, and a
journal record.

The Finnhub API token is read from the FINNHUB_TOKEN environment
variable (a local .env file is honored).

Example:
  gobbletick run -s SLAB -r W -c 52 --bank 50000 --gobble 1000 --rate 0.03`,
	RunE: runRun,
}

var (
	runConfigPath string
	runSymbol     string
	runResolution string
	runCount      int
	runFrom       string
	runTo         string
	runBank       float64
	runGobble     float64
	runRate       float64
	runCacheDir   string
	runOutDir     string
	runLabel      string
	runDBPath     string
	runNoCSV      bool
	runNoChart    bool
	runHead       int
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runConfigPath, "config", "", "path to YAML config (flags override it)")
	runCmd.Flags().StringVarP(&runSymbol, "symbol", "s", "SLAB", "stock symbol")
	runCmd.Flags().StringVarP(&runResolution, "resolution", "r", "W", "candle resolution (1, 5, 15, 30, 60, D, W, M)")
	runCmd.Flags().IntVarP(&runCount, "count", "c", 52, "number of most recent candles")
	runCmd.Flags().StringVar(&runFrom, "from", "", "range start (RFC3339, used when count is 0)")
	runCmd.Flags().StringVar(&runTo, "to", "", "range end (RFC3339, used when count is 0)")
	runCmd.Flags().Float64VarP(&runBank, "bank", "b", 50000, "initial bank balance")
	runCmd.Flags().Float64VarP(&runGobble, "gobble", "g", 1000, "cash to deploy per tick")
	runCmd.Flags().Float64Var(&runRate, "rate", 0.03, "exit rate (0.03 = sell 3% above entry)")
	runCmd.Flags().StringVar(&runCacheDir, "cache-dir", "./candle_data", "candle CSV cache directory")
	runCmd.Flags().StringVarP(&runOutDir, "out", "o", "./data", "output directory")
	runCmd.Flags().StringVar(&runLabel, "label", "", "optional label subdirectory under the output directory")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "./gobbletick.sqlite", "path to the SQLite run journal")
	runCmd.Flags().BoolVar(&runNoCSV, "no-csv", false, "skip the ledger CSV dump")
	runCmd.Flags().BoolVar(&runNoChart, "no-chart", false, "skip HTML chart output")
	runCmd.Flags().IntVar(&runHead, "head", 10, "ledger rows to print (0 = all)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	from, _ := cfg.Data.FromTime()
	to, _ := cfg.Data.ToTime()
	req := finnhub.CandlesRequest{
		Symbol:     cfg.Data.Symbol,
		Resolution: cfg.Data.Resolution,
		Count:      cfg.Data.Count,
		From:       from,
		To:         to,
	}

	cache := &finnhub.Cache{
		Dir:    cfg.Data.CacheDir,
		Client: finnhub.NewClient(os.Getenv("FINNHUB_TOKEN"), ""),
	}

	ctx := context.Background()
	cs, hit, err := cache.Fetch(ctx, req)
	if err != nil {
		return fmt.Errorf("fetch candles: %w", err)
	}

	source := "api"
	if hit {
		source = "cache"
	}
	fmt.Printf("Dataset %s: %d candles (%s)\n\n", req.ID(), cs.Len(), source)

	led, err := gobble.Run(cs.Opens(), cfg.Params())
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	rec, err := persistRun(cfg, cfg.Data.Symbol, req.ID(), led, cs)
	if err != nil {
		return err
	}

	journal.PrintRun(os.Stdout, rec)
	journal.PrintLedger(os.Stdout, led, runHead)

	return nil
}

// buildRunConfig starts from defaults or --config and applies any flags
// the user set explicitly.
func buildRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("symbol") {
		cfg.Data.Symbol = runSymbol
	}
	if flags.Changed("resolution") {
		cfg.Data.Resolution = runResolution
	}
	if flags.Changed("count") {
		cfg.Data.Count = runCount
	}
	if flags.Changed("from") {
		cfg.Data.From = runFrom
	}
	if flags.Changed("to") {
		cfg.Data.To = runTo
	}
	if flags.Changed("bank") {
		cfg.Strategy.Bank = runBank
	}
	if flags.Changed("gobble") {
		cfg.Strategy.GobbleAmount = runGobble
	}
	if flags.Changed("rate") {
		cfg.Strategy.ExitRate = runRate
	}
	if flags.Changed("cache-dir") {
		cfg.Data.CacheDir = runCacheDir
	}
	if flags.Changed("out") {
		cfg.Output.Dir = runOutDir
	}
	if flags.Changed("label") {
		cfg.Output.Label = runLabel
	}
	if flags.Changed("db") {
		cfg.Output.DBPath = runDBPath
	}
	if runNoCSV {
		cfg.Output.CSV = false
	}
	if runNoChart {
		cfg.Output.Chart = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
