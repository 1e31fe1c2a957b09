package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/gobbletick/journal"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs from the journal",
	RunE:  runRuns,
}

var (
	runsDBPath string
	runsLimit  int
)

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().StringVarP(&runsDBPath, "db", "d", "./gobbletick.sqlite", "path to the SQLite run journal")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum runs to list (0 = all)")
}

func runRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	recs, err := j.ListRuns(runsLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	journal.PrintRuns(os.Stdout, recs)
	return nil
}
