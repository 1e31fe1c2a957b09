package journal

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/rustyeddy/gobbletick/gobble"
)

// PrintRun writes a human-readable summary of one run.
func PrintRun(w io.Writer, r RunRecord) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Gobble Tick Run")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Created:       %s\n", r.Created.Format(time.RFC3339))
	fmt.Fprintf(w, "Symbol:        %s\n", r.Symbol)
	fmt.Fprintf(w, "Dataset:       %s\n", r.Dataset)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Strategy")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial Bank:  %.2f\n", r.InitialBank)
	fmt.Fprintf(w, "Gobble Amount: %.2f\n", r.GobbleAmount)
	fmt.Fprintf(w, "Exit Rate:     %.2f%%\n", r.ExitRate*100)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Result")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Ticks:         %d\n", r.Ticks)
	fmt.Fprintf(w, "Final Bank:    %.2f\n", r.FinalBank)
	fmt.Fprintf(w, "Open Shares:   %d (%d lots)\n", r.FinalStock, r.OpenLots)
	fmt.Fprintf(w, "Final Value:   %.2f\n", r.FinalValue)
	fmt.Fprintf(w, "Total Profit:  %.2f\n", r.TotalProfit)
	fmt.Fprintf(w, "ROI:           %s\n", gainLabel(r.Gain))
	fmt.Fprintf(w, "Stock ROI:     %.4f\n", r.StockGain)
	fmt.Fprintln(w)
}

// PrintLedger renders the first n ledger rows as a table, or all rows
// when n is non-positive.
func PrintLedger(w io.Writer, led *gobble.Ledger, n int) {
	if n <= 0 || n > len(led.Rows) {
		n = len(led.Rows)
	}

	table := tablewriter.NewWriter(w)
	table.Header("tick", "price", "gobble", "enter", "exit", "profit", "bank", "stock", "value", "gain")

	for _, r := range led.Rows[:n] {
		table.Append(
			fmt.Sprintf("%d", r.Tick),
			fmt.Sprintf("%.2f", r.Price),
			fmt.Sprintf("%d", r.Gobble),
			fmt.Sprintf("%.2f", r.Enter),
			fmt.Sprintf("%.2f", r.Exit),
			fmt.Sprintf("%.2f", r.Profit),
			fmt.Sprintf("%.2f", r.Bank),
			fmt.Sprintf("%d", r.Stock),
			fmt.Sprintf("%.2f", r.Value),
			gainLabel(r.Gain),
		)
	}

	table.Render()

	if n < len(led.Rows) {
		fmt.Fprintf(w, "  ... %d more ticks\n", len(led.Rows)-n)
	}
}

// PrintRuns renders journal records as a table, newest first.
func PrintRuns(w io.Writer, recs []RunRecord) {
	table := tablewriter.NewWriter(w)
	table.Header("run", "created", "symbol", "dataset", "bank", "gobble", "rate", "value", "profit", "roi")

	for _, r := range recs {
		table.Append(
			r.RunID,
			r.Created.Format("2006-01-02 15:04"),
			r.Symbol,
			r.Dataset,
			fmt.Sprintf("%.0f", r.InitialBank),
			fmt.Sprintf("%.0f", r.GobbleAmount),
			fmt.Sprintf("%.3f", r.ExitRate),
			fmt.Sprintf("%.2f", r.FinalValue),
			fmt.Sprintf("%.2f", r.TotalProfit),
			gainLabel(r.Gain),
		)
	}

	table.Render()
}

// PrintSweep renders sweep results as a table in input order.
func PrintSweep(w io.Writer, results []gobble.SweepResult) {
	table := tablewriter.NewWriter(w)
	table.Header("bank", "gobble", "rate", "value", "profit", "open lots", "roi")

	for _, res := range results {
		if res.Err != nil {
			table.Append(
				fmt.Sprintf("%.0f", res.Params.InitialBank),
				fmt.Sprintf("%.0f", res.Params.GobbleAmount),
				fmt.Sprintf("%.3f", res.Params.ExitRate),
				"error", res.Err.Error(), "", "",
			)
			continue
		}
		table.Append(
			fmt.Sprintf("%.0f", res.Params.InitialBank),
			fmt.Sprintf("%.0f", res.Params.GobbleAmount),
			fmt.Sprintf("%.3f", res.Params.ExitRate),
			fmt.Sprintf("%.2f", res.FinalValue),
			fmt.Sprintf("%.2f", res.TotalProfit),
			fmt.Sprintf("%d", res.OpenLots),
			gainLabel(res.Gain),
		)
	}

	table.Render()
}

func gainLabel(gain float64) string {
	if math.IsNaN(gain) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", gain)
}
