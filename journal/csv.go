package journal

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/rustyeddy/gobbletick/gobble"
)

var ledgerHeader = []string{
	"tick", "price", "gobble", "enter", "target", "exit", "profit",
	"bank", "stock", "stock_val", "value", "gain", "stock_gain",
}

// WriteLedgerCSV dumps the full ledger, one row per tick. An undefined
// gain (zero initial bank) is written as an empty field.
func WriteLedgerCSV(path string, led *gobble.Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ledgerHeader); err != nil {
		return err
	}

	for _, r := range led.Rows {
		gain := ""
		if !math.IsNaN(r.Gain) {
			gain = f6(r.Gain)
		}
		err := w.Write([]string{
			strconv.Itoa(r.Tick),
			f6(r.Price),
			strconv.FormatInt(r.Gobble, 10),
			f6(r.Enter),
			f6(r.Target),
			f6(r.Exit),
			f6(r.Profit),
			f6(r.Bank),
			strconv.FormatInt(r.Stock, 10),
			f6(r.StockVal),
			f6(r.Value),
			gain,
			f6(r.StockGain),
		})
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func f6(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// formatParams renders parameters the short way, without trailing
// zeros, so file names stay compact: 50000_1000_0.03.
func formatParams(p gobble.Params) string {
	return fmt.Sprintf("%s_%s_%s",
		strconv.FormatFloat(p.InitialBank, 'f', -1, 64),
		strconv.FormatFloat(p.GobbleAmount, 'f', -1, 64),
		strconv.FormatFloat(p.ExitRate, 'f', -1, 64),
	)
}
