package gobble

// Row is one per-tick ledger record. Rows are append-only; history is
// never rewritten after the fact.
type Row struct {
	Tick   int
	Price  float64
	Gobble int64   // shares bought this tick
	Enter  float64 // cash spent this tick
	Target float64 // target price of this tick's lot
	Exit   float64 // cash received from all lots closed this tick
	Profit float64 // realized profit of lots closed this tick

	Bank      float64 // cash after this tick's buy and sells
	Stock     int64   // open shares after this tick
	StockVal  float64 // Price * Stock
	Value     float64 // Bank + StockVal
	Gain      float64 // Value / initial bank; NaN when the initial bank is zero
	StockGain float64 // Price / price at tick 0
}

// Ledger is the full output of one simulation: one row per input tick
// plus every lot ever created, kept for audit.
type Ledger struct {
	Params Params
	Rows   []Row
	Lots   []Lot
}

// Final returns the last ledger row.
func (l *Ledger) Final() Row {
	return l.Rows[len(l.Rows)-1]
}

// TotalProfit sums realized profit over all ticks.
func (l *Ledger) TotalProfit() float64 {
	var total float64
	for _, r := range l.Rows {
		total += r.Profit
	}
	return total
}

// OpenLotCount returns the number of lots still open at the end of the
// run (shares bought but never sold).
func (l *Ledger) OpenLotCount() int {
	n := 0
	for i := range l.Lots {
		if l.Lots[i].Open() {
			n++
		}
	}
	return n
}
