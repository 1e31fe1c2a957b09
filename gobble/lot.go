package gobble

// Lot is a single purchase made at one tick. Exactly one lot is created
// per tick (possibly with zero quantity when the bank cannot cover a
// single share). Once closed a lot is immutable and excluded from all
// future close scans.
type Lot struct {
	Tick        int     // ordinal index into the price series
	EntryPrice  float64 // price at purchase
	Quantity    int64   // whole shares bought
	EntryCost   float64 // Quantity * EntryPrice
	TargetPrice float64 // EntryPrice * (1 + exit rate)

	Exited       bool
	ExitTick     int
	ExitPrice    float64
	ExitProceeds float64 // Quantity * ExitPrice
}

// Open reports whether the lot still holds sellable shares.
// Zero-quantity lots exist for bookkeeping continuity only and are
// never open, so they can't linger in close scans forever.
func (l *Lot) Open() bool {
	return !l.Exited && l.Quantity > 0
}

// Profit is the realized profit of a closed lot. Zero while open.
func (l *Lot) Profit() float64 {
	if !l.Exited {
		return 0
	}
	return l.ExitProceeds - l.EntryCost
}
