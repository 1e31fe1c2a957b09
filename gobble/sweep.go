package gobble

import "sync"

// SweepResult summarizes one parameter combination of a sweep.
type SweepResult struct {
	Params      Params
	FinalValue  float64
	Gain        float64
	TotalProfit float64
	OpenLots    int
	Err         error
}

// Sweep runs one simulation per parameter combination, concurrently.
// Each Run owns its own state, so no coordination beyond the join is
// needed. Results come back in input order.
func Sweep(prices []float64, combos []Params) []SweepResult {
	results := make([]SweepResult, len(combos))

	var wg sync.WaitGroup
	for i, p := range combos {
		wg.Add(1)
		go func(i int, p Params) {
			defer wg.Done()

			led, err := Run(prices, p)
			if err != nil {
				results[i] = SweepResult{Params: p, Err: err}
				return
			}

			final := led.Final()
			results[i] = SweepResult{
				Params:      p,
				FinalValue:  final.Value,
				Gain:        final.Gain,
				TotalProfit: led.TotalProfit(),
				OpenLots:    led.OpenLotCount(),
			}
		}(i, p)
	}
	wg.Wait()

	return results
}

// Grid describes a parameter cross product for Sweep.
type Grid struct {
	Banks         []float64
	GobbleAmounts []float64
	ExitRates     []float64
}

// Expand returns every combination in bank-major order.
func (g Grid) Expand() []Params {
	combos := make([]Params, 0, len(g.Banks)*len(g.GobbleAmounts)*len(g.ExitRates))
	for _, bank := range g.Banks {
		for _, amount := range g.GobbleAmounts {
			for _, rate := range g.ExitRates {
				combos = append(combos, Params{
					InitialBank:  bank,
					GobbleAmount: amount,
					ExitRate:     rate,
				})
			}
		}
	}
	return combos
}
