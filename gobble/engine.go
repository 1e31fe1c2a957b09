// Package gobble implements the gobble-tick dollar-cost-averaging
// backtest: buy a fixed cash amount of stock every tick, sell each
// purchase as soon as it has risen by the exit rate.
package gobble

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks a malformed price series or bad strategy
// parameters. It is returned before any row is produced; there is no
// partial ledger.
var ErrInvalidInput = errors.New("gobble: invalid input")

// Params are the three strategy knobs.
type Params struct {
	InitialBank  float64 // starting cash, >= 0 (zero is legal: null position)
	GobbleAmount float64 // desired cash to deploy per tick, > 0
	ExitRate     float64 // fractional profit target; 0 means sell at or above entry
}

func (p Params) validate() error {
	if math.IsNaN(p.InitialBank) || math.IsInf(p.InitialBank, 0) || p.InitialBank < 0 {
		return fmt.Errorf("%w: initial bank %v must be non-negative and finite", ErrInvalidInput, p.InitialBank)
	}
	if math.IsNaN(p.GobbleAmount) || math.IsInf(p.GobbleAmount, 0) || p.GobbleAmount <= 0 {
		return fmt.Errorf("%w: gobble amount %v must be positive and finite", ErrInvalidInput, p.GobbleAmount)
	}
	if math.IsNaN(p.ExitRate) || math.IsInf(p.ExitRate, 0) {
		return fmt.Errorf("%w: exit rate %v must be finite", ErrInvalidInput, p.ExitRate)
	}
	return nil
}

func validatePrices(prices []float64) error {
	if len(prices) == 0 {
		return fmt.Errorf("%w: empty price series", ErrInvalidInput)
	}
	for i, px := range prices {
		if math.IsNaN(px) || math.IsInf(px, 0) || px <= 0 {
			return fmt.Errorf("%w: price %v at tick %d must be positive and finite", ErrInvalidInput, px, i)
		}
	}
	return nil
}

// Run simulates the strategy over the full price series and returns the
// per-tick ledger. It is a pure function: identical inputs yield
// identical ledgers, and concurrent calls need no coordination.
func Run(prices []float64, p Params) (*Ledger, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := validatePrices(prices); err != nil {
		return nil, err
	}

	led := &Ledger{
		Params: p,
		Rows:   make([]Row, 0, len(prices)),
		Lots:   make([]Lot, 0, len(prices)),
	}

	bank := p.InitialBank

	for tick, price := range prices {
		// Never deploy more than the bank holds.
		buyIn := math.Min(p.GobbleAmount, bank)
		qty := int64(math.Round(buyIn / price))

		// Rounding to whole shares can push the cost above the
		// available cash; step down until it fits.
		for qty > 0 && float64(qty)*price > bank {
			qty--
		}

		entryCost := float64(qty) * price
		target := price * (1 + p.ExitRate)

		led.Lots = append(led.Lots, Lot{
			Tick:        tick,
			EntryPrice:  price,
			Quantity:    qty,
			EntryCost:   entryCost,
			TargetPrice: target,
		})

		// Close every open lot whose target is at or below the current
		// price, the lot just created included. Ascending creation
		// order keeps runs reproducible.
		var exitTotal, profit float64
		for i := range led.Lots {
			lot := &led.Lots[i]
			if !lot.Open() || lot.TargetPrice > price {
				continue
			}
			lot.Exited = true
			lot.ExitTick = tick
			lot.ExitPrice = price
			lot.ExitProceeds = float64(lot.Quantity) * price
			exitTotal += lot.ExitProceeds
			profit += lot.ExitProceeds - lot.EntryCost
		}

		bank = bank - entryCost + exitTotal

		var stock int64
		for i := range led.Lots {
			if led.Lots[i].Open() {
				stock += led.Lots[i].Quantity
			}
		}
		stockVal := price * float64(stock)
		value := bank + stockVal

		gain := math.NaN() // undefined with a zero initial bank
		if p.InitialBank > 0 {
			gain = value / p.InitialBank
		}

		led.Rows = append(led.Rows, Row{
			Tick:      tick,
			Price:     price,
			Gobble:    qty,
			Enter:     entryCost,
			Target:    target,
			Exit:      exitTotal,
			Profit:    profit,
			Bank:      bank,
			Stock:     stock,
			StockVal:  stockVal,
			Value:     value,
			Gain:      gain,
			StockGain: price / prices[0],
		})
	}

	return led, nil
}
