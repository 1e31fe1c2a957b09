// Package chart renders ledgers and candle data to self-contained HTML
// files using go-echarts.
package chart

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/rustyeddy/gobbletick/gobble"
	"github.com/rustyeddy/gobbletick/market"
)

// WriteLedgerHTML writes a two-chart page for one run: the value
// distribution over time (bank, stock value, total value) and price
// next to the strategy's ROI and buy-and-hold ROI.
func WriteLedgerHTML(path, title string, led *gobble.Ledger) error {
	ticks := make([]string, len(led.Rows))
	bank := make([]opts.LineData, len(led.Rows))
	stockVal := make([]opts.LineData, len(led.Rows))
	value := make([]opts.LineData, len(led.Rows))
	price := make([]opts.LineData, len(led.Rows))
	gain := make([]opts.LineData, len(led.Rows))
	stockGain := make([]opts.LineData, len(led.Rows))

	for i, r := range led.Rows {
		ticks[i] = fmt.Sprintf("%d", r.Tick)
		bank[i] = opts.LineData{Value: r.Bank}
		stockVal[i] = opts.LineData{Value: r.StockVal}
		value[i] = opts.LineData{Value: r.Value}
		price[i] = opts.LineData{Value: r.Price}
		gain[i] = opts.LineData{Value: r.Gain}
		stockGain[i] = opts.LineData{Value: r.StockGain}
	}

	dist := charts.NewLine()
	dist.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Value distribution"}))
	dist.SetXAxis(ticks).
		AddSeries("Cash in Bank", bank).
		AddSeries("Cash in Stock", stockVal).
		AddSeries("Total Value", value)

	perf := charts.NewLine()
	perf.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Price and performance"}))
	perf.SetXAxis(ticks).AddSeries("Price", price)
	// ROI is undefined for zero-bank runs; NaN is not valid JSON.
	if led.Params.InitialBank > 0 {
		perf.AddSeries("ROI", gain)
	}
	perf.AddSeries("Stock ROI", stockGain)

	page := components.NewPage()
	page.AddCharts(dist, perf)

	return render(path, page)
}

// WriteCandleHTML writes a candlestick chart of the raw dataset.
func WriteCandleHTML(path string, cs *market.CandleSet) error {
	dates := make([]string, cs.Len())
	klines := make([]opts.KlineData, cs.Len())
	for i, c := range cs.Candles {
		dates[i] = c.Time.Format("2006-01-02")
		klines[i] = opts.KlineData{Value: [4]float64{c.Open, c.Close, c.Low, c.High}}
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s (%s)", cs.Symbol, cs.Resolution),
	}))
	kline.SetXAxis(dates).AddSeries(cs.Symbol, klines)

	page := components.NewPage()
	page.AddCharts(kline)

	return render(path, page)
}

func render(path string, page *components.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return page.Render(f)
}
