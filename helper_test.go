package futures

import (
	"time"

	"github.com/shopspring/decimal"
)

// D is a helper for tests to build dates from constants.
func D(year int, month time.Month, day int) Date { return NewDate(year, month, day) }

// dec is a helper for tests to build decimals from constants.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// testTables builds a small but representative account: two instruments, three
// contracts (one expired before the July reporting dates), buys and sells
// including a position closed flat, and sparse price calendars.
func testTables() *TableSet {
	instruments := []Instrument{
		{Code: 10, Description: "E-mini S&P", AssetClass: "Equity", Currency: "USD"},
		{Code: 20, Description: "Cocoa", AssetClass: "Commodities", Currency: "USD"},
	}
	contracts := []Contract{
		{Ticker: "ESM9", Description: "E-mini S&P Jun19", InstrumentCode: 10, Multiplier: dec(50), Expiry: D(2019, time.June, 21)},
		{Ticker: "ESU9", Description: "E-mini S&P Sep19", InstrumentCode: 10, Multiplier: dec(50), Expiry: D(2019, time.September, 30)},
		{Ticker: "CCN9", Description: "Cocoa Jul19", InstrumentCode: 20, Multiplier: dec(10), Expiry: D(2019, time.July, 31)},
	}
	trades := []Trade{
		{Day: D(2019, time.June, 3), Ticker: "ESM9", Amount: dec(2), Price: dec(2900)},
		{Day: D(2019, time.June, 10), Ticker: "ESM9", Amount: dec(-1), Price: dec(2950)},
		{Day: D(2019, time.June, 24), Ticker: "ESU9", Amount: dec(3), Price: dec(2910)},
		{Day: D(2019, time.June, 5), Ticker: "CCN9", Amount: dec(5), Price: dec(2400)},
		{Day: D(2019, time.July, 1), Ticker: "CCN9", Amount: dec(-5), Price: dec(2450)},
	}
	prices := NewPriceTable()
	for _, p := range []struct {
		ticker string
		day    Date
		px     float64
	}{
		{"ESM9", D(2019, time.June, 3), 2910},
		{"ESM9", D(2019, time.June, 10), 2950},
		{"ESM9", D(2019, time.June, 14), 2960},
		{"ESM9", D(2019, time.June, 21), 2970},
		{"ESU9", D(2019, time.June, 24), 2915},
		{"ESU9", D(2019, time.June, 28), 2930},
		{"ESU9", D(2019, time.July, 1), 2940},
		{"ESU9", D(2019, time.July, 2), 2945},
		{"CCN9", D(2019, time.June, 5), 2410},
		{"CCN9", D(2019, time.June, 14), 2430},
		{"CCN9", D(2019, time.June, 21), 2440},
		{"CCN9", D(2019, time.June, 28), 2445},
		{"CCN9", D(2019, time.July, 1), 2450},
		{"CCN9", D(2019, time.July, 2), 2455},
	} {
		prices.Add(p.ticker, p.day, p.px)
	}
	return NewTableSet(instruments, contracts, trades, prices)
}
