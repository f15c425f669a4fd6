package futures

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ValuationRow is the mark value of the open position for one grouping key on
// the reporting date.
type ValuationRow struct {
	Key       string
	Valuation decimal.Decimal
}

// ValuationTable is a point-in-time valuation table, sorted by key.
type ValuationTable []ValuationRow

// Holding is the net position held in one contract on the reporting date.
// The contract count carries its sign: positive is long, negative short.
type Holding struct {
	Description string
	Ticker      string
	Contracts   int64
}

// Long reports whether the holding is a long position.
func (h Holding) Long() bool { return h.Contracts > 0 }

// closing returns the last entry per ticker on the reporting date, i.e. the
// position after all of the day's trades. Intraday rows carry partial
// cumulative counts and must not be double counted here.
func closing(daily DailyTable, on Date) []Entry {
	last := make(map[string]Entry)
	var tickers []string
	for _, e := range daily {
		if e.Day != on {
			continue
		}
		if _, ok := last[e.Ticker]; !ok {
			tickers = append(tickers, e.Ticker)
		}
		last[e.Ticker] = e // table order makes the latest row win
	}
	sort.Strings(tickers)
	entries := make([]Entry, 0, len(tickers))
	for _, t := range tickers {
		entries = append(entries, last[t])
	}
	return entries
}

// Valuation computes the mark value of the portfolio on the reporting date,
// grouped by the aggregation level. Keys whose value is exactly zero are
// dropped.
func Valuation(daily DailyTable, on Date, level Level) ValuationTable {
	sums := make(map[string]decimal.Decimal)
	for _, e := range closing(daily, on) {
		key := level.key(e)
		sums[key] = sums[key].Add(e.Valuation)
	}
	table := make(ValuationTable, 0, len(sums))
	for key, v := range sums {
		if v.IsZero() {
			continue
		}
		table = append(table, ValuationRow{Key: key, Valuation: v})
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Key < table[j].Key })
	return table
}

// Holdings lists the non-zero net positions held on the reporting date.
// Contract counts must be whole numbers; a fractional count is a corrupted
// input, reported rather than truncated.
func Holdings(daily DailyTable, on Date) ([]Holding, error) {
	var holdings []Holding
	for _, e := range closing(daily, on) {
		if e.Contracts.IsZero() {
			continue
		}
		if !e.Contracts.IsInteger() {
			return nil, &DataIntegrityError{Ticker: e.Ticker, Reason: "fractional contract count " + e.Contracts.String()}
		}
		holdings = append(holdings, Holding{
			Description: e.Contract.Description,
			Ticker:      e.Ticker,
			Contracts:   e.Contracts.IntPart(),
		})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Description < holdings[j].Description })
	return holdings, nil
}
