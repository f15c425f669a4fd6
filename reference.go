package futures

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Reference data for a trading account: four immutable tables describing
// instruments, contracts, executed trades and settlement prices. They are
// loaded once and never mutated afterwards; every report is a pure function
// of these tables and the reporting date.

// Instrument is a group of futures contracts referencing the same underlying.
type Instrument struct {
	Code        int    // unique instrument code
	Description string
	AssetClass  string
	Currency    string // ISO 4217, uppercase
}

// Contract is a single tradable futures series.
type Contract struct {
	Ticker         string // unique ticker
	Description    string
	InstrumentCode int
	Multiplier     decimal.Decimal // positive contract multiplier
	Expiry         Date
}

// Trade is a single execution: a signed amount of contracts traded at an
// average price. Positive amounts are buys, negative are sells. Multiple
// trades per ticker per day are kept as-is, never pre-netted.
type Trade struct {
	Day    Date
	Ticker string
	Amount decimal.Decimal // signed contract count
	Price  decimal.Decimal // average execution price
}

// Provider serves the four reference tables. The core never loads data
// itself; a provider is injected so tests can substitute in-memory fixtures.
type Provider interface {
	Instruments() []Instrument
	Contracts() []Contract
	Trades() []Trade
	Prices() *PriceTable
}

// TableSet is the in-memory Provider used by the CSV loader and by tests.
type TableSet struct {
	instruments []Instrument
	contracts   []Contract
	trades      []Trade
	prices      *PriceTable
}

// NewTableSet builds an in-memory provider from the four tables. Slices are
// copied so later mutation by the caller cannot leak into reports.
func NewTableSet(instruments []Instrument, contracts []Contract, trades []Trade, prices *PriceTable) *TableSet {
	ts := &TableSet{
		instruments: append([]Instrument(nil), instruments...),
		contracts:   append([]Contract(nil), contracts...),
		trades:      append([]Trade(nil), trades...),
		prices:      prices,
	}
	if ts.prices == nil {
		ts.prices = NewPriceTable()
	}
	return ts
}

func (ts *TableSet) Instruments() []Instrument { return ts.instruments }
func (ts *TableSet) Contracts() []Contract     { return ts.contracts }
func (ts *TableSet) Trades() []Trade           { return ts.trades }
func (ts *TableSet) Prices() *PriceTable       { return ts.prices }

var _ Provider = (*TableSet)(nil)

// Check validates the referential invariants between the tables:
// every traded ticker has a contract row, a price series and a known expiry,
// every contract's instrument code has an instrument row, and every
// multiplier is positive.
// It returns the first violation found.
func (ts *TableSet) Check() error {
	instruments := make(map[int]bool, len(ts.instruments))
	for _, ins := range ts.instruments {
		instruments[ins.Code] = true
	}
	byTicker := make(map[string]Contract, len(ts.contracts))
	for _, c := range ts.contracts {
		byTicker[c.Ticker] = c
		if !instruments[c.InstrumentCode] {
			return &ReferenceDataError{Table: "contract", Key: strconv.Itoa(c.InstrumentCode)}
		}
		if !c.Multiplier.IsPositive() {
			return &DataIntegrityError{Ticker: c.Ticker, Reason: "non-positive multiplier " + c.Multiplier.String()}
		}
	}
	for _, t := range sortedTradedTickers(ts.trades) {
		c, ok := byTicker[t]
		if !ok {
			return &ReferenceDataError{Table: "trade", Key: t}
		}
		if !ts.prices.Has(t) {
			return &MissingPriceError{Ticker: t}
		}
		if c.Expiry.IsZero() {
			return &DataIntegrityError{Ticker: t, Reason: "unknown expiry"}
		}
	}
	return nil
}

// sortedTradedTickers returns the distinct traded tickers in lexicographic order.
func sortedTradedTickers(trades []Trade) []string {
	seen := make(map[string]bool, len(trades))
	var tickers []string
	for _, t := range trades {
		if !seen[t.Ticker] {
			seen[t.Ticker] = true
			tickers = append(tickers, t.Ticker)
		}
	}
	sort.Strings(tickers)
	return tickers
}
