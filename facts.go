package futures

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Fact is one enriched trade event: a trade (or a synthetic zero-amount row
// for a priced, untraded day) joined with its contract and instrument
// reference rows and the as-of settlement price for its day. A fact table is
// built fresh for every report request and never mutated afterwards.
type Fact struct {
	Day      Date
	Ticker   string
	Contract Contract
	Inst     Instrument

	Amount    decimal.Decimal // traded amount, zero on untraded days
	ExecPrice decimal.Decimal // average execution price, zero on untraded days
	Price     decimal.Decimal // settlement price as of Day (forward-filled)
	Expired   bool            // reporting date on or after contract expiry
}

// FactTable is a fact table sorted by (day, ticker). The ordering is what
// makes the cumulative position scan deterministic.
type FactTable []Fact

// BuildFacts joins the trades executed up to the reporting date against the
// contract and instrument tables and the price series.
//
// One row is produced per surviving trade, plus one zero-amount row per
// (traded ticker, priced day) pair with no trade, so that every trading day
// in range carries its mark-to-market move. Trades after the reporting date
// are discarded: the report never looks ahead.
func BuildFacts(p Provider, on Date) (FactTable, error) {
	contracts := make(map[string]Contract, len(p.Contracts()))
	for _, c := range p.Contracts() {
		contracts[c.Ticker] = c
	}
	instruments := make(map[int]Instrument, len(p.Instruments()))
	for _, ins := range p.Instruments() {
		instruments[ins.Code] = ins
	}
	prices := p.Prices()

	// One bucket of trades per (ticker, day), preserving execution order.
	type tradeKey struct {
		ticker string
		day    Date
	}
	traded := make(map[tradeKey]bool)
	var rows FactTable
	appendRow := func(t Trade) error {
		c, ok := contracts[t.Ticker]
		if !ok {
			return &ReferenceDataError{Table: "trade", Key: t.Ticker}
		}
		ins, ok := instruments[c.InstrumentCode]
		if !ok {
			return &ReferenceDataError{Table: "contract", Key: strconv.Itoa(c.InstrumentCode)}
		}
		px, ok := prices.AsOf(t.Ticker, t.Day)
		if !ok {
			return &MissingPriceError{Ticker: t.Ticker, Day: t.Day}
		}
		rows = append(rows, Fact{
			Day:       t.Day,
			Ticker:    t.Ticker,
			Contract:  c,
			Inst:      ins,
			Amount:    t.Amount,
			ExecPrice: t.Price,
			Price:     decimal.NewFromFloat(px),
			Expired:   !on.Before(c.Expiry),
		})
		return nil
	}

	var inRange []Trade
	for _, t := range p.Trades() {
		if t.Day.After(on) {
			continue
		}
		inRange = append(inRange, t)
	}
	for _, t := range inRange {
		if err := appendRow(t); err != nil {
			return nil, err
		}
		traded[tradeKey{t.Ticker, t.Day}] = true
	}

	// Synthetic zero-amount rows for priced days without a trade, so that the
	// position is marked on every trading day up to the reporting date. The
	// reporting date itself always gets a row per traded ticker, even when it
	// is not a trading day: the valuation there uses the forward-filled price.
	for _, ticker := range sortedTradedTickers(inRange) {
		marked := make(map[Date]bool)
		for day := range prices.Values(ticker) {
			if day.After(on) {
				break
			}
			marked[day] = true
			if traded[tradeKey{ticker, day}] {
				continue
			}
			if err := appendRow(Trade{Day: day, Ticker: ticker}); err != nil {
				return nil, err
			}
		}
		if !marked[on] && !traded[tradeKey{ticker, on}] {
			if err := appendRow(Trade{Day: on, Ticker: ticker}); err != nil {
				return nil, err
			}
		}
	}

	// Sort by (day, ticker), keeping same-day trades in execution order.
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Day.Compare(rows[j].Day); c != 0 {
			return c < 0
		}
		return rows[i].Ticker < rows[j].Ticker
	})
	return rows, nil
}
