package futures

import (
	"github.com/shopspring/decimal"
)

// Status classifies a day's P&L as realized or unrealized. It is purely a
// function of the contract expiry flag: once the expiry date has passed,
// every day's P&L attributed to the contract counts as realized, whether or
// not the quantity was actually closed out.
type Status int

const (
	Unrealised Status = iota
	Realised
)

func (s Status) String() string {
	if s == Realised {
		return "Realised"
	}
	return "Unrealised"
}

// Entry is one row of the daily P&L table: a fact row extended with the
// cumulative position and the decomposed P&L for its day.
type Entry struct {
	Fact

	Contracts     decimal.Decimal // cumulative position up to and including this row
	PrevContracts decimal.Decimal // position coming into this row
	PriceDiff     decimal.Decimal // settlement move since the previous row of this ticker
	PnLExisting   decimal.Decimal // mark-to-market effect on contracts already held
	PnLTraded     decimal.Decimal // execution vs. same-day settlement on the row's own trade
	DailyPnL      decimal.Decimal // PnLExisting + PnLTraded
	Status        Status
	Valuation     decimal.Decimal // mark value of the position after this row
}

// DailyTable is the per-day fact/P&L table, ordered like its fact table.
type DailyTable []Entry

// ComputeDaily walks a fact table in (day, ticker) order, carrying the
// cumulative contract count per ticker, and decomposes each row's P&L into
// the move on previously held contracts and the P&L on the row's own trade.
//
// The scan starts from inception, not from any report window: month- and
// year-to-date aggregation needs positions that predate the window carried
// forward correctly.
func ComputeDaily(facts FactTable) (DailyTable, error) {
	type state struct {
		contracts decimal.Decimal
		lastPrice decimal.Decimal
		seen      bool
	}
	states := make(map[string]*state)

	table := make(DailyTable, 0, len(facts))
	for _, f := range facts {
		if !f.Contract.Multiplier.IsPositive() {
			return nil, &DataIntegrityError{Ticker: f.Ticker, Reason: "non-positive multiplier " + f.Contract.Multiplier.String()}
		}
		st, ok := states[f.Ticker]
		if !ok {
			st = &state{}
			states[f.Ticker] = st
		}

		var diff decimal.Decimal
		if st.seen {
			diff = f.Price.Sub(st.lastPrice)
		}
		prev := st.contracts
		st.contracts = prev.Add(f.Amount)
		st.lastPrice = f.Price
		st.seen = true

		e := Entry{
			Fact:          f,
			Contracts:     st.contracts,
			PrevContracts: prev,
			PriceDiff:     diff,
			PnLExisting:   prev.Mul(diff).Mul(f.Contract.Multiplier),
			PnLTraded:     f.Amount.Mul(f.Price.Sub(f.ExecPrice)).Mul(f.Contract.Multiplier),
			Valuation:     f.Amount.Add(prev).Mul(f.Price).Mul(f.Contract.Multiplier),
		}
		e.DailyPnL = e.PnLExisting.Add(e.PnLTraded)
		if f.Expired {
			e.Status = Realised
		}
		table = append(table, e)
	}
	return table, nil
}
