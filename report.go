package futures

import (
	"time"
)

// Account is the reporting engine for one futures trading account. It holds
// the validated, immutable reference tables and derives every report from
// them on the fly. An Account holds no per-request state, so concurrent
// reports for different dates are safe.
type Account struct {
	tables   *TableSet
	currency string // common instrument currency, "" when mixed
}

// NewAccount snapshots the provider's tables and validates the referential
// invariants between them. Reports can only be generated from an account that
// passed this validation.
func NewAccount(p Provider) (*Account, error) {
	ts := NewTableSet(p.Instruments(), p.Contracts(), p.Trades(), p.Prices())
	if err := ts.Check(); err != nil {
		return nil, err
	}
	a := &Account{tables: ts}
	for i, ins := range ts.Instruments() {
		if i == 0 {
			a.currency = ins.Currency
		} else if a.currency != ins.Currency {
			a.currency = ""
			break
		}
	}
	return a, nil
}

// Report is the point-in-time portfolio report bundle: open positions, mark
// valuation and the daily, month-to-date and year-to-date P&L tables, all at
// the same aggregation level.
type Report struct {
	Date     Date
	Level    Level
	Currency string    // common instrument currency, "" when mixed
	Time     time.Time // generation time

	Contracts []Holding      // non-zero net positions
	Value     ValuationTable // mark valuation, non-zero keys only
	Daily     PnLTable
	Month     PnLTable
	Year      PnLTable
}

// Report produces the portfolio report for a reporting date and aggregation
// level. It is a pure function of the account's reference tables and its
// arguments: the report is produced atomically or not at all.
func (a *Account) Report(on Date, level Level) (*Report, error) {
	if level < ByAssetClass || level > ByContract {
		return nil, &InvalidRequestError{Field: "level", Value: level.name()}
	}
	if on.IsZero() {
		return nil, &InvalidRequestError{Field: "date", Value: on.String()}
	}

	facts, err := BuildFacts(a.tables, on)
	if err != nil {
		return nil, err
	}
	daily, err := ComputeDaily(facts)
	if err != nil {
		return nil, err
	}
	holdings, err := Holdings(daily, on)
	if err != nil {
		return nil, err
	}

	return &Report{
		Date:      on,
		Level:     level,
		Currency:  a.currency,
		Time:      time.Now(),
		Contracts: holdings,
		Value:     Valuation(daily, on, level),
		Daily:     Aggregate(daily, on, level, Day),
		Month:     Aggregate(daily, on, level, MonthToDate),
		Year:      Aggregate(daily, on, level, YearToDate),
	}, nil
}

// name is like String but safe on out-of-range values.
func (l Level) name() string {
	if l < ByAssetClass || l > ByContract {
		return "invalid"
	}
	return l.String()
}
