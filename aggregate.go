package futures

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Level is the grouping key for rolled-up reporting. It is a closed enum,
// never a free-text column name, so a request can only ever group by one of
// the three supported keys.
type Level int

const (
	ByAssetClass Level = iota
	ByInstrument
	ByContract
)

func (l Level) String() string {
	switch l {
	case ByAssetClass:
		return "asset-class"
	case ByInstrument:
		return "instrument"
	case ByContract:
		return "contract"
	default:
		panic(fmt.Sprintf("unknown aggregation level %d", int(l)))
	}
}

// ParseLevel parses an aggregation level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asset-class", "asset_class", "assetclass", "asset class":
		return ByAssetClass, nil
	case "instrument":
		return ByInstrument, nil
	case "contract", "ticker":
		return ByContract, nil
	default:
		return ByAssetClass, &InvalidRequestError{Field: "level", Value: s}
	}
}

// key returns the grouping key of an entry for the level.
func (l Level) key(e Entry) string {
	switch l {
	case ByAssetClass:
		return e.Inst.AssetClass
	case ByInstrument:
		return e.Inst.Description
	case ByContract:
		return e.Ticker
	default:
		panic(fmt.Sprintf("unknown aggregation level %d", int(l)))
	}
}

// PnLRow is one aggregated P&L line: the realized and unrealized sums for a
// grouping key plus their row-wise total.
type PnLRow struct {
	Key        string
	Realised   decimal.Decimal
	Unrealised decimal.Decimal
	Total      decimal.Decimal // Realised + Unrealised
}

// PnLTable is an aggregated P&L table, sorted by key.
type PnLTable []PnLRow

// Total returns the sum of the Total column over all rows. For a given window
// and date it is identical across aggregation levels: the roll-up is lossless.
func (t PnLTable) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range t {
		sum = sum.Add(r.Total)
	}
	return sum
}

// Aggregate rolls the daily table up into one P&L table for a reporting date,
// a grouping level and a time window. The status column is pivoted into the
// Realised/Unrealised columns, absent combinations counting as zero.
//
// The daily window drops rows with no open or traded position (nothing to
// report); the month- and year-to-date windows instead keep them until the
// final pruning of net-flat keys, so a position opened and closed flat within
// the window still nets out of the monthly and yearly tables while remaining
// visible in the daily one.
func Aggregate(daily DailyTable, on Date, level Level, window Window) PnLTable {
	r := window.Range(on)

	sums := make(map[string]*PnLRow)
	for _, e := range daily {
		if !r.Contains(e.Day) {
			continue
		}
		if window == Day && e.Contracts.IsZero() {
			continue
		}
		key := level.key(e)
		row, ok := sums[key]
		if !ok {
			row = &PnLRow{Key: key}
			sums[key] = row
		}
		if e.Status == Realised {
			row.Realised = row.Realised.Add(e.DailyPnL)
		} else {
			row.Unrealised = row.Unrealised.Add(e.DailyPnL)
		}
	}

	table := make(PnLTable, 0, len(sums))
	for _, row := range sums {
		row.Total = row.Realised.Add(row.Unrealised)
		if window != Day && row.Total.IsZero() {
			continue // net-flat keys are omitted from the monthly and yearly tables
		}
		table = append(table, *row)
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Key < table[j].Key })
	return table
}
