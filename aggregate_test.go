package futures

import (
	"testing"
	"time"
)

func findRow(t *testing.T, table PnLTable, key string) PnLRow {
	t.Helper()
	for _, r := range table {
		if r.Key == key {
			return r
		}
	}
	t.Fatalf("no row for key %q in %v", key, table)
	return PnLRow{}
}

func TestAggregate_Daily(t *testing.T) {
	on := D(2019, time.July, 2)
	daily := computeTestDaily(t, on)

	table := Aggregate(daily, on, ByContract, Day)
	// CCN9 was closed flat the day before: no open or traded position, so it
	// is not reportable on the day. ESM9 is open with a flat price: its zero
	// row stays, the daily table never prunes zero sums.
	if len(table) != 2 {
		t.Fatalf("daily rows = %v, want ESM9 and ESU9", table)
	}
	esm := findRow(t, table, "ESM9")
	if !esm.Total.IsZero() {
		t.Errorf("ESM9 daily total = %s, want 0", esm.Total)
	}
	esu := findRow(t, table, "ESU9")
	if want := dec(750); !esu.Total.Equal(want) || !esu.Unrealised.Equal(want) {
		t.Errorf("ESU9 daily = %+v, want unrealized %s", esu, want)
	}

	byClass := Aggregate(daily, on, ByAssetClass, Day)
	if len(byClass) != 1 {
		t.Fatalf("daily asset-class rows = %v, want Equity only", byClass)
	}
	equity := findRow(t, byClass, "Equity")
	if want := dec(750); !equity.Total.Equal(want) {
		t.Errorf("Equity daily total = %s, want %s", equity.Total, want)
	}
}

func TestAggregate_MonthToDate(t *testing.T) {
	on := D(2019, time.July, 2)
	daily := computeTestDaily(t, on)

	table := Aggregate(daily, on, ByContract, MonthToDate)
	// ESM9 nets to zero in July and is pruned from the monthly table.
	for _, r := range table {
		if r.Key == "ESM9" {
			t.Errorf("ESM9 should be pruned from the net-flat monthly table: %+v", r)
		}
	}
	if want := dec(2250); !findRow(t, table, "ESU9").Total.Equal(want) {
		t.Errorf("ESU9 MTD = %s, want %s", findRow(t, table, "ESU9").Total, want)
	}
	if want := dec(250); !findRow(t, table, "CCN9").Total.Equal(want) {
		t.Errorf("CCN9 MTD = %s, want %s", findRow(t, table, "CCN9").Total, want)
	}
}

func TestAggregate_YearToDate(t *testing.T) {
	on := D(2019, time.July, 2)
	daily := computeTestDaily(t, on)

	table := Aggregate(daily, on, ByContract, YearToDate)
	esm := findRow(t, table, "ESM9")
	if want := dec(6000); !esm.Realised.Equal(want) || !esm.Unrealised.IsZero() {
		t.Errorf("ESM9 YTD = %+v, want realized %s", esm, want)
	}
	esu := findRow(t, table, "ESU9")
	if want := dec(5250); !esu.Unrealised.Equal(want) || !esu.Realised.IsZero() {
		t.Errorf("ESU9 YTD = %+v, want unrealized %s", esu, want)
	}
	ccn := findRow(t, table, "CCN9")
	if want := dec(2500); !ccn.Unrealised.Equal(want) {
		t.Errorf("CCN9 YTD = %+v, want unrealized %s", ccn, want)
	}
}

func TestAggregate_LosslessAcrossLevels(t *testing.T) {
	on := D(2019, time.July, 2)
	daily := computeTestDaily(t, on)
	for _, window := range []Window{Day, MonthToDate, YearToDate} {
		classes := Aggregate(daily, on, ByAssetClass, window).Total()
		instruments := Aggregate(daily, on, ByInstrument, window).Total()
		contracts := Aggregate(daily, on, ByContract, window).Total()
		if !classes.Equal(contracts) || !classes.Equal(instruments) {
			t.Errorf("%s totals differ across levels: asset-class %s, instrument %s, contract %s",
				window, classes, instruments, contracts)
		}
	}
}

func TestAggregate_RealisedUnrealisedPartition(t *testing.T) {
	on := D(2019, time.July, 2)
	daily := computeTestDaily(t, on)
	for _, window := range []Window{Day, MonthToDate, YearToDate} {
		for _, level := range []Level{ByAssetClass, ByInstrument, ByContract} {
			for _, r := range Aggregate(daily, on, level, window) {
				if !r.Total.Equal(r.Realised.Add(r.Unrealised)) {
					t.Errorf("%s/%s %q: total %s != realized %s + unrealized %s",
						window, level, r.Key, r.Total, r.Realised, r.Unrealised)
				}
			}
		}
	}
}

func TestValuation(t *testing.T) {
	on := D(2019, time.July, 2)
	daily := computeTestDaily(t, on)

	table := Valuation(daily, on, ByAssetClass)
	if len(table) != 1 {
		t.Fatalf("valuation rows = %v, want Equity only (Cocoa is flat)", table)
	}
	if want := dec(590250); table[0].Key != "Equity" || !table[0].Valuation.Equal(want) {
		t.Errorf("valuation = %+v, want Equity %s", table[0], want)
	}

	byContract := Valuation(daily, on, ByContract)
	if len(byContract) != 2 {
		t.Fatalf("contract valuation rows = %v, want 2", byContract)
	}
}

func TestHoldings(t *testing.T) {
	on := D(2019, time.July, 2)
	daily := computeTestDaily(t, on)

	holdings, err := Holdings(daily, on)
	if err != nil {
		t.Fatalf("Holdings() error = %v", err)
	}
	want := []Holding{
		{Description: "E-mini S&P Jun19", Ticker: "ESM9", Contracts: 1},
		{Description: "E-mini S&P Sep19", Ticker: "ESU9", Contracts: 3},
	}
	if len(holdings) != len(want) {
		t.Fatalf("holdings = %+v, want %+v", holdings, want)
	}
	for i := range want {
		if holdings[i] != want[i] {
			t.Errorf("holdings[%d] = %+v, want %+v", i, holdings[i], want[i])
		}
	}
	if !holdings[0].Long() {
		t.Error("ESM9 holding should be long")
	}
}

func TestHoldings_FractionalContracts(t *testing.T) {
	ts := testTables()
	ts.trades = append(ts.trades, Trade{Day: D(2019, time.July, 1), Ticker: "ESU9", Amount: dec(0.5), Price: dec(2940)})
	on := D(2019, time.July, 2)
	facts, err := BuildFacts(ts, on)
	if err != nil {
		t.Fatalf("BuildFacts() error = %v", err)
	}
	daily, err := ComputeDaily(facts)
	if err != nil {
		t.Fatalf("ComputeDaily() error = %v", err)
	}
	if _, err := Holdings(daily, on); err == nil {
		t.Fatal("Holdings() should reject fractional contract counts")
	}
}

func TestParseLevelAndWindow(t *testing.T) {
	if l, err := ParseLevel("Asset Class"); err != nil || l != ByAssetClass {
		t.Errorf("ParseLevel(Asset Class) = %v, %v", l, err)
	}
	if _, err := ParseLevel("Currency"); err == nil {
		t.Error("ParseLevel should reject arbitrary grouping keys")
	}
	if w, err := ParseWindow("ytd"); err != nil || w != YearToDate {
		t.Errorf("ParseWindow(ytd) = %v, %v", w, err)
	}
	if _, err := ParseWindow("quarter"); err == nil {
		t.Error("ParseWindow should reject unsupported windows")
	}
}
