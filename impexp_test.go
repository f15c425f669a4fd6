package futures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestImportInstruments(t *testing.T) {
	in := `Instrument Code,Instrument Description,Instrument Asset Class,Instrument Currency
10, E-mini S&P ,Equity, usd
20,Cocoa,Commodities,USD
`
	instruments, err := ImportInstruments(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportInstruments() error = %v", err)
	}
	if len(instruments) != 2 {
		t.Fatalf("got %d instruments, want 2", len(instruments))
	}
	want := Instrument{Code: 10, Description: "E-mini S&P", AssetClass: "Equity", Currency: "USD"}
	if instruments[0] != want {
		t.Errorf("instruments[0] = %+v, want %+v (trimmed, currency uppercased)", instruments[0], want)
	}
}

func TestImportContracts(t *testing.T) {
	in := `Contract Ticker,Contract Description,Instrument Code,Contract Multiplier
ESM9 Index,E-mini S&P Jun19,10,50
CCN9 Comdty,Cocoa Jul19,20,10
`
	contracts, err := ImportContracts(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportContracts() error = %v", err)
	}
	if len(contracts) != 2 {
		t.Fatalf("got %d contracts, want 2", len(contracts))
	}
	c := contracts[0]
	if c.Ticker != "ESM9 Index" || !c.Multiplier.Equal(dec(50)) {
		t.Errorf("contracts[0] = %+v", c)
	}
	if c.Expiry != D(2019, time.June, 30) {
		t.Errorf("expiry = %s, want month end of the Jun19 code", c.Expiry)
	}
}

func TestImportContracts_NoMonthCode(t *testing.T) {
	in := `Contract Ticker,Contract Description,Instrument Code,Contract Multiplier
XXX,no code,10,50
`
	contracts, err := ImportContracts(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportContracts() error = %v", err)
	}
	if !contracts[0].Expiry.IsZero() {
		t.Errorf("expiry = %s, want open without a month code", contracts[0].Expiry)
	}
}

func TestImportTrades(t *testing.T) {
	in := `Trade Date,Contract Ticker,Traded Amount,Avg Price Traded
03/06/2019,ESM9 Index,2,2900
10/06/2019,ESM9 Index,-1,2950.25
`
	trades, err := ImportTrades(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportTrades() error = %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	if trades[0].Day != D(2019, time.June, 3) || !trades[0].Amount.Equal(dec(2)) {
		t.Errorf("trades[0] = %+v", trades[0])
	}
	if !trades[1].Amount.Equal(dec(-1)) || !trades[1].Price.Equal(dec(2950.25)) {
		t.Errorf("trades[1] = %+v", trades[1])
	}
}

func TestImportPrices(t *testing.T) {
	in := `Date,ESM9 Index,CCN9 Comdty
03/06/2019,2910,
04/06/2019,2920,2410
05/06/2019,,2415
`
	prices, err := ImportPrices(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportPrices() error = %v", err)
	}
	if px, ok := prices.Get("ESM9 Index", D(2019, time.June, 3)); !ok || px != 2910 {
		t.Errorf("ESM9 03/06 = %v, %v", px, ok)
	}
	// Blank cells leave no observation; as-of lookups forward-fill instead.
	if _, ok := prices.Get("ESM9 Index", D(2019, time.June, 5)); ok {
		t.Error("blank cell should not produce an observation")
	}
	if px, ok := prices.AsOf("ESM9 Index", D(2019, time.June, 5)); !ok || px != 2920 {
		t.Errorf("as-of over blank cell = %v, %v, want 2920", px, ok)
	}
	if _, ok := prices.Get("CCN9 Comdty", D(2019, time.June, 3)); ok {
		t.Error("CCN9 has no tick on 03/06")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		InstrumentFile: "Instrument Code,Instrument Description,Instrument Asset Class,Instrument Currency\n10,E-mini S&P,Equity,USD\n",
		ContractFile:   "Contract Ticker,Contract Description,Instrument Code,Contract Multiplier\nESM9,E-mini S&P Jun19,10,50\n",
		TradeFile:      "Trade Date,Contract Ticker,Traded Amount,Avg Price Traded\n03/06/2019,ESM9,2,2900\n",
		PriceFile:      "Date,ESM9\n03/06/2019,2910\n10/06/2019,2950\n",
		ExpiryFile:     "Contract Ticker,Contract Expiry\nESM9,21/06/2019\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	ts, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if err := ts.Check(); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	// The expiry calendar overrides the month-code date.
	if got := ts.Contracts()[0].Expiry; got != D(2019, time.June, 21) {
		t.Errorf("expiry = %s, want the calendar override 2019-06-21", got)
	}

	account, err := NewAccount(ts)
	if err != nil {
		t.Fatalf("NewAccount() error = %v", err)
	}
	report, err := account.Report(D(2019, time.June, 10), ByAssetClass)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if len(report.Contracts) != 1 || report.Contracts[0].Contracts != 2 {
		t.Errorf("contracts = %+v, want 2 ESM9", report.Contracts)
	}
}

func TestLoadDir_InferredExpiry(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		InstrumentFile: "Instrument Code,Instrument Description,Instrument Asset Class,Instrument Currency\n10,E-mini S&P,Equity,USD\n",
		ContractFile:   "Contract Ticker,Contract Description,Instrument Code,Contract Multiplier\nESM9,E-mini S&P front,10,50\n",
		TradeFile:      "Trade Date,Contract Ticker,Traded Amount,Avg Price Traded\n03/06/2019,ESM9,2,2900\n",
		PriceFile:      "Date,ESM9\n03/06/2019,2910\n10/06/2019,2950\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	ts, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	// No month code and no calendar: the expiry falls back to the last tick.
	if got := ts.Contracts()[0].Expiry; got != D(2019, time.June, 10) {
		t.Errorf("expiry = %s, want the last price date 2019-06-10", got)
	}
	if err := ts.Check(); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
}

func TestLoadDir_MissingFile(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Fatal("LoadDir() on an empty directory should fail")
	}
}
