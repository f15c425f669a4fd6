package futures

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// This file handles the import format for the four reference tables: one CSV
// per table, headers as produced by the upstream accounting export, dates in
// dd/mm/yyyy. Strings are trimmed and currencies uppercased on the way in so
// the core only ever sees clean, typed data.

const dmyDateFormat = "2/1/2006" // permissive dd/mm/yyyy

// Default file names inside a data directory.
const (
	InstrumentFile = "InstrumentTable.csv"
	ContractFile   = "ContractTable.csv"
	TradeFile      = "TradeTable.csv"
	PriceFile      = "PriceData.csv"
	ExpiryFile     = "ExpiryTable.csv" // optional expiry calendar overrides
)

func parseDMY(s string) (Date, error) {
	t, err := time.Parse(dmyDateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want dd/mm/yyyy: %w", s, err)
	}
	return NewDate(t.Date()), nil
}

// table reads a whole CSV and indexes its columns by trimmed header name.
type table struct {
	header map[string]int
	rows   [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table: missing header row")
	}
	t := &table{header: make(map[string]int, len(records[0])), rows: records[1:]}
	for i, name := range records[0] {
		t.header[strings.TrimSpace(name)] = i
	}
	return t, nil
}

func (t *table) get(row []string, column string) (string, error) {
	i, ok := t.header[column]
	if !ok {
		return "", fmt.Errorf("missing column %q", column)
	}
	if i >= len(row) {
		return "", nil
	}
	return strings.TrimSpace(row[i]), nil
}

func (t *table) getDecimal(row []string, column string) (decimal.Decimal, error) {
	s, err := t.get(row, column)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("column %q: invalid number %q: %w", column, s, err)
	}
	return d, nil
}

// ImportInstruments reads the instrument table from 'r'.
func ImportInstruments(r io.Reader) ([]Instrument, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	var instruments []Instrument
	for _, row := range t.rows {
		code, err := t.get(row, "Instrument Code")
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			return nil, fmt.Errorf("invalid instrument code %q: %w", code, err)
		}
		description, err := t.get(row, "Instrument Description")
		if err != nil {
			return nil, err
		}
		assetClass, err := t.get(row, "Instrument Asset Class")
		if err != nil {
			return nil, err
		}
		currency, err := t.get(row, "Instrument Currency")
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, Instrument{
			Code:        n,
			Description: description,
			AssetClass:  assetClass,
			Currency:    strings.ToUpper(currency),
		})
	}
	return instruments, nil
}

// ImportContracts reads the contract table from 'r'. The expiry is parsed
// from the month code in the contract description and normalized to the end
// of that month; an expiry calendar read with [ImportExpiries] can override it.
func ImportContracts(r io.Reader) ([]Contract, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	var contracts []Contract
	for _, row := range t.rows {
		ticker, err := t.get(row, "Contract Ticker")
		if err != nil {
			return nil, err
		}
		description, err := t.get(row, "Contract Description")
		if err != nil {
			return nil, err
		}
		code, err := t.get(row, "Instrument Code")
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			return nil, fmt.Errorf("contract %s: invalid instrument code %q: %w", ticker, code, err)
		}
		multiplier, err := t.getDecimal(row, "Contract Multiplier")
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", ticker, err)
		}
		// Descriptions without a month code leave the expiry open;
		// LoadDir fills those from the expiry calendar or the prices.
		expiry, _ := ParseExpiry(description)
		contracts = append(contracts, Contract{
			Ticker:         ticker,
			Description:    description,
			InstrumentCode: n,
			Multiplier:     multiplier,
			Expiry:         expiry,
		})
	}
	return contracts, nil
}

// ImportTrades reads the trade table from 'r'.
func ImportTrades(r io.Reader) ([]Trade, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	var trades []Trade
	for _, row := range t.rows {
		day, err := t.get(row, "Trade Date")
		if err != nil {
			return nil, err
		}
		on, err := parseDMY(day)
		if err != nil {
			return nil, err
		}
		ticker, err := t.get(row, "Contract Ticker")
		if err != nil {
			return nil, err
		}
		amount, err := t.getDecimal(row, "Traded Amount")
		if err != nil {
			return nil, fmt.Errorf("trade %s on %s: %w", ticker, on, err)
		}
		price, err := t.getDecimal(row, "Avg Price Traded")
		if err != nil {
			return nil, fmt.Errorf("trade %s on %s: %w", ticker, on, err)
		}
		trades = append(trades, Trade{Day: on, Ticker: ticker, Amount: amount, Price: price})
	}
	return trades, nil
}

// ImportPrices reads the price table from 'r': a Date column followed by one
// column per ticker. Blank cells are days the ticker did not trade and leave
// no observation in the series.
func ImportPrices(r io.Reader) (*PriceTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty price table: missing header row")
	}
	header := records[0]
	if len(header) == 0 || strings.TrimSpace(header[0]) != "Date" {
		return nil, fmt.Errorf("price table: first column must be \"Date\"")
	}
	prices := NewPriceTable()
	for _, row := range records[1:] {
		on, err := parseDMY(row[0])
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(row) && i < len(header); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			px, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue // non-numeric cell is treated as no observation
			}
			prices.Add(strings.TrimSpace(header[i]), on, px)
		}
	}
	return prices, nil
}

// ImportExpiries reads an expiry calendar: one (Contract Ticker, Contract
// Expiry) row per contract, dates in dd/mm/yyyy.
func ImportExpiries(r io.Reader) (map[string]Date, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	expiries := make(map[string]Date, len(t.rows))
	for _, row := range t.rows {
		ticker, err := t.get(row, "Contract Ticker")
		if err != nil {
			return nil, err
		}
		day, err := t.get(row, "Contract Expiry")
		if err != nil {
			return nil, err
		}
		on, err := parseDMY(day)
		if err != nil {
			return nil, fmt.Errorf("expiry for %s: %w", ticker, err)
		}
		expiries[ticker] = on
	}
	return expiries, nil
}

// LoadDir loads the four reference tables from a directory, applying the
// optional expiry calendar when present.
func LoadDir(path string) (*TableSet, error) {
	instruments, err := loadWith(filepath.Join(path, InstrumentFile), ImportInstruments)
	if err != nil {
		return nil, err
	}
	contracts, err := loadWith(filepath.Join(path, ContractFile), ImportContracts)
	if err != nil {
		return nil, err
	}
	trades, err := loadWith(filepath.Join(path, TradeFile), ImportTrades)
	if err != nil {
		return nil, err
	}
	prices, err := loadWith(filepath.Join(path, PriceFile), ImportPrices)
	if err != nil {
		return nil, err
	}

	// Optional expiry calendar overriding the month-code expiries.
	if f, err := os.Open(filepath.Join(path, ExpiryFile)); err == nil {
		defer f.Close()
		expiries, err := ImportExpiries(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ExpiryFile, err)
		}
		for i, c := range contracts {
			if on, ok := expiries[c.Ticker]; ok {
				contracts[i].Expiry = on
			}
		}
	}

	// Contracts still without an expiry fall back to the last observed
	// price date.
	inferred := InferExpiries(contracts, prices)
	for i := range contracts {
		if contracts[i].Expiry.IsZero() {
			contracts[i].Expiry = inferred[i].Expiry
		}
	}

	return NewTableSet(instruments, contracts, trades, prices), nil
}

func loadWith[T any](filename string, load func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(filename)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	v, err := load(f)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	return v, nil
}
