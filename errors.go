package futures

import "fmt"

// The report is produced atomically or not at all: the first error aborts the
// whole request. Every error kind carries the table, key or date needed to
// diagnose the failure without re-running.

// ReferenceDataError reports a broken link between reference tables: a trade
// referencing a ticker absent from the contract table, or a contract
// referencing an instrument code absent from the instrument table.
type ReferenceDataError struct {
	Table string // table holding the dangling reference
	Key   string // the unresolved key
}

func (e *ReferenceDataError) Error() string {
	return fmt.Sprintf("reference data: %s references unknown key %q", e.Table, e.Key)
}

// MissingPriceError reports that a ticker has no price observation on or
// before a day the computation needs one for.
type MissingPriceError struct {
	Ticker string
	Day    Date
}

func (e *MissingPriceError) Error() string {
	if e.Day.IsZero() {
		return fmt.Sprintf("no price series for %s", e.Ticker)
	}
	return fmt.Sprintf("no price for %s on or before %s", e.Ticker, e.Day)
}

// DataIntegrityError reports a violated derived invariant, such as a
// non-integer contract count or a non-positive multiplier.
type DataIntegrityError struct {
	Ticker string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	if e.Ticker == "" {
		return fmt.Sprintf("data integrity: %s", e.Reason)
	}
	return fmt.Sprintf("data integrity: %s: %s", e.Ticker, e.Reason)
}

// InvalidRequestError rejects a single malformed report request (unsupported
// aggregation level or window, unparseable date) without affecting any other
// request or process state.
type InvalidRequestError struct {
	Field string
	Value string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: unsupported %s %q", e.Field, e.Value)
}
