package futures

import (
	"fmt"
	"regexp"
	"time"
)

// Contract expiry handling. The contract description carries a month code
// ("ESM9 Jun19" style); the reference expiry is that month normalized to its
// last day unless the reference data supplies an exact date.

var monthCodeRE = regexp.MustCompile(`[A-Z][a-z]{2}[0-9]{2}`)

// ParseExpiry extracts the month/year code from a contract description and
// returns the corresponding month-end date.
func ParseExpiry(description string) (Date, error) {
	code := monthCodeRE.FindString(description)
	if code == "" {
		return Date{}, fmt.Errorf("no month code in contract description %q", description)
	}
	t, err := time.Parse("Jan06", code)
	if err != nil {
		return Date{}, fmt.Errorf("invalid month code %q in %q: %w", code, description, err)
	}
	return NewDate(t.Year(), t.Month(), 1).EndOfMonth(), nil
}

// InferExpiries overwrites each contract's expiry with the last date its
// price series has an observation. This conflates data availability with the
// contract lifecycle and is only an approximation for data sets without an
// expiry calendar; prefer expiries from reference data.
func InferExpiries(contracts []Contract, prices *PriceTable) []Contract {
	inferred := make([]Contract, len(contracts))
	copy(inferred, contracts)
	for i, c := range inferred {
		if last, _, ok := prices.Latest(c.Ticker); ok {
			inferred[i].Expiry = last
		}
	}
	return inferred
}
