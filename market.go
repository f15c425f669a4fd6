package futures

import (
	"iter"
	"slices"
	"sort"
)

// history stores a chronological series of settlement prices for one ticker.
// Dates are unique and the series is always sorted.
type history struct {
	days   []Date
	values []float64
}

// Append adds a point to the history. An existing value at that date is overwritten.
func (h *history) Append(on Date, px float64) {
	if i := slices.Index(h.days, on); i >= 0 {
		h.values[i] = px
		return
	}
	h.days, h.values = append(h.days, on), append(h.values, px)
	sort.Sort(chronological{h})
}

// chronological is a private implementation to keep the history sorted.
type chronological struct{ *history }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// Get returns the value at exactly 'day'.
func (h *history) Get(day Date) (float64, bool) {
	if i := slices.Index(h.days, day); i >= 0 {
		return h.values[i], true
	}
	return 0, false
}

// ValueAsOf returns the value on a given day, or the most recent value before
// it. This is the forward-fill lookup: a ticker that did not trade on a day
// still carries its last known price.
func (h *history) ValueAsOf(day Date) (float64, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if found {
		return h.values[i], true
	}
	// `i` is the insertion index; the last entry before 'day' is at i-1.
	if i == 0 {
		return 0, false // no observation on or before the given day
	}
	return h.values[i-1], true
}

// Latest returns the latest date and value, or false when empty.
func (h *history) Latest() (Date, float64, bool) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, 0, false
	}
	return h.days[last], h.values[last], true
}

// PriceTable holds the daily settlement price series for a set of tickers.
// The calendar is irregular: weekends, holidays and non-traded days are
// simply absent from a ticker's series.
type PriceTable struct {
	index map[string]*history
}

// NewPriceTable returns a new empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{index: make(map[string]*history)}
}

// Add records the settlement price of a ticker for a day.
func (p *PriceTable) Add(ticker string, on Date, px float64) {
	h, ok := p.index[ticker]
	if !ok {
		h = &history{}
		p.index[ticker] = h
	}
	h.Append(on, px)
}

// Has reports whether the table holds any observation for the ticker.
func (p *PriceTable) Has(ticker string) bool {
	h, ok := p.index[ticker]
	return ok && len(h.days) > 0
}

// Get returns the settlement price observed exactly on 'day'.
func (p *PriceTable) Get(ticker string, day Date) (float64, bool) {
	h, ok := p.index[ticker]
	if !ok {
		return 0, false
	}
	return h.Get(day)
}

// AsOf returns the most recent settlement price on or before 'day'.
func (p *PriceTable) AsOf(ticker string, day Date) (float64, bool) {
	h, ok := p.index[ticker]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(day)
}

// Latest returns the last observation of a ticker's series.
func (p *PriceTable) Latest(ticker string) (Date, float64, bool) {
	h, ok := p.index[ticker]
	if !ok {
		return Date{}, 0, false
	}
	return h.Latest()
}

// Tickers returns the tickers with at least one observation, sorted.
func (p *PriceTable) Tickers() []string {
	tickers := make([]string, 0, len(p.index))
	for t := range p.index {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// Values returns an iterator over a ticker's (day, price) pairs in
// chronological order.
func (p *PriceTable) Values(ticker string) iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		h, ok := p.index[ticker]
		if !ok {
			return
		}
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
