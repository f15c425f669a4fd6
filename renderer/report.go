// Package renderer renders report structures to markdown.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/quantfold/futures"
)

// ReportMarkdown renders the full report bundle to a markdown string.
func ReportMarkdown(r *futures.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Report on %s", r.Date))
	doc.PlainText(fmt.Sprintf("Aggregated by %s.", r.Level))

	doc.H2("Positions Held")
	if len(r.Contracts) == 0 {
		doc.PlainText("No open positions.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Contract", "Contracts", "Side"},
		}
		for _, h := range r.Contracts {
			side := "Short"
			if h.Long() {
				side = "Long"
			}
			table.Rows = append(table.Rows, []string{h.Description, strconv.FormatInt(h.Contracts, 10), side})
		}
		doc.Table(table)
	}

	doc.H2("Valuation")
	if len(r.Value) == 0 {
		doc.PlainText("No open positions to value.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{keyLabel(r.Level), "Valuation"},
		}
		for _, v := range r.Value {
			table.Rows = append(table.Rows, []string{v.Key, amount(r, v.Valuation)})
		}
		doc.Table(table)
	}

	pnlSection(doc, r, "Daily P&L", r.Daily)
	pnlSection(doc, r, "Month-to-Date P&L", r.Month)
	pnlSection(doc, r, "Year-to-Date P&L", r.Year)

	return doc.String()
}

func pnlSection(doc *md.Markdown, r *futures.Report, title string, rows futures.PnLTable) {
	doc.H2(title)
	if len(rows) == 0 {
		doc.PlainText("Nothing to report.")
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{keyLabel(r.Level), "Realised", "Unrealised", "Sum P/L"},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.Key,
			signed(r, row.Realised),
			signed(r, row.Unrealised),
			signed(r, row.Total),
		})
	}
	doc.Table(table)
}

func keyLabel(level futures.Level) string {
	switch level {
	case futures.ByAssetClass:
		return "Asset Class"
	case futures.ByInstrument:
		return "Instrument"
	default:
		return "Contract"
	}
}

// amount formats a value in the report currency; reports spanning several
// currencies fall back to plain numbers.
func amount(r *futures.Report, v decimal.Decimal) string {
	return futures.M(v, r.Currency).String()
}

func signed(r *futures.Report, v decimal.Decimal) string {
	return futures.M(v, r.Currency).SignedString()
}
