package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter renders one row per pay event for spreadsheet import.
type CSVFormatter struct{}

// Name returns the registry name of the formatter.
func (CSVFormatter) Name() string { return "csv" }

// Format writes the period rows plus a trailing YTD row.
func (CSVFormatter) Format(result *domain.StubSequenceResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"date", "type", "gross",
		"pretax_benefits", "retirement", "post_tax",
		"fit_taxable", "ss_taxable", "medicare_taxable",
		"fit_withheld", "ss_withheld", "medicare_withheld",
		"net_pay",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	row := func(label, kind string, p domain.PaySummary) []string {
		return []string{
			label, kind, fixed(p.Gross),
			fixed(p.Deductions.FullyPretax), fixed(p.Deductions.Retirement), fixed(p.Deductions.PostTax),
			fixed(p.Taxable.FIT), fixed(p.Taxable.SS), fixed(p.Taxable.Medicare),
			fixed(p.Withheld.FIT), fixed(p.Withheld.SS), fixed(p.Withheld.Medicare),
			fixed(p.NetPay),
		}
	}

	for _, stub := range result.Stubs {
		if err := w.Write(row(stub.Date.Format("2006-01-02"), string(stub.Kind), stub.Current)); err != nil {
			return nil, err
		}
	}
	if err := w.Write(row("ytd", "", result.YTD)); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
