// Package output provides utilities for formatting and displaying amortization reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/loan-amortization/internal/report"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"github.com/iwvelando/loan-amortization/pkg/propertytax"
)

// CSVHeader is the first row written by CsvFormat.
var CSVHeader = []string{"period", "payment", "principal", "interest", "total_interest", "remaining_principal"}

// Write renders r in the named output format.
func Write(w io.Writer, outputFormat string, r *report.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, r)
	case constants.OutputFormatCSV:
		return CsvFormat(w, r.Schedule)
	case constants.OutputFormatJSON:
		return JSONFormat(w, r)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, r *report.Report) error {
	if _, err := fmt.Fprintln(w, r.Summary.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, amortization.RenderTable(r.Schedule)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return PropertyTaxFormat(w, r.PropertyTax)
}

// PropertyTaxFormat outputs the property tax estimate as two labelled lines.
func PropertyTaxFormat(w io.Writer, e propertytax.Estimate) error {
	_, err := fmt.Fprintf(w, "Initial home purchase price   %s\nMonthly property tax payment  %s\n",
		format.Padded(e.PurchasePrice, 12), format.Padded(e.MonthlyTax, 12))
	return err
}

// CsvFormat outputs the schedule in comma-separated value format.
func CsvFormat(w io.Writer, schedule []amortization.Period) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, p := range schedule {
		record := []string{
			strconv.Itoa(p.Number),
			Money(p.Payment).StringFixed(constants.CurrencyPlaces),
			Money(p.Principal).StringFixed(constants.CurrencyPlaces),
			Money(p.Interest).StringFixed(constants.CurrencyPlaces),
			Money(p.TotalInterest).StringFixed(constants.CurrencyPlaces),
			Money(p.RemainingPrincipal).StringFixed(constants.CurrencyPlaces),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// JSONFormat outputs the report as an indented JSON document.
func JSONFormat(w io.Writer, r *report.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(r))
}
