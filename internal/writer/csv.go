// Package writer serializes parsed statements for downstream consumers.
package writer

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// CSVWriter writes categorized transactions to CSV.
type CSVWriter struct {
	// IncludeHeader prepends account metadata rows before the column header.
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create output file %q", path)
	}
	defer f.Close()
	return w.Write(f, st)
}

// Write writes the statement in CSV form to out.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeHeader {
		meta := [][2]string{
			{"# Bank", string(st.Bank)},
			{"# Account Holder", st.AccountHolder},
			{"# Account Number", st.AccountNumber},
			{"# IFSC", st.IFSC},
			{"# Customer ID", st.CustomerID},
			{"# Statement Period", st.Period},
		}
		for _, row := range meta {
			if row[1] == "" {
				continue
			}
			if err := cw.Write([]string{row[0], row[1]}); err != nil {
				return errors.Wrap(err, "write metadata row")
			}
		}
	}

	if err := cw.Write([]string{"Date", "Description", "Type", "Amount", "Balance"}); err != nil {
		return errors.Wrap(err, "write csv header")
	}

	for _, txn := range st.Transactions {
		row := []string{
			txn.Date,
			txn.Description,
			string(txn.Type),
			formatAmount(txn.Amount),
			formatAmount(txn.Balance),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}

	return cw.Error()
}

func formatAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}
