package parser

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

const (
	markerCredit = "CR"
	markerDebit  = "DR"

	fieldSeparator = " | "
)

// provisional is a structured-but-unresolved transaction: raw date, cleaned
// description, and the monetary tokens the variant extracted. What each token
// means (amount, balance, withdrawal, deposit) is a variant convention.
type provisional struct {
	date   string
	desc   string
	tokens []decimal.Decimal
	marker string // CR / DR when the variant carries an explicit marker
}

// variant is the capability set every statement variant must provide:
// patterns, field extraction, direction resolution, and its date layout.
// Conformance is checked at compile time via the concrete parser types.
type variant interface {
	Code() models.BankType
	BankName() string
	Patterns() *Registry

	// dateLayout is the time.Parse layout of the variant's raw dates.
	dateLayout() string
	// extract decomposes one merged record; ok=false drops the record.
	extract(rec mergedRecord) (provisional, bool)
	// resolve assigns a direction to every provisional row, in order.
	resolve(rows []provisional) []models.Transaction
	// metadata pulls account details out of the full document text.
	metadata(text string, st *models.Statement)
}

// base carries the three-stage pipeline shared by all variants:
// clean (merge wrapped lines) -> simplify (extract fields) -> categorize
// (resolve direction). It is unusable without a concrete variant.
type base struct {
	v variant
}

func (b *base) guard() error {
	if b.v == nil {
		return &InvalidConfigurationError{}
	}
	return nil
}

// Clean merges the raw OCR text into one normalized line per logical
// transaction record.
func (b *base) Clean(raw string) (string, error) {
	if err := b.guard(); err != nil {
		return "", err
	}
	records, _ := mergeRecords(splitLines(raw), b.v.Patterns())
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.text)
	}
	return strings.Join(out, "\n"), nil
}

// Simplify runs Clean and then field extraction, producing one pipe-delimited
// line per surviving record: date, description, then the variant's monetary
// tokens (and the Cr/Dr marker when one exists). Records missing a date or
// short on tokens are dropped, not errored.
func (b *base) Simplify(raw string) (string, error) {
	if err := b.guard(); err != nil {
		return "", err
	}
	rows, _ := b.extractRows(raw)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, serializeRow(row))
	}
	return strings.Join(lines, "\n"), nil
}

// Categorize resolves a direction for every simplified line and serializes
// the result as "date | description | amount | TYPE" with ISO-8601 dates and
// non-negative two-decimal amounts.
func (b *base) Categorize(simplified string) (string, error) {
	if err := b.guard(); err != nil {
		return "", err
	}
	rows := parseSimplified(simplified)
	txns := b.finish(b.v.resolve(rows))
	lines := make([]string, 0, len(txns))
	for _, txn := range txns {
		lines = append(lines, strings.Join([]string{
			txn.Date,
			txn.Description,
			txn.Amount.StringFixed(2),
			string(txn.Type),
		}, fieldSeparator))
	}
	return strings.Join(lines, "\n"), nil
}

// Parse runs the whole pipeline over extracted pages and returns the
// structured statement, including drop diagnostics.
func (b *base) Parse(pages []string) (*models.Statement, error) {
	if err := b.guard(); err != nil {
		return nil, err
	}
	all := strings.Join(pages, "\n")

	st := &models.Statement{Bank: b.v.Code()}
	b.v.metadata(all, st)

	rows, stats := b.extractRows(all)
	txns := b.finish(b.v.resolve(rows))
	for _, txn := range txns {
		if txn.Type == models.Unknown {
			stats.TransactionsUnknown++
		} else {
			stats.TransactionsResolved++
		}
	}
	st.Transactions = txns
	st.Stats = stats
	return st, nil
}

// extractRows merges and extracts in one pass, keeping the drop counters.
func (b *base) extractRows(raw string) ([]provisional, models.ParseStats) {
	records, stats := mergeRecords(splitLines(raw), b.v.Patterns())
	rows := make([]provisional, 0, len(records))
	for _, rec := range records {
		row, ok := b.v.extract(rec)
		if !ok {
			stats.RecordsDropped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, stats
}

// finish normalizes dates to ISO-8601. Unparsable dates keep their raw form;
// a record that got this far is still a valid transaction.
func (b *base) finish(txns []models.Transaction) []models.Transaction {
	layout := b.v.dateLayout()
	for i := range txns {
		if t, err := time.Parse(layout, txns[i].Date); err == nil {
			txns[i].Date = t.UTC().Format(time.RFC3339)
		}
	}
	return txns
}

// pageBreakMarkers are emitted by the OCR collaborator between pages; they
// carry no content and must not interrupt record merging mid-transaction.
var pageBreakMarkers = map[string]struct{}{
	"---PAGE_BREAK---":   {},
	"--- PAGE BREAK ---": {},
}

func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := lines[:0]
	for _, line := range lines {
		if _, ok := pageBreakMarkers[strings.TrimSpace(line)]; ok {
			continue
		}
		out = append(out, line)
	}
	return out
}

func serializeRow(row provisional) string {
	fields := []string{row.date, row.desc}
	for _, tok := range row.tokens {
		fields = append(fields, tok.StringFixed(2))
	}
	if row.marker != "" {
		fields = append(fields, row.marker)
	}
	return strings.Join(fields, fieldSeparator)
}

// parseSimplified reads pipe-delimited simplified lines back into provisional
// rows. Malformed lines are dropped; the categorize stage never aborts a
// whole document over one bad line.
func parseSimplified(text string) []provisional {
	var rows []provisional
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < 3 {
			continue
		}
		row := provisional{
			date: strings.TrimSpace(fields[0]),
			desc: strings.TrimSpace(fields[1]),
		}
		ok := true
		for _, f := range fields[2:] {
			f = strings.TrimSpace(f)
			switch strings.ToUpper(f) {
			case markerCredit, markerDebit:
				row.marker = strings.ToUpper(f)
			default:
				d, err := parseAmount(f)
				if err != nil {
					ok = false
				} else {
					row.tokens = append(row.tokens, d)
				}
			}
		}
		if !ok || row.date == "" || len(row.tokens) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
