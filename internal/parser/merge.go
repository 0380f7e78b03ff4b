package parser

import (
	"strings"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// mergedRecord is one logical transaction reconstructed from one or more
// physical OCR lines. Text has normalized whitespace; the line range refers
// to the original document order.
type mergedRecord struct {
	text      string
	startLine int
	endLine   int
}

// mergeRecords folds wrapped transaction lines back into single records.
//
// OCR'd tabular statements wrap one logical transaction across 2-4 physical
// lines because the narration column is narrow. The merger is a single-state
// scan in document order: a transaction-start line opens an accumulator,
// plausible-data lines append to it, and anything else (blank, header,
// personal info, unclassified) closes it. A transaction-start line that
// terminates a record immediately opens the next one.
//
// A document with no transaction-start lines yields zero records; that is an
// empty result, not an error.
func mergeRecords(lines []string, reg *Registry) ([]mergedRecord, models.ParseStats) {
	stats := models.ParseStats{LinesTotal: len(lines)}

	var records []mergedRecord
	var cur *mergedRecord

	emit := func() {
		if cur == nil {
			return
		}
		cur.text = normalizeSpace(cur.text)
		records = append(records, *cur)
		cur = nil
	}

	for i, raw := range lines {
		line := strings.TrimSpace(sanitizeOCRAmounts(raw))

		switch classify(line, reg) {
		case classTransactionStart:
			emit()
			cur = &mergedRecord{text: line, startLine: i, endLine: i}
		case classPlausibleData:
			if cur != nil {
				cur.text += " " + line
				cur.endLine = i
			} else {
				stats.LinesSkipped++
			}
		default:
			emit()
			stats.LinesSkipped++
		}
	}
	emit()

	stats.RecordsMerged = len(records)
	return records, stats
}
