package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches currency-shaped tokens: exactly two fraction digits,
// with optional grouped thousands (Indian statements group lakhs as
// 1,23,456.78). Grouping is optional because OCR frequently loses commas, so
// ungrouped runs like 95000.00 must still count as amounts.
var amountPattern = regexp.MustCompile(`\b\d+(?:,\d{2,3})*\.\d{2}\b`)

// parseAmount converts a monetary token like "1,23,456.78" or "₹500.00"
// into a decimal. Empty tokens and bare dashes parse as zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	for _, junk := range []string{"₹", "Rs.", "Rs", "INR", ",", " ", " "} {
		s = strings.ReplaceAll(s, junk, "")
	}
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// sanitizeOCRAmounts fixes common OCR misreads inside amount tokens.
// Tesseract frequently renders decimal points as semicolons or colons,
// e.g. "19,720; 15" and "1,234:56" both mean "19,720.15" / "1,234.56".
var (
	ocrSemicolonDecimal = regexp.MustCompile(`(\d);(\s*)(\d)`)
	ocrColonDecimal     = regexp.MustCompile(`(\d):(\d)`)
	ocrTrailingColon    = regexp.MustCompile(`(\d):(\s|$)`)
	ocrStrayNA          = regexp.MustCompile(`\s+NA\b`)
)

func sanitizeOCRAmounts(line string) string {
	line = ocrSemicolonDecimal.ReplaceAllString(line, "$1.$3")
	line = ocrColonDecimal.ReplaceAllString(line, "$1.$2")
	line = ocrTrailingColon.ReplaceAllString(line, "$1$2")
	line = ocrStrayNA.ReplaceAllString(line, "")
	return line
}

var multiSpace = regexp.MustCompile(`\s+`)

func normalizeSpace(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// --- Narration cleanup ---

// Ordered substitution passes applied to the raw description span. Order
// matters: protocol prefixes must go before handle/reference stripping or
// the leading "UPI-" would survive as part of a handle match.
var (
	protocolPrefix = regexp.MustCompile(`(?i)^(upi|neft|imps|rtgs|ach|nach|pos|atw|eaw|bil|inf|mmt|vin|vps)\b[-/: ]*`)
	upiHandle      = regexp.MustCompile(`\b[A-Za-z0-9._-]+@[A-Za-z]{2,}\b`)
	longDigitRun   = regexp.MustCompile(`\b\d{9,}\b`)
	longRefRun     = regexp.MustCompile(`\b[A-Z0-9]{14,}\b`)
	bankSuffix     = regexp.MustCompile(`(?i)\b(hdfc bank( ltd)?|icici bank( ltd)?|kotak mahindra( bank)?|axis bank|yes bank|state bank of india|bank of baroda|paytm|ybl|okicici|okhdfcbank|okaxis|oksbi)\b`)
	sepRuns        = regexp.MustCompile(`[-/|:]{1,}`)
)

// placeholderDescription is used when noise removal leaves nothing behind;
// a record with a date and amounts is still a transaction.
const placeholderDescription = "Transaction"

// cleanNarration strips transport prefixes, UPI handles, reference runs and
// bank-name suffixes from a narration span, leaving the human-meaningful
// remainder.
func cleanNarration(s string) string {
	s = strings.TrimSpace(s)
	s = protocolPrefix.ReplaceAllString(s, "")
	s = upiHandle.ReplaceAllString(s, " ")
	s = longDigitRun.ReplaceAllString(s, " ")
	s = longRefRun.ReplaceAllString(s, " ")
	s = bankSuffix.ReplaceAllString(s, " ")
	s = sepRuns.ReplaceAllString(s, " ")
	s = normalizeSpace(s)
	s = strings.Trim(s, ".,- ")
	if s == "" {
		return placeholderDescription
	}
	return s
}

// collectAmounts returns every currency-shaped token in the text, in
// left-to-right order.
func collectAmounts(text string) []decimal.Decimal {
	matches := amountPattern.FindAllString(text, -1)
	out := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		d, err := parseAmount(m)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// --- Account metadata helpers ---

var (
	accountNumberPattern = regexp.MustCompile(`(?i)a/?c(?:count)?\s*(?:no|number)\.?\s*[:.]?\s*([0-9Xx*]{9,18})`)
	ifscPattern          = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)
	customerIDPattern    = regexp.MustCompile(`(?i)(?:cust(?:omer)?\s*id|crn)\s*[:.]?\s*(\d{6,12})`)
	holderPattern        = regexp.MustCompile(`(?i)^\s*(?:(mr|mrs|ms|m/s)\.?\s+)([A-Z][A-Z .]{2,60})\s*$`)
	periodDatePattern    = regexp.MustCompile(`\b\d{2}[-/]\d{2}[-/]\d{2,4}\b`)
)

func findAccountNumber(text string) string {
	if m := accountNumberPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func findIFSC(text string) string {
	return ifscPattern.FindString(text)
}

func findCustomerID(text string) string {
	if m := customerIDPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func findAccountHolder(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if m := holderPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return normalizeSpace(m[2])
		}
	}
	return ""
}

// extractOpeningBalance finds an opening / brought-forward balance line and
// returns its last monetary token, or zero when the document has none.
func extractOpeningBalance(text string) decimal.Decimal {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "opening balance") &&
			!strings.Contains(lower, "balance brought forward") {
			continue
		}
		amounts := collectAmounts(sanitizeOCRAmounts(line))
		if len(amounts) > 0 {
			return amounts[len(amounts)-1]
		}
	}
	return decimal.Zero
}

// extractPeriod finds a "from ... to ..." statement period line and returns
// the two dates joined, or "" when no period line exists.
func extractPeriod(text string) string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "period") && !strings.Contains(lower, "statement from") {
			continue
		}
		dates := periodDatePattern.FindAllString(line, 2)
		if len(dates) == 2 {
			return dates[0] + " to " + dates[1]
		}
	}
	return ""
}
