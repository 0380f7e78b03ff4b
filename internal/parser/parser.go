package parser

import (
	"strings"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// StatementParser is the contract every statement variant implements.
//
// The three string operations mirror the pipeline stages: Clean merges
// wrapped OCR lines into one line per record, Simplify extracts fields into
// pipe-delimited rows, Categorize resolves a DEBIT/CREDIT/UNKNOWN direction
// per row. Parse runs all three and returns structured output.
type StatementParser interface {
	BankName() string
	Patterns() *Registry
	Clean(raw string) (string, error)
	Simplify(raw string) (string, error)
	Categorize(simplified string) (string, error)
	Parse(pages []string) (*models.Statement, error)
}

// New returns the parser for the given variant code ("HDFC", "KOTAK",
// "ICICI", case-insensitive). Unknown codes fail fast with
// *UnsupportedVariantError rather than silently defaulting.
func New(code string) (StatementParser, error) {
	switch models.BankType(strings.ToUpper(strings.TrimSpace(code))) {
	case models.BankHDFC:
		return newHDFCParser(), nil
	case models.BankKotak:
		return newKotakParser(), nil
	case models.BankICICI:
		return newICICIParser(), nil
	default:
		return nil, &UnsupportedVariantError{Code: code}
	}
}

// AutoDetect tries to identify the statement variant from page text.
func AutoDetect(pages []string) (models.BankType, error) {
	combined := strings.ToLower(strings.Join(pages, "\n"))

	if containsAny(combined, "hdfc bank", "hdfcbank.com", "we understand your world") {
		return models.BankHDFC, nil
	}
	if containsAny(combined, "kotak mahindra", "kotak.com", "kotak bank") {
		return models.BankKotak, nil
	}
	if containsAny(combined, "icici bank", "icicibank.com") {
		return models.BankICICI, nil
	}

	return "", &UnsupportedVariantError{Code: "auto-detect"}
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
