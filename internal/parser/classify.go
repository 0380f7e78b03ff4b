package parser

import "strings"

// lineClass is the classification assigned to one trimmed line of OCR text.
type lineClass int

const (
	classBlank lineClass = iota
	classHeader
	classPersonalInfo
	classTransactionStart
	classPlausibleData
	classUnclassified
)

func (c lineClass) String() string {
	switch c {
	case classBlank:
		return "blank"
	case classHeader:
		return "header"
	case classPersonalInfo:
		return "personal-info"
	case classTransactionStart:
		return "transaction-start"
	case classPlausibleData:
		return "plausible-data"
	default:
		return "unclassified"
	}
}

// classify tags a line using the registry's pattern sets. Rule order is a
// hard contract, first match wins:
//
//  1. blank
//  2. header
//  3. personal info
//  4. transaction start
//  5. continuation pattern, or currency-shaped token on a short line
//  6. unclassified
//
// Headers and personal-info lines must win over transaction content; a
// metadata line folded into a merged record corrupts the whole record.
func classify(line string, reg *Registry) lineClass {
	if strings.TrimSpace(line) == "" {
		return classBlank
	}
	for _, p := range reg.Headers {
		if p.MatchString(line) {
			return classHeader
		}
	}
	for _, p := range reg.PersonalInfo {
		if p.MatchString(line) {
			return classPersonalInfo
		}
	}
	for _, p := range reg.TransactionStart {
		if p.MatchString(line) {
			return classTransactionStart
		}
	}
	for _, p := range reg.Continuation {
		if p.MatchString(line) {
			return classPlausibleData
		}
	}
	if amountPattern.MatchString(line) && len(line) <= reg.MaxDataLineLen {
		return classPlausibleData
	}
	return classUnclassified
}
