package parser

import "regexp"

// Registry holds the classification patterns for one statement variant.
// A registry is built once per parser instance and never mutated afterwards.
//
// Matching precedence is enforced by the classifier, not by the registry:
// header and personal-info patterns are always consulted before
// transaction-start and continuation patterns, so metadata lines can never
// be folded into a transaction record.
type Registry struct {
	TransactionStart []*regexp.Regexp
	Headers          []*regexp.Regexp
	Continuation     []*regexp.Regexp
	PersonalInfo     []*regexp.Regexp

	// MaxDataLineLen caps the plausible-data heuristic: a line that carries a
	// currency-shaped token but is longer than this is not treated as wrapped
	// transaction content.
	MaxDataLineLen int
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// hdfcRegistry matches HDFC statement layouts:
//
//	Date | Narration | Chq./Ref No | Value Dt | Withdrawal/Deposit | Balance
//
// Date format DD/MM/YY, value date duplicated mid-line, narration wrapped
// across 2-4 physical lines on OCR'd documents.
func hdfcRegistry() *Registry {
	return &Registry{
		TransactionStart: compileAll(
			`^\s*(?:\d{1,4}\s+)?\d{2}/\d{2}/\d{2}\s+\S`,
		),
		Headers: compileAll(
			`(?i)^date\b.*narration`,
			`(?i)statement of account`,
			`(?i)^statement\s+(from|for)\b`,
			`(?i)^page\s+(no\.?\s*)?\d+`,
			`(?i)opening\s+balance`,
			`(?i)closing\s+balance`,
			`(?i)^chq\.?\s*/?\s*ref`,
			`(?i)value\s+dt\b`,
			`(?i)^hdfc bank`,
			`(?i)^we understand your world`,
			`(?i)total\s+(debits?|credits?|withdrawals?|deposits?)`,
			`(?i)^(statement summary|generated (on|by))`,
			`(?i)continued (on|from)`,
			`^\*{2,}`,
		),
		Continuation: compileAll(
			`(?i)^(upi|neft|imps|rtgs|ach|nach|pos|atw|eaw|bil|inf|mmt)[-/]`,
			`^[A-Za-z0-9._-]+@[A-Za-z]{2,}$`,
			`^\d{9,}$`,
		),
		PersonalInfo: compileAll(
			`(?i)^(mr|mrs|ms|m/s)\.?\s+`,
			`(?i)^account branch\b`,
			`(?i)^address\b`,
			`(?i)^(city|state|pin(code)?)\b\s*[:.]?`,
			`(?i)^(phone|mobile|email)\b`,
			`(?i)cust(omer)?\s+id`,
			`(?i)^a/?c(count)?\s+(no|number)\b`,
			`(?i)^(ifsc|micr)\b`,
			`(?i)nomination`,
			`(?i)^joint holder`,
		),
		MaxDataLineLen: 140,
	}
}

// kotakRegistry matches Kotak Mahindra statement layouts:
//
//	Date | Narration | Chq/Ref No | Amount(Dr/Cr) | Balance
//
// Date format DD-MM-YYYY; the withdrawal/deposit direction is an explicit
// parenthetical suffix on the amount.
func kotakRegistry() *Registry {
	return &Registry{
		TransactionStart: compileAll(
			`^\s*(?:\d{1,4}\s+)?\d{2}-\d{2}-\d{4}\s+\S`,
		),
		Headers: compileAll(
			`(?i)^(sl\.?\s*no\.?\s+)?date\b.*(narration|description)`,
			`(?i)^kotak mahindra bank`,
			`(?i)^statement of account`,
			`(?i)period\s+from\b`,
			`(?i)^page\s+(no\.?\s*)?\d+`,
			`(?i)opening\s+balance`,
			`(?i)closing\s+balance`,
			`(?i)total\s+(withdrawals?|deposits?|debits?|credits?)`,
			`(?i)^end of statement`,
			`(?i)continued (on|from)`,
			`^\*{2,}`,
		),
		Continuation: compileAll(
			`(?i)^(upi|neft|imps|rtgs|ach|nach|pos|atw|bil|inf|mmt)[-/]`,
			`^[A-Za-z0-9._-]+@[A-Za-z]{2,}$`,
			`(?i)^ref[:. ]`,
			`^\d{9,}$`,
		),
		PersonalInfo: compileAll(
			`(?i)^(mr|mrs|ms|m/s)\.?\s+`,
			`(?i)^crn\b`,
			`(?i)^address\b`,
			`(?i)^(city|state|pin(code)?)\b\s*[:.]?`,
			`(?i)^(phone|mobile|email)\b`,
			`(?i)^a/?c(count)?\s+(no|number)\b`,
			`(?i)^(ifsc|micr)\b`,
			`(?i)nomination`,
		),
		MaxDataLineLen: 120,
	}
}

// iciciRegistry matches ICICI statement layouts:
//
//	Sr No | Transaction Date | Cheque No | Description | Withdrawal | Deposit | Balance
//
// Date format DD/MM/YYYY with an optional leading serial number. ICICI
// statements carry no free-form name/address block inside the transaction
// pages, so the personal-info set is empty.
func iciciRegistry() *Registry {
	return &Registry{
		TransactionStart: compileAll(
			`^\s*(?:\d{1,4}\s+)?\d{2}/\d{2}/\d{4}\s+\S`,
		),
		Headers: compileAll(
			`(?i)^(sr\.?\s*no\.?\s+)?(value\s+date\s+)?transaction\s+date`,
			`(?i)^icici bank`,
			`(?i)detailed statement`,
			`(?i)^transactions? list`,
			`(?i)^page\s+(no\.?\s*)?\d+`,
			`(?i)opening\s+balance`,
			`(?i)closing\s+balance`,
			`(?i)total\s+(withdrawals?|deposits?)`,
			`(?i)^legends?\b`,
			`(?i)continued (on|from)`,
			`^\*{2,}`,
		),
		Continuation: compileAll(
			`(?i)^(upi|neft|imps|rtgs|ach|nach|pos|atw|bil|inf|mmt|vin|vps)[-/]`,
			`^[A-Za-z0-9._-]+@[A-Za-z]{2,}$`,
			`^\d{9,}$`,
		),
		PersonalInfo:   nil,
		MaxDataLineLen: 150,
	}
}
