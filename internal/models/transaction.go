package models

import "github.com/shopspring/decimal"

// Direction indicates whether money left or entered the account.
type Direction string

const (
	Debit   Direction = "DEBIT"
	Credit  Direction = "CREDIT"
	Unknown Direction = "UNKNOWN"
)

// Transaction represents a single categorized statement transaction.
// Amount is always non-negative; Type carries the direction.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Type        Direction       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	// LowConfidence marks transactions whose direction came from the
	// sign-of-balance-change fallback rather than a clean reconciliation.
	LowConfidence bool `json:"lowConfidence,omitempty"`
}

// BankType represents supported statement variants.
type BankType string

const (
	BankHDFC  BankType = "HDFC"
	BankKotak BankType = "KOTAK"
	BankICICI BankType = "ICICI"
)

// ParseStats counts what the pipeline did with its input. Dropped lines and
// records are routine, not errors; the counts exist for diagnostics.
type ParseStats struct {
	LinesTotal           int `json:"linesTotal"`
	LinesSkipped         int `json:"linesSkipped"`
	RecordsMerged        int `json:"recordsMerged"`
	RecordsDropped       int `json:"recordsDropped"`
	TransactionsResolved int `json:"transactionsResolved"`
	TransactionsUnknown  int `json:"transactionsUnknown"`
}

// Statement holds everything extracted from one document.
type Statement struct {
	Bank           BankType        `json:"bank"`
	AccountHolder  string          `json:"accountHolder,omitempty"`
	AccountNumber  string          `json:"accountNumber,omitempty"`
	IFSC           string          `json:"ifsc,omitempty"`
	CustomerID     string          `json:"customerId,omitempty"`
	Period         string          `json:"period,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Transactions   []Transaction   `json:"transactions"`
	Stats          ParseStats      `json:"stats"`
}
