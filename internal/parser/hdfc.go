package parser

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// HDFCParser handles HDFC Bank statements.
//
// Layout:
//
//	Date | Narration | Chq./Ref No | Value Dt | Withdrawal/Deposit Amt | Closing Balance
//
// Date format DD/MM/YY. The statement carries a single amount column and a
// running balance with no debit/credit marker, so direction is inferred from
// balance arithmetic. The value date duplicates the transaction date
// mid-record and must be stripped from the narration span.
type HDFCParser struct {
	base
	patterns *Registry
}

func newHDFCParser() *HDFCParser {
	p := &HDFCParser{patterns: hdfcRegistry()}
	p.base = base{v: p}
	return p
}

func (p *HDFCParser) Code() models.BankType { return models.BankHDFC }

func (p *HDFCParser) BankName() string { return "HDFC Bank" }

func (p *HDFCParser) Patterns() *Registry { return p.patterns }

func (p *HDFCParser) dateLayout() string { return "02/01/06" }

var (
	hdfcDatePattern  = regexp.MustCompile(`^\s*(?:\d{1,4}\s+)?(\d{2}/\d{2}/\d{2})\b`)
	hdfcValueDateDup = regexp.MustCompile(`\b\d{2}/\d{2}/\d{2}\b`)
)

// extract pulls date, narration, amount and balance out of a merged record.
// The last two monetary tokens are amount and closing balance; a record
// without a date or with fewer than two tokens yields nothing.
func (p *HDFCParser) extract(rec mergedRecord) (provisional, bool) {
	m := hdfcDatePattern.FindStringSubmatchIndex(rec.text)
	if m == nil {
		return provisional{}, false
	}
	date := rec.text[m[2]:m[3]]
	rest := rec.text[m[3]:]

	locs := amountPattern.FindAllStringIndex(rest, -1)
	if len(locs) < 2 {
		return provisional{}, false
	}
	amount, err := parseAmount(rest[locs[len(locs)-2][0]:locs[len(locs)-2][1]])
	if err != nil {
		return provisional{}, false
	}
	balance, err := parseAmount(rest[locs[len(locs)-1][0]:locs[len(locs)-1][1]])
	if err != nil {
		return provisional{}, false
	}

	span := rest[:locs[0][0]]
	span = hdfcValueDateDup.ReplaceAllString(span, " ")

	return provisional{
		date:   date,
		desc:   cleanNarration(span),
		tokens: []decimal.Decimal{amount, balance},
	}, true
}

func (p *HDFCParser) resolve(rows []provisional) []models.Transaction {
	return resolveByBalance(rows)
}

func (p *HDFCParser) metadata(text string, st *models.Statement) {
	st.AccountHolder = findAccountHolder(text)
	st.AccountNumber = findAccountNumber(text)
	st.IFSC = findIFSC(text)
	st.CustomerID = findCustomerID(text)
	st.Period = extractPeriod(text)
	st.OpeningBalance = extractOpeningBalance(text)
}
