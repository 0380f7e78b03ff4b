package parser

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// ICICIParser handles ICICI Bank statements.
//
// Layout:
//
//	Sr No | Transaction Date | Cheque No | Description | Withdrawal | Deposit | Balance
//
// Date format DD/MM/YYYY with an optional leading serial number. Both amount
// columns are always printed (the unused one as 0.00), so direction comes
// from column position.
type ICICIParser struct {
	base
	patterns *Registry
}

func newICICIParser() *ICICIParser {
	p := &ICICIParser{patterns: iciciRegistry()}
	p.base = base{v: p}
	return p
}

func (p *ICICIParser) Code() models.BankType { return models.BankICICI }

func (p *ICICIParser) BankName() string { return "ICICI Bank" }

func (p *ICICIParser) Patterns() *Registry { return p.patterns }

func (p *ICICIParser) dateLayout() string { return "02/01/2006" }

var (
	iciciDatePattern  = regexp.MustCompile(`^\s*(?:\d{1,4}\s+)?(\d{2}/\d{2}/\d{4})\b`)
	iciciValueDateDup = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
)

// extract pulls date, description and the three amount columns out of a
// merged record. The last three monetary tokens are withdrawal, deposit and
// balance; fewer than three tokens means a truncated record, which is
// dropped.
func (p *ICICIParser) extract(rec mergedRecord) (provisional, bool) {
	m := iciciDatePattern.FindStringSubmatchIndex(rec.text)
	if m == nil {
		return provisional{}, false
	}
	date := rec.text[m[2]:m[3]]
	rest := rec.text[m[3]:]

	locs := amountPattern.FindAllStringIndex(rest, -1)
	if len(locs) < 3 {
		return provisional{}, false
	}
	tokens := make([]decimal.Decimal, 0, 3)
	for _, loc := range locs[len(locs)-3:] {
		d, err := parseAmount(rest[loc[0]:loc[1]])
		if err != nil {
			return provisional{}, false
		}
		tokens = append(tokens, d)
	}

	span := rest[:locs[0][0]]
	span = iciciValueDateDup.ReplaceAllString(span, " ")

	return provisional{
		date:   date,
		desc:   cleanNarration(span),
		tokens: tokens,
	}, true
}

func (p *ICICIParser) resolve(rows []provisional) []models.Transaction {
	return resolveByColumns(rows)
}

func (p *ICICIParser) metadata(text string, st *models.Statement) {
	st.AccountHolder = findAccountHolder(text)
	st.AccountNumber = findAccountNumber(text)
	st.IFSC = findIFSC(text)
	st.CustomerID = findCustomerID(text)
	st.Period = extractPeriod(text)
	st.OpeningBalance = extractOpeningBalance(text)
}
