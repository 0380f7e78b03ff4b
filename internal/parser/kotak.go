package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// KotakParser handles Kotak Mahindra Bank statements.
//
// Layout:
//
//	Date | Narration | Chq/Ref No | Withdrawal(Dr)/Deposit(Cr) | Balance
//
// Date format DD-MM-YYYY. The amount carries an explicit parenthetical
// (Dr)/(Cr) suffix, so direction resolution is a direct marker lookup.
type KotakParser struct {
	base
	patterns *Registry
}

func newKotakParser() *KotakParser {
	p := &KotakParser{patterns: kotakRegistry()}
	p.base = base{v: p}
	return p
}

func (p *KotakParser) Code() models.BankType { return models.BankKotak }

func (p *KotakParser) BankName() string { return "Kotak Mahindra Bank" }

func (p *KotakParser) Patterns() *Registry { return p.patterns }

func (p *KotakParser) dateLayout() string { return "02-01-2006" }

var (
	kotakDatePattern  = regexp.MustCompile(`^\s*(?:\d{1,4}\s+)?(\d{2}-\d{2}-\d{4})\b`)
	kotakMarkedAmount = regexp.MustCompile(`(\d+(?:,\d{2,3})*\.\d{2})\s*\((?i:(cr|dr))\)`)
)

// extract pulls date, narration and the marked amount out of a merged
// record. The first marked token is the transaction amount; a trailing plain
// token after it is the running balance. A record without a date or any
// monetary token yields nothing; a missing marker is kept (direction resolves
// to UNKNOWN later), since the amount itself is still usable.
func (p *KotakParser) extract(rec mergedRecord) (provisional, bool) {
	m := kotakDatePattern.FindStringSubmatchIndex(rec.text)
	if m == nil {
		return provisional{}, false
	}
	date := rec.text[m[2]:m[3]]
	rest := rec.text[m[3]:]

	locs := amountPattern.FindAllStringIndex(rest, -1)
	if len(locs) == 0 {
		return provisional{}, false
	}

	var (
		amount decimal.Decimal
		marker string
		aEnd   int
		err    error
	)
	if mm := kotakMarkedAmount.FindStringSubmatchIndex(rest); mm != nil {
		amount, err = parseAmount(rest[mm[2]:mm[3]])
		marker = strings.ToUpper(rest[mm[4]:mm[5]])
		aEnd = mm[1]
	} else {
		amount, err = parseAmount(rest[locs[0][0]:locs[0][1]])
		aEnd = locs[0][1]
	}
	if err != nil {
		return provisional{}, false
	}

	tokens := []decimal.Decimal{amount}
	if last := locs[len(locs)-1]; last[0] >= aEnd {
		if balance, berr := parseAmount(rest[last[0]:last[1]]); berr == nil {
			tokens = append(tokens, balance)
		}
	}

	return provisional{
		date:   date,
		desc:   cleanNarration(rest[:locs[0][0]]),
		tokens: tokens,
		marker: marker,
	}, true
}

func (p *KotakParser) resolve(rows []provisional) []models.Transaction {
	return resolveByMarker(rows)
}

func (p *KotakParser) metadata(text string, st *models.Statement) {
	st.AccountHolder = findAccountHolder(text)
	st.AccountNumber = findAccountNumber(text)
	st.IFSC = findIFSC(text)
	st.CustomerID = findCustomerID(text)
	st.Period = extractPeriod(text)
	st.OpeningBalance = extractOpeningBalance(text)
}
