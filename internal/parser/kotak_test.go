package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

const kotakSample = `Kotak Mahindra Bank
Statement of Account
Mrs JANE DOE
CRN : 87654321
Date Narration Chq/Ref No Withdrawal(Dr)/Deposit(Cr) Balance

01-04-2024 UPI/SWIGGY/BANGALORE 500.00(Dr) 9,500.00
02-04-2024 NEFT SALARY ACME CORP
15,000.00(Cr) 24,500.00
03-04-2024 CHEQUE DEPOSIT 1,000.00 25,500.00
`

func TestKotakExtract(t *testing.T) {
	p := newKotakParser()

	tests := []struct {
		name       string
		text       string
		wantOK     bool
		wantDesc   string
		wantAmount string
		wantMarker string
		wantTokens int
	}{
		{
			name:       "debit marker",
			text:       "01-04-2024 UPI/SWIGGY/BANGALORE 500.00(Dr) 9,500.00",
			wantOK:     true,
			wantDesc:   "SWIGGY BANGALORE",
			wantAmount: "500",
			wantMarker: markerDebit,
			wantTokens: 2,
		},
		{
			name:       "credit marker lowercase",
			text:       "02-04-2024 NEFT SALARY ACME CORP 15,000.00(cr) 24,500.00",
			wantOK:     true,
			wantDesc:   "SALARY ACME CORP",
			wantAmount: "15000",
			wantMarker: markerCredit,
			wantTokens: 2,
		},
		{
			name:       "missing marker keeps record",
			text:       "03-04-2024 CHEQUE DEPOSIT 1,000.00 25,500.00",
			wantOK:     true,
			wantDesc:   "CHEQUE DEPOSIT",
			wantAmount: "1000",
			wantMarker: "",
			wantTokens: 2,
		},
		{
			name:       "amount without balance",
			text:       "04-04-2024 ATM WITHDRAWAL 2,000.00(Dr)",
			wantOK:     true,
			wantDesc:   "ATM WITHDRAWAL",
			wantAmount: "2000",
			wantMarker: markerDebit,
			wantTokens: 1,
		},
		{
			name:       "ungrouped marked amount",
			text:       "05-04-2024 RENT PAYMENT 12000.00(Dr) 88000.00",
			wantOK:     true,
			wantDesc:   "RENT PAYMENT",
			wantAmount: "12000",
			wantMarker: markerDebit,
			wantTokens: 2,
		},
		{
			name:   "wrong date shape",
			text:   "01/04/24 UPI/SWIGGY 500.00(Dr)",
			wantOK: false,
		},
		{
			name:   "no monetary token",
			text:   "05-04-2024 NARRATION ONLY",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := p.extract(mergedRecord{text: tt.text})
			if !tt.wantOK {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantDesc, row.desc)
			assert.Equal(t, tt.wantMarker, row.marker)
			require.Len(t, row.tokens, tt.wantTokens)
			assert.Equal(t, tt.wantAmount, row.tokens[0].String())
		})
	}
}

func TestKotakParsePipeline(t *testing.T) {
	p := newKotakParser()

	st, err := p.Parse([]string{kotakSample})
	require.NoError(t, err)

	assert.Equal(t, models.BankKotak, st.Bank)
	assert.Equal(t, "JANE DOE", st.AccountHolder)
	assert.Equal(t, "87654321", st.CustomerID)

	require.Len(t, st.Transactions, 3)

	assert.Equal(t, models.Debit, st.Transactions[0].Type)
	assert.Equal(t, models.Credit, st.Transactions[1].Type)
	assert.Equal(t, models.Unknown, st.Transactions[2].Type)

	assert.Equal(t, "2024-04-01T00:00:00Z", st.Transactions[0].Date)
	assert.True(t, st.Transactions[1].Amount.Equal(dec("15000")))
	assert.True(t, st.Transactions[1].Balance.Equal(dec("24500")))

	assert.Equal(t, 2, st.Stats.TransactionsResolved)
	assert.Equal(t, 1, st.Stats.TransactionsUnknown)
}

func TestKotakCategorizeSerialization(t *testing.T) {
	p := newKotakParser()

	simplified, err := p.Simplify(kotakSample)
	require.NoError(t, err)
	assert.Contains(t, simplified, "01-04-2024 | SWIGGY BANGALORE | 500.00 | 9500.00 | DR")

	categorized, err := p.Categorize(simplified)
	require.NoError(t, err)

	lines := strings.Split(categorized, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2024-04-01T00:00:00Z | SWIGGY BANGALORE | 500.00 | DEBIT", lines[0])
	assert.Equal(t, "2024-04-02T00:00:00Z | SALARY ACME CORP | 15000.00 | CREDIT", lines[1])
	assert.Equal(t, "2024-04-03T00:00:00Z | CHEQUE DEPOSIT | 1000.00 | UNKNOWN", lines[2])
}
