package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

const iciciSample = `ICICI Bank
Detailed Statement
Sr No Transaction Date Cheque No Description Withdrawal Deposit Balance

1 01/04/2024 UPI-SWIGGY BANGALORE 500.00 0.00 9,500.00
2 02/04/2024 NEFT-ACME CORP SALARY
0.00 15,000.00 24,500.00
3 03/04/2024 REVERSAL ADJUSTMENT 100.00 100.00 24,500.00
`

func TestICICIExtract(t *testing.T) {
	p := newICICIParser()

	tests := []struct {
		name     string
		text     string
		wantOK   bool
		wantDesc string
		wantCols []string
	}{
		{
			name:     "withdrawal record with serial",
			text:     "1 01/04/2024 UPI-SWIGGY BANGALORE 500.00 0.00 9,500.00",
			wantOK:   true,
			wantDesc: "SWIGGY BANGALORE",
			wantCols: []string{"500", "0", "9500"},
		},
		{
			name:     "deposit record without serial",
			text:     "02/04/2024 NEFT-ACME CORP SALARY 0.00 15,000.00 24,500.00",
			wantOK:   true,
			wantDesc: "ACME CORP SALARY",
			wantCols: []string{"0", "15000", "24500"},
		},
		{
			name:     "value date duplicate stripped",
			text:     "5 04/04/2024 04/04/2024 POS-AMAZON 1,200.00 0.00 23,300.00",
			wantOK:   true,
			wantDesc: "AMAZON",
			wantCols: []string{"1200", "0", "23300"},
		},
		{
			name:   "truncated record",
			text:   "6 05/04/2024 MISSING COLUMNS 500.00 9,500.00",
			wantOK: false,
		},
		{
			name:   "no date",
			text:   "UPI-SWIGGY 500.00 0.00 9,500.00",
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
			require.Len(t, row.tokens, 3)
			for i, want := range tt.wantCols {
				assert.Equal(t, want, row.tokens[i].String(), "column %d", i)
			}
		})
	}
}

func TestICICIParsePipeline(t *testing.T) {
	p := newICICIParser()

	st, err := p.Parse([]string{iciciSample})
	require.NoError(t, err)

	assert.Equal(t, models.BankICICI, st.Bank)
	require.Len(t, st.Transactions, 3)

	assert.Equal(t, models.Debit, st.Transactions[0].Type)
	assert.True(t, st.Transactions[0].Amount.Equal(dec("500")))

	assert.Equal(t, models.Credit, st.Transactions[1].Type)
	assert.True(t, st.Transactions[1].Amount.Equal(dec("15000")))

	// both columns populated is contradictory, direction stays unresolved
	assert.Equal(t, models.Unknown, st.Transactions[2].Type)
	assert.True(t, st.Transactions[2].Amount.Equal(dec("100")))

	assert.Equal(t, "2024-04-01T00:00:00Z", st.Transactions[0].Date)
	assert.Equal(t, 2, st.Stats.TransactionsResolved)
	assert.Equal(t, 1, st.Stats.TransactionsUnknown)
}

func TestICICICategorizeDropsShortRows(t *testing.T) {
	p := newICICIParser()

	out, err := p.Categorize("01/04/2024 | SWIGGY | 500.00 | 100.00\n" +
		"02/04/2024 | SALARY | 0.00 | 15000.00 | 24500.00")
	require.NoError(t, err)
	assert.Equal(t, "2024-04-02T00:00:00Z | SALARY | 15000.00 | CREDIT", out)
}

func TestICICICategorizeSerialization(t *testing.T) {
	p := newICICIParser()

	simplified, err := p.Simplify(iciciSample)
	require.NoError(t, err)

	categorized, err := p.Categorize(simplified)
	require.NoError(t, err)

	lines := strings.Split(categorized, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2024-04-01T00:00:00Z | SWIGGY BANGALORE | 500.00 | DEBIT", lines[0])
	assert.Equal(t, "2024-04-02T00:00:00Z | ACME CORP SALARY | 15000.00 | CREDIT", lines[1])
	assert.Equal(t, "2024-04-03T00:00:00Z | REVERSAL ADJUSTMENT | 100.00 | UNKNOWN", lines[2])
}
