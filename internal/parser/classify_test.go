package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPriority(t *testing.T) {
	reg := hdfcRegistry()

	tests := []struct {
		name string
		line string
		want lineClass
	}{
		{"blank line", "   ", classBlank},
		{"column header", "Date Narration Chq./Ref No Value Dt Withdrawal Amt Closing Balance", classHeader},
		{"header beats amount heuristic", "Opening Balance 10,000.00", classHeader},
		{"header beats continuation pattern", "UPI-PAYMENT CONTINUED ON NEXT PAGE", classHeader},
		{"header beats transaction shape", "Statement From 01/04/24 To 30/04/24", classHeader},
		{"personal info", "Mr JOHN DOE", classPersonalInfo},
		{"account number line", "A/C No : 12345678901234", classPersonalInfo},
		{"transaction start", "01/04/24 UPI-SWIGGY BANGALORE 500.00 9,500.00", classTransactionStart},
		{"start with serial prefix", "12 01/04/24 NEFT-ACME CORP", classTransactionStart},
		{"continuation by protocol prefix", "UPI-SWIGGY BANGALORE", classPlausibleData},
		{"continuation by upi handle", "merchant@okicici", classPlausibleData},
		{"continuation by reference run", "1234567890123", classPlausibleData},
		{"amount on short line", "ref 123.45", classPlausibleData},
		{"prose without amounts", "this line carries no transaction content", classUnclassified},
		{"amount on an overlong line", strings.Repeat("x", 150) + " 123.45", classUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.line, reg), "line: %q", tt.line)
		})
	}
}

func TestClassifyDateShapePerVariant(t *testing.T) {
	hdfcLine := "01/04/24 UPI-SWIGGY 500.00"
	kotakLine := "01-04-2024 UPI/SWIGGY 500.00(Dr)"
	iciciLine := "1 01/04/2024 UPI-SWIGGY 500.00 0.00 9,500.00"

	assert.Equal(t, classTransactionStart, classify(hdfcLine, hdfcRegistry()))
	assert.NotEqual(t, classTransactionStart, classify(kotakLine, hdfcRegistry()))

	assert.Equal(t, classTransactionStart, classify(kotakLine, kotakRegistry()))
	assert.NotEqual(t, classTransactionStart, classify(hdfcLine, kotakRegistry()))

	assert.Equal(t, classTransactionStart, classify(iciciLine, iciciRegistry()))
	assert.NotEqual(t, classTransactionStart, classify(kotakLine, iciciRegistry()))
}
