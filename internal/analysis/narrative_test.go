package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	categorized := "2024-04-01T00:00:00Z | SWIGGY BANGALORE | 500.00 | DEBIT\n" +
		"2024-04-02T00:00:00Z | ACME CORP SALARY | 15000.00 | CREDIT"

	prompt := BuildPrompt("HDFC Bank", categorized)

	assert.Contains(t, prompt, "HDFC Bank")
	assert.Contains(t, prompt, "date | description | amount | TYPE")
	assert.Contains(t, prompt, categorized, "categorized text must be embedded verbatim")
}

func TestNarrateRejectsEmptyInput(t *testing.T) {
	n := &GenAINarrator{Model: "gemini-2.0-flash"}
	_, err := n.Narrate(context.Background(), "HDFC Bank", "   ")
	assert.Error(t, err)
}
