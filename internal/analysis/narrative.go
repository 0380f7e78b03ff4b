// Package analysis is the narrative collaborator boundary: it turns the
// pipe-delimited categorized text into a prompt and sends it to a
// text-generation model. The pipeline itself never formats or summarizes
// beyond that serialization.
package analysis

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// Narrator produces a spending narrative from categorized statement text.
type Narrator interface {
	Narrate(ctx context.Context, bankName, categorized string) (string, error)
}

// GenAINarrator calls the Gemini API. Credentials come from the environment
// (GOOGLE_API_KEY / application default credentials), matching the genai
// client's own resolution.
type GenAINarrator struct {
	Model string
}

// BuildPrompt embeds the categorized text verbatim; the serialization
// contract ("date | description | amount | TYPE") is stated so the model
// doesn't have to guess the column meanings.
func BuildPrompt(bankName, categorized string) string {
	var b strings.Builder
	b.WriteString("You are a personal-finance analyst.\n\n")
	b.WriteString("Below are categorized transactions extracted from a ")
	b.WriteString(bankName)
	b.WriteString(" statement, one per line, pipe-delimited as:\n")
	b.WriteString("date | description | amount | TYPE\n")
	b.WriteString("where TYPE is DEBIT (outflow), CREDIT (inflow) or UNKNOWN.\n\n")
	b.WriteString("Transactions:\n")
	b.WriteString(categorized)
	b.WriteString("\n\nWrite a short narrative summary of this statement: ")
	b.WriteString("overall inflow vs outflow, the largest transactions, and any ")
	b.WriteString("recurring payments you can identify. Treat UNKNOWN rows as ")
	b.WriteString("unclassified and mention how many there are. Plain text only.\n")
	return b.String()
}

// Narrate sends the prompt and returns the model's text.
func (n *GenAINarrator) Narrate(ctx context.Context, bankName, categorized string) (string, error) {
	if strings.TrimSpace(categorized) == "" {
		return "", errors.New("no categorized transactions to narrate")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", errors.Wrap(err, "create genai client")
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: BuildPrompt(bankName, categorized)},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, n.Model, contents, nil)
	if err != nil {
		return "", errors.Wrap(err, "generate narrative")
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}
