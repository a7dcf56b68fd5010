package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fintakip/backend/internal/finance"
)

// extractionSchema constrains the model to a fixed-shape structured
// result: kind, category and amount are required; description and date
// are optional.
var extractionSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"kind": {"type": "STRING", "description": "income or expense"},
		"category": {"type": "STRING"},
		"amount": {"type": "NUMBER"},
		"description": {"type": "STRING"},
		"date": {"type": "STRING", "description": "YYYY-MM-DD format"}
	},
	"required": ["kind", "category", "amount"]
}`)

// extractionResult mirrors the constrained response shape.
type extractionResult struct {
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

var titleCaser = cases.Title(language.Turkish)

// ExtractTransaction converts a raw voice transcript into a transaction
// candidate. A transport failure returns a non-nil error; a result that
// cannot be parsed into the expected shape is logged and returned as
// (nil, nil) rather than propagated, so no transaction is produced.
func (c *Client) ExtractTransaction(ctx context.Context, transcript string) (*finance.Draft, error) {
	prompt := fmt.Sprintf(`Aşağıdaki sesli komutu bir gelir veya gider işlemine dönüştür: "%s"`, transcript)

	resp, err := c.generate(ctx, "extract", c.extractionModel, generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   extractionSchema,
		},
	})
	if err != nil {
		return nil, err
	}

	draft, ok := c.parseExtraction(resp.text())
	if !ok {
		return nil, nil
	}
	return draft, nil
}

// parseExtraction validates the structured output against the
// required-field set before constructing a candidate.
func (c *Client) parseExtraction(text string) (*finance.Draft, bool) {
	var result extractionResult
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &result); err != nil {
		c.log.WithError(err).WithField("text", truncate(text, 200)).Warn("extraction result not parseable")
		return nil, false
	}

	kind, ok := normalizeKind(result.Kind)
	if !ok {
		c.log.WithField("kind", result.Kind).Warn("extraction result has unknown kind")
		return nil, false
	}
	if strings.TrimSpace(result.Category) == "" {
		c.log.Warn("extraction result missing category")
		return nil, false
	}
	if result.Amount <= 0 {
		c.log.WithField("amount", result.Amount).Warn("extraction result has non-positive amount")
		return nil, false
	}

	date := finance.Today()
	if result.Date != "" {
		if parsed, err := finance.ParseDate(result.Date); err == nil {
			date = parsed
		}
	}

	return &finance.Draft{
		Kind:        kind,
		Category:    titleCaser.String(strings.TrimSpace(result.Category)),
		Amount:      result.Amount,
		Date:        date,
		Description: strings.TrimSpace(result.Description),
	}, true
}

// normalizeKind maps model output onto a known kind; the model mostly
// honors the schema but occasionally answers in Turkish.
func normalizeKind(raw string) (finance.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "income", "gelir":
		return finance.KindIncome, true
	case "expense", "gider":
		return finance.KindExpense, true
	default:
		return "", false
	}
}
