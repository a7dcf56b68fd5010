package gemini

import (
	"context"
)

// GroundingSource is a web citation attached to a search-grounded
// answer. Either field may be empty when the backend omits it.
type GroundingSource struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

// MarketAnswer is the result of a search-grounded market query.
type MarketAnswer struct {
	Text    string            `json:"text"`
	Sources []GroundingSource `json:"sources"`
}

// MarketQuery answers a free-text market question with the real-time
// web-search tool enabled, so the model can cite current data. Sources
// may be empty when the backend returns no citations.
func (c *Client) MarketQuery(ctx context.Context, query string) (*MarketAnswer, error) {
	resp, err := c.generate(ctx, "market", c.insightsModel, generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: query}}}},
		Tools:    []generateTool{{GoogleSearch: &struct{}{}}},
	})
	if err != nil {
		return nil, err
	}

	answer := &MarketAnswer{
		Text:    resp.text(),
		Sources: []GroundingSource{},
	}
	if meta := resp.Candidates[0].GroundingMetadata; meta != nil {
		for _, chunk := range meta.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			answer.Sources = append(answer.Sources, GroundingSource{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}

	return answer, nil
}
