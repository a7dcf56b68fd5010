package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fintakip/backend/internal/finance"
)

// advisorPersona steers insight responses toward savings and spending
// advice, in Turkish.
const advisorPersona = "Sen profesyonel bir finans danışmanısın. Kullanıcının harcamalarını analiz edip akıllıca tavsiyeler verirsin."

// GenerateInsights asks the model for free-form financial advice over
// the full current transaction list. Callers must treat an error or an
// empty string as "insights unavailable", never as a fault to propagate.
func (c *Client) GenerateInsights(ctx context.Context, txs []finance.Transaction) (string, error) {
	txJSON, err := json.Marshal(txs)
	if err != nil {
		return "", &GatewayError{Code: ErrBadRequest, Op: "insights", Message: "marshal transactions", Cause: err}
	}

	prompt := fmt.Sprintf(`Aşağıdaki finansal işlemlerimi analiz et ve bana Türkçe dilinde tasarruf önerileri, harcama alışkanlıklarım hakkında bilgi ve finansal iyileştirme ipuçları ver.
İşlemler: %s`, string(txJSON))

	resp, err := c.generate(ctx, "insights", c.insightsModel, generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		SystemInstruction: &generateContent{
			Parts: []generatePart{{Text: advisorPersona}},
		},
		GenerationConfig: &generationConfig{Temperature: floatPtr(0.7)},
	})
	if err != nil {
		return "", err
	}

	return resp.text(), nil
}
