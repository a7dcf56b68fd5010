package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fintakip/backend/internal/finance"
)

func extractionServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body generateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.GenerationConfig == nil || body.GenerationConfig.ResponseMimeType != "application/json" {
			t.Error("response mime type constraint not set")
		}
		if body.GenerationConfig == nil || len(body.GenerationConfig.ResponseSchema) == 0 {
			t.Error("response schema constraint not set")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiTextResponse(text))
	}))
}

func TestClient_ExtractTransaction(t *testing.T) {
	server := extractionServer(t, `{"kind":"expense","category":"gıda","amount":500,"description":"market alışverişi","date":"2024-05-10"}`)
	defer server.Close()

	client := newTestClient(server.URL)
	draft, err := client.ExtractTransaction(context.Background(), "marketten 500 lira harcadım")
	if err != nil {
		t.Fatalf("ExtractTransaction failed: %v", err)
	}
	if draft == nil {
		t.Fatal("expected a draft")
	}

	if draft.Kind != finance.KindExpense {
		t.Errorf("kind = %q", draft.Kind)
	}
	if draft.Category != "Gıda" {
		t.Errorf("category = %q, want normalized Turkish title case", draft.Category)
	}
	if draft.Amount != 500 {
		t.Errorf("amount = %v", draft.Amount)
	}
	if !draft.Date.Equal(finance.NewDate(2024, 5, 10)) {
		t.Errorf("date = %s", draft.Date)
	}
	if err := draft.Validate(); err != nil {
		t.Errorf("extracted draft should validate: %v", err)
	}
}

func TestClient_ExtractTransaction_FencedJSON(t *testing.T) {
	server := extractionServer(t, "```json\n{\"kind\":\"income\",\"category\":\"Maaş\",\"amount\":45000}\n```")
	defer server.Close()

	client := newTestClient(server.URL)
	draft, err := client.ExtractTransaction(context.Background(), "maaşım yattı kırk beş bin lira")
	if err != nil {
		t.Fatalf("ExtractTransaction failed: %v", err)
	}
	if draft == nil {
		t.Fatal("expected a draft despite code fences")
	}
	if draft.Kind != finance.KindIncome || draft.Amount != 45000 {
		t.Errorf("draft = %+v", draft)
	}
	// Missing date falls back to today.
	if !draft.Date.Equal(finance.Today()) {
		t.Errorf("date = %s, want today", draft.Date)
	}
}

func TestClient_ExtractTransaction_TurkishKind(t *testing.T) {
	server := extractionServer(t, `{"kind":"Gider","category":"Ulaşım","amount":120}`)
	defer server.Close()

	client := newTestClient(server.URL)
	draft, err := client.ExtractTransaction(context.Background(), "yol için 120 lira")
	if err != nil || draft == nil {
		t.Fatalf("draft=%v err=%v", draft, err)
	}
	if draft.Kind != finance.KindExpense {
		t.Errorf("kind = %q", draft.Kind)
	}
}

func TestClient_ExtractTransaction_MalformedReturnsNil(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not json", text: "bunu anlayamadım"},
		{name: "missing category", text: `{"kind":"expense","amount":100}`},
		{name: "missing amount", text: `{"kind":"expense","category":"Gıda"}`},
		{name: "negative amount", text: `{"kind":"expense","category":"Gıda","amount":-3}`},
		{name: "unknown kind", text: `{"kind":"transfer","category":"Gıda","amount":100}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := extractionServer(t, tt.text)
			defer server.Close()

			client := newTestClient(server.URL)
			draft, err := client.ExtractTransaction(context.Background(), "bir şeyler")
			if err != nil {
				t.Fatalf("malformed output must not surface an error, got %v", err)
			}
			if draft != nil {
				t.Errorf("expected nil draft, got %+v", draft)
			}
		})
	}
}

func TestClient_ExtractTransaction_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	draft, err := client.ExtractTransaction(context.Background(), "bir şeyler")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if draft != nil {
		t.Errorf("draft must be nil on transport error")
	}
}

func TestClient_ExtractTransaction_BadDateFallsBackToToday(t *testing.T) {
	server := extractionServer(t, `{"kind":"expense","category":"Gıda","amount":50,"date":"dün"}`)
	defer server.Close()

	client := newTestClient(server.URL)
	draft, err := client.ExtractTransaction(context.Background(), "dün 50 lira harcadım")
	if err != nil || draft == nil {
		t.Fatalf("draft=%v err=%v", draft, err)
	}
	if !draft.Date.Equal(finance.Today()) {
		t.Errorf("date = %s, want today", draft.Date)
	}
}
