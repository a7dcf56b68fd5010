package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/fintakip/backend/internal/finance"
	"github.com/fintakip/backend/internal/gemini"
	"github.com/fintakip/backend/internal/store"
	"github.com/fintakip/backend/internal/voice"
)

// voiceSessionHeader carries the session identifier issued by the
// voice start endpoint on every subsequent voice request.
const voiceSessionHeader = "X-Voice-Session"

// Advisor is the slice of the AI gateway the service needs.
type Advisor interface {
	GenerateInsights(ctx context.Context, transactions []finance.Transaction) (string, error)
	MarketQuery(ctx context.Context, query string) (*gemini.MarketAnswer, error)
}

// FinanceService exposes the finance API over JSON HTTP handlers.
type FinanceService struct {
	store   store.Store
	advisor Advisor
	voice   *voice.Manager
	locale  language.Tag
	log     *logrus.Entry
}

func NewFinanceService(st store.Store, advisor Advisor, vm *voice.Manager, locale language.Tag, logger *logrus.Logger) *FinanceService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FinanceService{
		store:   st,
		advisor: advisor,
		voice:   vm,
		locale:  locale,
		log:     logger.WithField("component", "service"),
	}
}

// RegisterRoutes attaches every API route to mux.
func (s *FinanceService) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /v1/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /v1/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("GET /v1/summary", s.handleSummary)
	mux.HandleFunc("GET /v1/categories", s.handleCategories)
	mux.HandleFunc("POST /v1/insights", s.handleInsights)
	mux.HandleFunc("POST /v1/market", s.handleMarket)
	mux.HandleFunc("GET /v1/market/suggestions", s.handleMarketSuggestions)
	mux.HandleFunc("POST /v1/voice/start", s.handleVoiceStart)
	mux.HandleFunc("POST /v1/voice/segments", s.handleVoiceSegment)
	mux.HandleFunc("POST /v1/voice/end", s.handleVoiceEnd)
	mux.HandleFunc("POST /v1/voice/stop", s.handleVoiceStop)
	mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *FinanceService) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.store.ListTransactions(r.Context())
	if err != nil {
		s.internalError(w, "list transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

func (s *FinanceService) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var draft finance.Draft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	draft.Category = strings.TrimSpace(draft.Category)
	if draft.Date.IsZero() {
		draft.Date = finance.Today()
	}
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx, err := s.store.AddTransaction(r.Context(), draft)
	if err != nil {
		s.internalError(w, "create transaction", err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *FinanceService) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		s.internalError(w, "delete transaction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *FinanceService) handleSummary(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.store.ListTransactions(r.Context())
	if err != nil {
		s.internalError(w, "summarize transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, finance.Summarize(transactions, finance.Today()))
}

func (s *FinanceService) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"income":   finance.IncomeCategories,
		"expense":  finance.ExpenseCategories,
		"currency": finance.CurrencySymbol,
	})
}

// insightsResponse reports available=false instead of an error status
// when the advisor cannot produce commentary, so the UI can fall back
// to its placeholder text.
type insightsResponse struct {
	Text      string `json:"text"`
	Available bool   `json:"available"`
}

func (s *FinanceService) handleInsights(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.store.ListTransactions(r.Context())
	if err != nil {
		s.internalError(w, "list transactions", err)
		return
	}
	text, err := s.advisor.GenerateInsights(r.Context(), transactions)
	if err != nil {
		s.log.WithError(err).Warn("insights unavailable")
		writeJSON(w, http.StatusOK, insightsResponse{Available: false})
		return
	}
	writeJSON(w, http.StatusOK, insightsResponse{Text: text, Available: true})
}

func (s *FinanceService) handleMarket(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}
	answer, err := s.advisor.MarketQuery(r.Context(), req.Query)
	if err != nil {
		s.log.WithError(err).Warn("market query failed")
		writeError(w, gatewayStatus(err), "market data is currently unavailable")
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *FinanceService) handleMarketSuggestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": finance.MarketSuggestions})
}

func (s *FinanceService) handleVoiceStart(w http.ResponseWriter, r *http.Request) {
	id, err := s.voice.Start(r.Context())
	if err != nil {
		s.log.WithError(err).Warn("voice session rejected")
		writeError(w, http.StatusConflict, "could not start voice capture")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"sessionId": id,
		"locale":    s.locale.String(),
	})
}

func (s *FinanceService) handleVoiceSegment(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(voiceSessionHeader)
	var seg struct {
		Text  string `json:"text"`
		Final bool   `json:"final"`
	}
	if err := decodeJSON(r, &seg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.voice.AddSegment(id, seg.Text, seg.Final); err != nil {
		s.voiceSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *FinanceService) handleVoiceEnd(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(voiceSessionHeader)
	restart, err := s.voice.RecognizerEnded(id)
	if err != nil {
		s.voiceSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"restart": restart})
}

func (s *FinanceService) handleVoiceStop(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(voiceSessionHeader)
	tx, err := s.voice.Stop(r.Context(), id)
	if err != nil {
		s.voiceSessionError(w, err)
		return
	}
	if tx == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transaction": tx})
}

func (s *FinanceService) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *FinanceService) voiceSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, voice.ErrUnknownSession) {
		writeError(w, http.StatusNotFound, "unknown voice session")
		return
	}
	s.internalError(w, "voice session", err)
}

func (s *FinanceService) internalError(w http.ResponseWriter, op string, err error) {
	s.log.WithError(err).Errorf("failed to %s", op)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// gatewayStatus maps gateway failures onto HTTP statuses, keeping 4xx
// causes distinct from upstream outages.
func gatewayStatus(err error) int {
	var ge *gemini.GatewayError
	if errors.As(err, &ge) {
		switch ge.Code {
		case gemini.ErrBadRequest:
			return http.StatusBadRequest
		case gemini.ErrRateLimited:
			return http.StatusTooManyRequests
		}
	}
	return http.StatusBadGateway
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
