package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/chatcount/internal/kakao"
)

// TotalsLoader は週次レポートからユーザーごとの累計回数を読み出す。
type TotalsLoader interface {
	LoadTotals() ([]kakao.UserTotal, error)
}

// WebhookHandler はカカオトークチャットボットのスキルWebhookを処理する。
// ボットから呼び出され、現在の集計結果をsimpleTextで応答する。
type WebhookHandler struct {
	totals TotalsLoader
	logger *slog.Logger
}

// NewWebhookHandler はWebhookHandlerを生成する。
func NewWebhookHandler(totals TotalsLoader, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		totals: totals,
		logger: logger,
	}
}

// skillResponse はチャットボットスキルのレスポンス形式。
type skillResponse struct {
	Version  string        `json:"version"`
	Template skillTemplate `json:"template"`
}

type skillTemplate struct {
	Outputs []skillOutput `json:"outputs"`
}

type skillOutput struct {
	SimpleText skillSimpleText `json:"simpleText"`
}

type skillSimpleText struct {
	Text string `json:"text"`
}

// Skill はスキルリクエストを処理する。
// POST /webhook/skill
func (h *WebhookHandler) Skill(w http.ResponseWriter, r *http.Request) {
	totals, err := h.totals.LoadTotals()
	if err != nil {
		h.logger.Error("failed to load totals for skill response",
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := skillResponse{
		Version: "2.0",
		Template: skillTemplate{
			Outputs: []skillOutput{
				{SimpleText: skillSimpleText{Text: kakao.ComposeMessage(totals)}},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode skill response",
			slog.String("error", err.Error()),
		)
	}
}
