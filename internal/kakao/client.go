// Package kakao はカカオトークの「나에게 보내기」APIによる
// メッセージ送信と、送信本文の組み立てを提供する。
package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/hitoshi/chatcount/internal/model"
)

// defaultEndpoint は自分宛メッセージ送信APIのエンドポイント。
const defaultEndpoint = "https://kapi.kakao.com/v2/api/talk/memo/default/send"

// Client はカカオトークメッセージAPIのクライアント。
// APIのクォータを守るため、送信前にレートリミッターで待機する。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	endpoint   string // テスト用にエンドポイントを差し替え可能
}

// NewClient はClientの新しいインスタンスを生成する。
// ratePerSecは1秒あたりの送信リクエスト数の上限。
func NewClient(httpClient *http.Client, logger *slog.Logger, ratePerSec float64) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), 1),
		endpoint:   defaultEndpoint,
	}
}

// textTemplate はテキストメッセージのテンプレートオブジェクト。
type textTemplate struct {
	ObjectType  string       `json:"object_type"`
	Text        string       `json:"text"`
	Link        templateLink `json:"link"`
	ButtonTitle string       `json:"button_title"`
}

type templateLink struct {
	WebURL string `json:"web_url"`
}

// SendText はテキストメッセージを自分宛に送信する。
// APIはtemplate_objectフィールドにJSONを格納したフォームを受け取る。
// 200以外のステータスはSEND_FAILEDエラーとして返す。
func (c *Client) SendText(ctx context.Context, accessToken, text, linkURL, buttonTitle string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	template, err := json.Marshal(textTemplate{
		ObjectType:  "text",
		Text:        text,
		Link:        templateLink{WebURL: linkURL},
		ButtonTitle: buttonTitle,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message template: %w", err)
	}

	form := url.Values{"template_object": {string(template)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("message send request failed",
			slog.String("error", err.Error()),
		)
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read send response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("message send returned error status",
			slog.Int("http_status", resp.StatusCode),
		)
		return model.NewSendFailedError(resp.StatusCode, string(body))
	}

	c.logger.Info("message sent",
		slog.Int("text_length", len(text)),
	)
	return nil
}
