// Package push は集計結果のカカオトーク定時通知を提供する。
// スケジューラと送信ジョブを含む。
package push

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/chatcount/internal/auth"
	"github.com/hitoshi/chatcount/internal/kakao"
	"github.com/hitoshi/chatcount/internal/metrics"
)

// TokenLoader は保存済みアクセストークンの読み出しインターフェース。
// auth.TokenStoreがこれを満たす。
type TokenLoader interface {
	Load() (*auth.Token, error)
}

// Sender はメッセージ送信のインターフェース。
type Sender interface {
	SendText(ctx context.Context, accessToken, text, linkURL, buttonTitle string) error
}

// JobConfig は送信ジョブの設定。
type JobConfig struct {
	// WeeklyReportPath は通知元となる週次レポートCSVのパス。
	WeeklyReportPath string
	LinkURL          string
	ButtonTitle      string
}

// Job は週次レポートを読み出して通知メッセージを送信するジョブ。
type Job struct {
	tokens  TokenLoader
	sender  Sender
	logger  *slog.Logger
	metrics metrics.Recorder
	config  JobConfig
}

// NewJob はJobの新しいインスタンスを生成する。
func NewJob(tokens TokenLoader, sender Sender, logger *slog.Logger, recorder metrics.Recorder, config JobConfig) *Job {
	return &Job{
		tokens:  tokens,
		sender:  sender,
		logger:  logger,
		metrics: recorder,
		config:  config,
	}
}

// Run は通知を1回送信する。
// レポートの読み出し、トークンの読み出し、本文の組み立て、送信の順に行う。
func (j *Job) Run(ctx context.Context) error {
	totals, err := kakao.LoadTotals(j.config.WeeklyReportPath)
	if err != nil {
		j.metrics.RecordPushFailure("report_load")
		return err
	}

	token, err := j.tokens.Load()
	if err != nil {
		j.metrics.RecordPushFailure("token_load")
		return err
	}

	text := kakao.ComposeMessage(totals)

	start := time.Now()
	if err := j.sender.SendText(ctx, token.AccessToken, text, j.config.LinkURL, j.config.ButtonTitle); err != nil {
		j.metrics.RecordPushFailure("send")
		return err
	}
	j.metrics.RecordPushLatency(time.Since(start))
	j.metrics.RecordPushSuccess()

	j.logger.Info("push notification sent",
		slog.Int("user_count", len(totals)),
	)
	return nil
}
