package push

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Runner は定時実行されるジョブのインターフェース。
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler は毎日決まった時刻にジョブを実行する。
type Scheduler struct {
	job    Runner
	logger *slog.Logger
	hour   int
	minute int
}

// NewScheduler はSchedulerの新しいインスタンスを生成する。
// atは"HH:MM"形式の実行時刻。
func NewScheduler(job Runner, logger *slog.Logger, at string) (*Scheduler, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule time %q: %w", at, err)
	}
	return &Scheduler{
		job:    job,
		logger: logger,
		hour:   t.Hour(),
		minute: t.Minute(),
	}, nil
}

// Start はスケジューラを起動する。
// コンテキストがキャンセルされるまで毎日1回ジョブを実行する。
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("push scheduler started",
		slog.String("at", fmt.Sprintf("%02d:%02d", s.hour, s.minute)),
	)

	for {
		next := s.nextRunTime(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("push scheduler stopped")
			return
		case <-timer.C:
			if err := s.job.Run(ctx); err != nil {
				s.logger.Error("push job failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// nextRunTime は現在時刻から次の実行時刻を計算する。
// 当日の実行時刻を過ぎていれば翌日になる。
func (s *Scheduler) nextRunTime(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
