// Package pipeline はチャットログ集計の一連の処理を束ねる。
// 読み込み、前処理、キーワード選別、レポート生成、CSV書き出しを
// この順で実行する。
package pipeline

import (
	"log/slog"
	"time"

	"github.com/hitoshi/chatcount/internal/dataset"
	"github.com/hitoshi/chatcount/internal/keyword"
	"github.com/hitoshi/chatcount/internal/metrics"
	"github.com/hitoshi/chatcount/internal/model"
	"github.com/hitoshi/chatcount/internal/report"
	"github.com/hitoshi/chatcount/internal/week"
)

// Config は1回の集計実行のパラメータを保持する。
type Config struct {
	InputPath        string
	Keywords         []string
	Cutoff           time.Time // この日付より後の行は集計しない
	TargetYear       int
	ExcludedSender   string
	DailyOutputPath  string
	WeeklyOutputPath string
}

// Result は集計の成果物を保持する。
type Result struct {
	Daily  *report.DailyReport
	Weekly *report.RankedReport

	RowsLoaded    int
	ParseFailures int
	RowsMatched   int
}

// Pipeline は集計処理の実行器。
type Pipeline struct {
	loader  *dataset.Loader
	logger  *slog.Logger
	metrics metrics.Recorder
}

// New はPipelineを生成する。
func New(loader *dataset.Loader, logger *slog.Logger, recorder metrics.Recorder) *Pipeline {
	return &Pipeline{
		loader:  loader,
		logger:  logger,
		metrics: recorder,
	}
}

// Run は集計を実行し、日次・週次レポートをCSVに書き出す。
// キーワードに一致する行が1件もない場合はエラーを返し、
// 出力ファイルは一切書き出さない。
func (p *Pipeline) Run(cfg Config) (*Result, error) {
	filter, err := keyword.NewFilter(cfg.Keywords, cfg.ExcludedSender)
	if err != nil {
		return nil, err
	}

	raws, err := p.loader.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	p.metrics.RecordRowsLoaded(len(raws))

	records, parseFailures := p.loader.Preprocess(raws)
	p.metrics.RecordDateParseFailures(parseFailures)

	matched := filter.Apply(records)
	p.metrics.RecordRowsMatched(len(matched))
	if len(matched) == 0 {
		return nil, model.NewEmptyFilteredSetError(filter.Keywords())
	}

	p.logger.Info("keyword filter applied",
		slog.Int("total_rows", len(records)),
		slog.Int("matched_rows", len(matched)),
	)

	daily := report.BuildDaily(matched, cfg.Cutoff)
	resolver := week.NewResolver(cfg.TargetYear)
	weekly := report.Rank(report.BuildWeekly(matched, cfg.Cutoff, resolver))

	if err := daily.WriteCSV(cfg.DailyOutputPath); err != nil {
		return nil, err
	}
	p.metrics.RecordReportWritten("daily")

	if err := weekly.WriteCSV(cfg.WeeklyOutputPath); err != nil {
		return nil, err
	}
	p.metrics.RecordReportWritten("weekly")

	p.logger.Info("reports written",
		slog.String("daily_path", cfg.DailyOutputPath),
		slog.String("weekly_path", cfg.WeeklyOutputPath),
		slog.Int("user_count", len(daily.Rows)),
	)

	return &Result{
		Daily:         daily,
		Weekly:        weekly,
		RowsLoaded:    len(raws),
		ParseFailures: parseFailures,
		RowsMatched:   len(matched),
	}, nil
}
