// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// パイプラインとプッシュワーカーから利用する。
type Recorder interface {
	RecordRowsLoaded(count int)
	RecordDateParseFailures(count int)
	RecordRowsMatched(count int)
	RecordReportWritten(kind string)
	RecordPushSuccess()
	RecordPushFailure(reason string)
	RecordPushLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	rowsLoaded        prometheus.Counter
	dateParseFailures prometheus.Counter
	rowsMatched       prometheus.Counter
	reportsWritten    *prometheus.CounterVec
	pushSuccess       prometheus.Counter
	pushFail          *prometheus.CounterVec
	pushLatency       prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		rowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatcount_rows_loaded_total",
			Help: "読み込んだチャットログ行の合計数",
		}),
		dateParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatcount_date_parse_failures_total",
			Help: "タイムスタンプ解析に失敗した行の合計数",
		}),
		rowsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatcount_rows_matched_total",
			Help: "キーワードフィルタを通過した行の合計数",
		}),
		reportsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatcount_reports_written_total",
			Help: "書き出したレポートファイルの合計数",
		}, []string{"kind"}),
		pushSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatcount_push_success_total",
			Help: "カカオトークメッセージ送信成功の合計数",
		}),
		pushFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatcount_push_fail_total",
			Help: "カカオトークメッセージ送信失敗の合計数",
		}, []string{"reason"}),
		pushLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chatcount_push_latency_seconds",
			Help:    "メッセージ送信のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.rowsLoaded,
		c.dateParseFailures,
		c.rowsMatched,
		c.reportsWritten,
		c.pushSuccess,
		c.pushFail,
		c.pushLatency,
	)

	return c
}

// RecordRowsLoaded は読み込んだ行数を記録する。
func (c *Collector) RecordRowsLoaded(count int) {
	c.rowsLoaded.Add(float64(count))
}

// RecordDateParseFailures はタイムスタンプ解析失敗数を記録する。
func (c *Collector) RecordDateParseFailures(count int) {
	c.dateParseFailures.Add(float64(count))
}

// RecordRowsMatched はキーワードフィルタ通過行数を記録する。
func (c *Collector) RecordRowsMatched(count int) {
	c.rowsMatched.Add(float64(count))
}

// RecordReportWritten はレポート書き出しを記録する。kindは"daily"または"weekly"。
func (c *Collector) RecordReportWritten(kind string) {
	c.reportsWritten.WithLabelValues(kind).Inc()
}

// RecordPushSuccess はメッセージ送信成功を記録する。
func (c *Collector) RecordPushSuccess() {
	c.pushSuccess.Inc()
}

// RecordPushFailure はメッセージ送信失敗を記録する。
func (c *Collector) RecordPushFailure(reason string) {
	c.pushFail.WithLabelValues(reason).Inc()
}

// RecordPushLatency はメッセージ送信のレイテンシを記録する。
func (c *Collector) RecordPushLatency(duration time.Duration) {
	c.pushLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
