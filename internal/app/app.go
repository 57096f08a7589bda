// Package app はアプリケーションの起動と依存関係のワイヤリングを行う。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/chatcount/internal/auth"
	"github.com/hitoshi/chatcount/internal/config"
	"github.com/hitoshi/chatcount/internal/dataset"
	"github.com/hitoshi/chatcount/internal/handler"
	"github.com/hitoshi/chatcount/internal/kakao"
	"github.com/hitoshi/chatcount/internal/logger"
	"github.com/hitoshi/chatcount/internal/metrics"
	"github.com/hitoshi/chatcount/internal/model"
	"github.com/hitoshi/chatcount/internal/pipeline"
	"github.com/hitoshi/chatcount/internal/security"
	"github.com/hitoshi/chatcount/internal/worker/push"
)

// maxResponseSize は外部APIレスポンスの読み込み上限。
const maxResponseSize = 5 * 1024 * 1024

// Init はアプリケーションの初期化を行う。
// JSON構造化ログをセットアップし、環境変数からConfigを読み込む。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) *config.Config {
	logger.SetupDefault(w)
	return config.Load()
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8000"
		}
		return runHealthcheck(port)
	}

	cfg := Init(os.Stderr)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandPush:
		return runPush(cfg)
	default:
		return runAnalyze(w, cfg)
	}
}

// runAnalyze は対話的な集計モードで実行する。
// キーワードの入力を受けて日次・週次レポートを書き出し、
// 月次リーダーボードの照会ループに入る。
func runAnalyze(w io.Writer, cfg *config.Config) error {
	keywords, err := promptKeywords()
	if err != nil {
		return err
	}

	p := pipeline.New(
		dataset.NewLoader(slog.Default()),
		slog.Default(),
		metrics.NewCollector(prometheus.NewRegistry()),
	)

	result, err := p.Run(pipeline.Config{
		InputPath:        cfg.InputCSVPath,
		Keywords:         keywords,
		Cutoff:           model.DateOnly(time.Now()),
		TargetYear:       cfg.TargetYear,
		ExcludedSender:   cfg.ExcludedSender,
		DailyOutputPath:  cfg.DailyOutputPath,
		WeeklyOutputPath: cfg.WeeklyOutputPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "집계 완료: %d행 중 %d행 매칭, 참여자 %d명\n",
		result.RowsLoaded, result.RowsMatched, len(result.Daily.Rows))
	fmt.Fprintf(w, "일별 결과: %s\n", cfg.DailyOutputPath)
	fmt.Fprintf(w, "주별 결과: %s\n", cfg.WeeklyOutputPath)

	return runMonthLoop(w, result.Daily)
}

// weeklyTotalsLoader は週次レポートCSVをTotalsLoaderとして公開するアダプタ。
type weeklyTotalsLoader struct {
	path string
}

func (l *weeklyTotalsLoader) LoadTotals() ([]kakao.UserTotal, error) {
	return kakao.LoadTotals(l.path)
}

// runServe はサーバーモードで起動する。
// OAuthコールバック、チャットボットWebhook、ヘルスチェック、メトリクスを公開する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics.NewCollector(registry)

	oauthProvider := auth.NewKakaoOAuthProvider(auth.KakaoOAuthConfig{
		ClientID:     cfg.KakaoClientID,
		ClientSecret: cfg.KakaoClientSecret,
		RedirectURL:  cfg.KakaoRedirectURL,
	})
	tokenStore := auth.NewFileTokenStore(cfg.TokenFile)
	authService := auth.NewService(oauthProvider, tokenStore, slog.Default())

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:      slog.Default(),
		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieSecure: isSecureRedirect(cfg.KakaoRedirectURL),
		},
		Totals:   &weeklyTotalsLoader{path: cfg.WeeklyOutputPath},
		Gatherer: registry,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// runPush は定時通知ワーカーモードで起動する。
// 毎日設定時刻に週次レポートの内容をカカオトークで通知する。
// SIGINTまたはSIGTERMシグナルを受信するとシャットダウンする。
func runPush(cfg *config.Config) error {
	if err := cfg.ValidatePush(); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewCollector(registry)

	ssrfGuard := security.NewSSRFGuard()
	if err := ssrfGuard.ValidateURL(cfg.PushLinkURL); err != nil {
		return fmt.Errorf("invalid push link url: %w", err)
	}
	httpClient := ssrfGuard.NewSafeClient(cfg.SendTimeout, maxResponseSize)

	sender := kakao.NewClient(httpClient, slog.Default(), cfg.SendRatePerSec)
	tokenStore := auth.NewFileTokenStore(cfg.TokenFile)

	job := push.NewJob(tokenStore, sender, slog.Default(), recorder, push.JobConfig{
		WeeklyReportPath: cfg.WeeklyOutputPath,
		LinkURL:          cfg.PushLinkURL,
		ButtonTitle:      cfg.PushButtonTitle,
	})

	scheduler, err := push.NewScheduler(job, slog.Default(), cfg.PushAt)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down push worker...")
		cancel()
	}()

	slog.Info("push worker starting",
		slog.String("at", cfg.PushAt),
	)

	// スケジューラをメインgoroutineで実行（ブロッキング）
	scheduler.Start(ctx)

	slog.Info("push worker stopped gracefully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// isSecureRedirect はリダイレクトURLがhttpsかを返す。
func isSecureRedirect(redirectURL string) bool {
	return strings.HasPrefix(redirectURL, "https://")
}
