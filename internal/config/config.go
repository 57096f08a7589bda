package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Analyze
	InputCSVPath     string
	DailyOutputPath  string
	WeeklyOutputPath string
	ExcludedSender   string
	TargetYear       int

	// Kakao OAuth
	KakaoClientID     string
	KakaoClientSecret string
	KakaoRedirectURL  string
	TokenFile         string

	// Push
	PushAt          string
	PushLinkURL     string
	PushButtonTitle string
	SendTimeout     time.Duration
	SendRatePerSec  float64

	// Server
	ServerPort string
}

// Load は環境変数からConfigを読み込む。
// 全フィールドにデフォルト値があり、Loadはエラーを返さない。
// モード固有の必須チェックはValidateServe/ValidatePushで行う。
func Load() *Config {
	return &Config{
		InputCSVPath:     getEnvString("INPUT_CSV_PATH", "chat.csv"),
		DailyOutputPath:  getEnvString("DAILY_OUTPUT_PATH", "keyword_daily_count.csv"),
		WeeklyOutputPath: getEnvString("WEEKLY_OUTPUT_PATH", "keyword_usage_count.csv"),
		ExcludedSender:   getEnvString("EXCLUDED_SENDER", "오픈채팅봇"),
		TargetYear:       getEnvInt("TARGET_YEAR", 2025),

		KakaoClientID:     os.Getenv("KAKAO_CLIENT_ID"),
		KakaoClientSecret: os.Getenv("KAKAO_CLIENT_SECRET"),
		KakaoRedirectURL:  os.Getenv("KAKAO_REDIRECT_URL"),
		TokenFile:         getEnvString("TOKEN_FILE", "kakao_token.json"),

		PushAt:          getEnvString("PUSH_AT", "23:59"),
		PushLinkURL:     getEnvString("PUSH_LINK_URL", "https://www.kakao.com"),
		PushButtonTitle: getEnvString("PUSH_BUTTON_TITLE", "자세히 보기"),
		SendTimeout:     getEnvDuration("SEND_TIMEOUT", 10*time.Second),
		SendRatePerSec:  getEnvFloat("SEND_RATE_PER_SEC", 1),

		ServerPort: getEnvString("SERVER_PORT", "8000"),
	}
}

// ValidateServe はserveモードで必須の設定が揃っているか検証する。
// OAuthコールバックを受けるためクライアント資格情報が必要になる。
func (c *Config) ValidateServe() error {
	var missing []string
	if c.KakaoClientID == "" {
		missing = append(missing, "KAKAO_CLIENT_ID")
	}
	if c.KakaoClientSecret == "" {
		missing = append(missing, "KAKAO_CLIENT_SECRET")
	}
	if c.KakaoRedirectURL == "" {
		missing = append(missing, "KAKAO_REDIRECT_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables are not set: %v", missing)
	}
	return nil
}

// ValidatePush はpushモードで必須の設定を検証する。
// PUSH_ATは"HH:MM"形式でなければならない。
func (c *Config) ValidatePush() error {
	if _, err := time.Parse("15:04", c.PushAt); err != nil {
		return fmt.Errorf("PUSH_AT must be in HH:MM format: %q", c.PushAt)
	}
	return nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
