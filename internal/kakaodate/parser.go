// Package kakaodate はカカオトークのエクスポート形式タイムスタンプの解析を提供する。
// "2025-04-03 오전 09:00:00" のような韓国語午前/午後表記の文字列を暦日に変換する。
package kakaodate

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/hitoshi/chatcount/internal/model"
)

// layout は午前/午後トークンを英語に置換した後の12時間制レイアウト。
// エクスポートは時を0埋めしないことがあるため、時のトークンは可変幅にする。
const layout = "2006-01-02 PM 3:04:05"

// meridiemReplacer は韓国語の午前/午後トークンをAM/PMに置換する。
var meridiemReplacer = strings.NewReplacer(
	"오전", "AM", // 午前
	"오후", "PM", // 午後
)

// Parse はカカオトーク形式のタイムスタンプ文字列を暦日に変換する。
// macOS版エクスポートはハングルがNFD分解されていることがあるため、
// 置換の前にNFC正規化を行う。時刻部分は破棄し、UTC 00:00:00の暦日を返す。
// 解析に失敗した場合はエラーを返す。呼び出し元はこれを行単位の回復可能な
// 状態として扱い、処理を中断してはならない。
func Parse(raw string) (time.Time, error) {
	s := norm.NFC.String(strings.TrimSpace(raw))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	s = meridiemReplacer.Replace(s)

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", raw, err)
	}

	return model.DateOnly(t), nil
}
