// Package model はドメインモデルを定義する。
package model

import "time"

// RawRecord はチャットログCSVから読み込んだ1行を表す。
// 読み込み後は変更しない。
type RawRecord struct {
	Timestamp string // ロケール固有のタイムスタンプ文字列（例: "2025-04-03 오전 09:00:00"）
	User      string
	Message   string
}

// Record は日付正規化後の1行を表す。
// Dateのゼロ値は「日付不明」を意味する。前方補完後にゼロ値が残るのは、
// 最初の有効な日付より前の行のみ。
type Record struct {
	Date    time.Time // 暦日（UTC 00:00:00に正規化）
	User    string
	Message string
}

// HasDate は日付が解決済みかを返す。
func (r Record) HasDate() bool {
	return !r.Date.IsZero()
}

// DateOnly はtを暦日（UTC 00:00:00）に切り詰める。
// 日付をマップのキーとして比較可能にするため、全パッケージで同じ正規化を使う。
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
