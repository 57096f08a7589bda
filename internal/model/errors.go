package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// 利用者に表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, dataset, report, auth, notify
	Action   string // 利用者向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingColumn    = "MISSING_COLUMN"
	ErrCodeEmptyKeywords    = "EMPTY_KEYWORDS"
	ErrCodeEmptyFilteredSet = "EMPTY_FILTERED_SET"
	ErrCodeInvalidMonth     = "INVALID_MONTH"
	ErrCodeNoMonthColumns   = "NO_MONTH_COLUMNS"
	ErrCodeTokenNotFound    = "TOKEN_NOT_FOUND"
	ErrCodeSendFailed       = "SEND_FAILED"
)

// NewMissingColumnError は入力CSVに必須カラムがない場合のエラーを生成する。
func NewMissingColumnError(column string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingColumn,
		Message:  fmt.Sprintf("入力CSVに必須カラムがありません: %s", column),
		Category: "dataset",
		Action:   "ヘッダー行に Date, User, Message カラムを含むエクスポートCSVを指定してください。",
	}
}

// NewEmptyKeywordsError はキーワードが1件も指定されなかった場合のエラーを生成する。
func NewEmptyKeywordsError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyKeywords,
		Message:  "キーワードが指定されていません。",
		Category: "validation",
		Action:   "カンマ区切りで1件以上のキーワードを入力してください。",
	}
}

// NewEmptyFilteredSetError はキーワードに一致するメッセージが1件もない場合の
// エラーを生成する。このエラーはその実行の終了条件であり、出力ファイルは書き出されない。
func NewEmptyFilteredSetError(keywords []string) *APIError {
	return &APIError{
		Code:     ErrCodeEmptyFilteredSet,
		Message:  fmt.Sprintf("キーワード %v を含むメッセージがありません。", keywords),
		Category: "report",
		Action:   "キーワードの綴りを確認するか、別のキーワードで再実行してください。",
	}
}

// NewInvalidMonthError は月の指定が1〜12の範囲外の場合のエラーを生成する。
func NewInvalidMonthError(input string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMonth,
		Message:  fmt.Sprintf("無効な月指定です: %s", input),
		Category: "validation",
		Action:   "1から12の整数を入力してください。",
	}
}

// NewNoMonthColumnsError は指定月の日付カラムがレポートに存在しない場合の
// エラーを生成する。
func NewNoMonthColumnsError(month int) *APIError {
	return &APIError{
		Code:     ErrCodeNoMonthColumns,
		Message:  fmt.Sprintf("%d月の日付カラムがレポートに存在しません。", month),
		Category: "report",
		Action:   "集計期間に含まれる月を指定してください。",
	}
}

// NewTokenNotFoundError はアクセストークンが未保存の場合のエラーを生成する。
func NewTokenNotFoundError(path string) *APIError {
	return &APIError{
		Code:     ErrCodeTokenNotFound,
		Message:  fmt.Sprintf("アクセストークンが見つかりません: %s", path),
		Category: "auth",
		Action:   "serveモードを起動し、/auth/kakao/login からOAuth認証を完了してください。",
	}
}

// NewSendFailedError はカカオトークメッセージ送信失敗のエラーを生成する。
func NewSendFailedError(status int, body string) *APIError {
	return &APIError{
		Code:     ErrCodeSendFailed,
		Message:  fmt.Sprintf("メッセージ送信に失敗しました: status %d: %s", status, body),
		Category: "notify",
		Action:   "アクセストークンの有効期限を確認し、必要なら再認証してください。",
	}
}
