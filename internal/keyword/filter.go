// Package keyword はメッセージ本文のキーワードフィルタリングを提供する。
package keyword

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hitoshi/chatcount/internal/model"
)

// Filter は複数キーワードのOR条件でメッセージを選別する。
// ログ取得用のボット（擬似ユーザー）の発言は常に除外する。
type Filter struct {
	keywords       []string
	pattern        *regexp.Regexp
	excludedSender string
}

// NewFilter はFilterを生成する。キーワードは大文字小文字を区別しない
// OR条件の単一パターンにまとめる。マッチングを安定させるため、
// キーワードはNFC正規化してからパターンに組み込む。
// キーワードが空（空白のみを含む）の場合はエラーを返す。
func NewFilter(keywords []string, excludedSender string) (*Filter, error) {
	cleaned := make([]string, 0, len(keywords))
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = norm.NFC.String(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		cleaned = append(cleaned, kw)
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}

	if len(cleaned) == 0 {
		return nil, model.NewEmptyKeywordsError()
	}

	pattern, err := regexp.Compile("(?i)(" + strings.Join(quoted, "|") + ")")
	if err != nil {
		return nil, err
	}

	return &Filter{
		keywords:       cleaned,
		pattern:        pattern,
		excludedSender: excludedSender,
	}, nil
}

// Keywords は正規化後のキーワード一覧を返す。
func (f *Filter) Keywords() []string {
	return f.keywords
}

// Apply はメッセージがいずれかのキーワードを含み、かつ送信者が除外対象で
// ない行だけを返す。空メッセージはどのキーワードにもマッチしない。
// 行の相対順序は保持する。
func (f *Filter) Apply(records []model.Record) []model.Record {
	var matched []model.Record
	for _, rec := range records {
		if rec.User == f.excludedSender {
			continue
		}
		if rec.Message == "" {
			continue
		}
		if f.pattern.MatchString(norm.NFC.String(rec.Message)) {
			matched = append(matched, rec)
		}
	}
	return matched
}
