package keyword

import (
	"testing"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/hitoshi/chatcount/internal/model"
)

const botSender = "오픈채팅봇"

func rec(user, message string) model.Record {
	return model.Record{
		Date:    time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC),
		User:    user,
		Message: message,
	}
}

func TestNewFilter_EmptyKeywords(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
	}{
		{"nil", nil},
		{"empty slice", []string{}},
		{"blank entries only", []string{"", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFilter(tt.keywords, botSender)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			apiErr, ok := err.(*model.APIError)
			if !ok {
				t.Fatalf("expected *model.APIError, got %T", err)
			}
			if apiErr.Code != model.ErrCodeEmptyKeywords {
				t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeEmptyKeywords)
			}
		})
	}
}

func TestNewFilter_TrimsAndDropsBlankKeywords(t *testing.T) {
	f, err := NewFilter([]string{" 인증 ", "", "출석"}, botSender)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := f.Keywords()
	want := []string{"인증", "출석"}
	if len(got) != len(want) {
		t.Fatalf("len(Keywords()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keywords()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApply_SubstringMatch(t *testing.T) {
	f, err := NewFilter([]string{"인증"}, botSender)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records := []model.Record{
		rec("alice", "오늘 #인증 완료"),
		rec("bob", "잡담입니다"),
		rec("carol", "#인증"),
	}

	matched := f.Apply(records)
	if len(matched) != 2 {
		t.Fatalf("len(matched) = %d, want 2", len(matched))
	}
	if matched[0].User != "alice" || matched[1].User != "carol" {
		t.Errorf("matched users = %q, %q, want alice, carol", matched[0].User, matched[1].User)
	}
}

func TestApply_MultipleKeywordsOR(t *testing.T) {
	f, err := NewFilter([]string{"인증", "출석"}, botSender)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records := []model.Record{
		rec("alice", "#인증 했어요"),
		rec("bob", "#출석"),
		rec("carol", "둘 다 아님"),
	}

	matched := f.Apply(records)
	if len(matched) != 2 {
		t.Errorf("len(matched) = %d, want 2", len(matched))
	}
}

func TestApply_CaseInsensitive(t *testing.T) {
	f, err := NewFilter([]string{"done"}, botSender)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records := []model.Record{
		rec("alice", "DONE today"),
		rec("bob", "Done!"),
	}

	matched := f.Apply(records)
	if len(matched) != 2 {
		t.Errorf("len(matched) = %d, want 2", len(matched))
	}
}

func TestApply_ExcludesBotSender(t *testing.T) {
	f, err := NewFilter([]string{"인증"}, botSender)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records := []model.Record{
		rec(botSender, "#인증 공지입니다"),
		rec("alice", "#인증"),
	}

	matched := f.Apply(records)
	if len(matched) != 1 {
		t.Fatalf("len(matched) = %d, want 1", len(matched))
	}
	if matched[0].User != "alice" {
		t.Errorf("matched user = %q, want alice", matched[0].User)
	}
}

func TestApply_EmptyMessageNeverMatches(t *testing.T) {
	f, err := NewFilter([]string{"인증"}, botSender)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	matched := f.Apply([]model.Record{rec("alice", "")})
	if len(matched) != 0 {
		t.Errorf("len(matched) = %d, want 0", len(matched))
	}
}

func TestApply_NFDDecomposedMessageMatches(t *testing.T) {
	f, err := NewFilter([]string{"인증"}, botSender)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// macOS版エクスポートのNFD分解メッセージにもマッチする
	decomposed := norm.NFD.String("오늘 #인증 완료")
	matched := f.Apply([]model.Record{rec("alice", decomposed)})
	if len(matched) != 1 {
		t.Errorf("len(matched) = %d, want 1", len(matched))
	}
}

func TestApply_RegexMetaCharactersAreLiteral(t *testing.T) {
	f, err := NewFilter([]string{"c++"}, botSender)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records := []model.Record{
		rec("alice", "studying c++ today"),
		rec("bob", "studying c today"),
	}

	matched := f.Apply(records)
	if len(matched) != 1 {
		t.Fatalf("len(matched) = %d, want 1", len(matched))
	}
	if matched[0].User != "alice" {
		t.Errorf("matched user = %q, want alice", matched[0].User)
	}
}
