package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/chatcount/internal/kakao"
)

// totalsLoaderMock はTotalsLoaderのテスト用実装。
type totalsLoaderMock struct {
	loadTotalsFunc func() ([]kakao.UserTotal, error)
}

func (m *totalsLoaderMock) LoadTotals() ([]kakao.UserTotal, error) {
	return m.loadTotalsFunc()
}

func TestSkill_RespondsWithSimpleText(t *testing.T) {
	loader := &totalsLoaderMock{
		loadTotalsFunc: func() ([]kakao.UserTotal, error) {
			return []kakao.UserTotal{
				{User: "alice", Total: 12},
				{User: "bob", Total: 3},
			}, nil
		},
	}
	h := NewWebhookHandler(loader, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/webhook/skill", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.Skill(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Version  string `json:"version"`
		Template struct {
			Outputs []struct {
				SimpleText struct {
					Text string `json:"text"`
				} `json:"simpleText"`
			} `json:"outputs"`
		} `json:"template"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Version != "2.0" {
		t.Errorf("version = %q, want 2.0", resp.Version)
	}
	if len(resp.Template.Outputs) != 1 {
		t.Fatalf("len(outputs) = %d, want 1", len(resp.Template.Outputs))
	}

	text := resp.Template.Outputs[0].SimpleText.Text
	if !strings.Contains(text, "📢 오늘의 인증 결과 📢") {
		t.Errorf("text = %q, want announcement header", text)
	}
	if !strings.Contains(text, "alice - 12회 📚 (레벨 2)") {
		t.Errorf("text = %q, want alice line", text)
	}
}

func TestSkill_LoadError(t *testing.T) {
	loader := &totalsLoaderMock{
		loadTotalsFunc: func() ([]kakao.UserTotal, error) {
			return nil, errors.New("report not found")
		},
	}
	h := NewWebhookHandler(loader, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/webhook/skill", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.Skill(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
