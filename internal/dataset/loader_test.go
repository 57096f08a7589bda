package dataset

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/chatcount/internal/model"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRead_HeaderOrderIndependent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(newTestLogger(&buf))

	csv := "Message,Date,User\n" +
		"#인증 완료,2025-04-03 오전 09:00:00,alice\n"

	records, err := l.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].User != "alice" {
		t.Errorf("User = %q, want %q", records[0].User, "alice")
	}
	if records[0].Message != "#인증 완료" {
		t.Errorf("Message = %q, want %q", records[0].Message, "#인증 완료")
	}
	if records[0].Timestamp != "2025-04-03 오전 09:00:00" {
		t.Errorf("Timestamp = %q, want %q", records[0].Timestamp, "2025-04-03 오전 09:00:00")
	}
}

func TestRead_BOMHeader(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(newTestLogger(&buf))

	csv := "\ufeffDate,User,Message\n" +
		"2025-04-03 오전 09:00:00,alice,hello\n"

	records, err := l.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("expected no error with BOM header, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
}

func TestRead_MissingColumn(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(newTestLogger(&buf))

	tests := []struct {
		name   string
		header string
		column string
	}{
		{"no Date", "User,Message\nalice,hi\n", "Date"},
		{"no User", "Date,Message\nx,hi\n", "User"},
		{"no Message", "Date,User\nx,alice\n", "Message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Read(strings.NewReader(tt.header))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			apiErr, ok := err.(*model.APIError)
			if !ok {
				t.Fatalf("expected *model.APIError, got %T", err)
			}
			if apiErr.Code != model.ErrCodeMissingColumn {
				t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeMissingColumn)
			}
		})
	}
}

func TestRead_ShortRowFieldsAreEmpty(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(newTestLogger(&buf))

	csv := "Date,User,Message\n" +
		"2025-04-03 오전 09:00:00,alice\n"

	records, err := l.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if records[0].Message != "" {
		t.Errorf("Message = %q, want empty", records[0].Message)
	}
}

func TestPreprocess_NormalizesDates(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(newTestLogger(&buf))

	raws := []model.RawRecord{
		{Timestamp: "2025-04-03 오전 09:00:00", User: "alice", Message: "a"},
		{Timestamp: "2025-04-04 오후 10:00:00", User: "bob", Message: "b"},
	}

	records, failures := l.Preprocess(raws)
	if failures != 0 {
		t.Errorf("failures = %d, want 0", failures)
	}
	if !records[0].Date.Equal(date(2025, time.April, 3)) {
		t.Errorf("records[0].Date = %v, want 2025-04-03", records[0].Date)
	}
	if !records[1].Date.Equal(date(2025, time.April, 4)) {
		t.Errorf("records[1].Date = %v, want 2025-04-04", records[1].Date)
	}
}

func TestPreprocess_ForwardFill(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(newTestLogger(&buf))

	raws := []model.RawRecord{
		{Timestamp: "2025-04-03 오전 09:00:00", User: "alice", Message: "a"},
		{Timestamp: "", User: "alice", Message: "continuation line"},
		{Timestamp: "", User: "bob", Message: "another continuation"},
		{Timestamp: "2025-04-05 오전 08:00:00", User: "carol", Message: "c"},
		{Timestamp: "broken", User: "dave", Message: "d"},
	}

	records, failures := l.Preprocess(raws)
	if failures != 3 {
		t.Errorf("failures = %d, want 3", failures)
	}

	want := []time.Time{
		date(2025, time.April, 3),
		date(2025, time.April, 3),
		date(2025, time.April, 3),
		date(2025, time.April, 5),
		date(2025, time.April, 5),
	}
	for i, w := range want {
		if !records[i].Date.Equal(w) {
			t.Errorf("records[%d].Date = %v, want %v", i, records[i].Date, w)
		}
	}
}

func TestPreprocess_LeadingRowsWithoutDateStayAbsent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(newTestLogger(&buf))

	raws := []model.RawRecord{
		{Timestamp: "", User: "alice", Message: "orphan"},
		{Timestamp: "", User: "bob", Message: "orphan too"},
		{Timestamp: "2025-04-03 오전 09:00:00", User: "carol", Message: "c"},
	}

	records, _ := l.Preprocess(raws)
	if records[0].HasDate() {
		t.Errorf("records[0] should stay absent, got %v", records[0].Date)
	}
	if records[1].HasDate() {
		t.Errorf("records[1] should stay absent, got %v", records[1].Date)
	}
	if !records[2].HasDate() {
		t.Error("records[2] should have a date")
	}
}

func TestPreprocess_LogsWarningOnParseFailure(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(newTestLogger(&buf))

	raws := []model.RawRecord{
		{Timestamp: "broken", User: "alice", Message: "a"},
	}
	l.Preprocess(raws)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log: %v\nraw: %s", err, buf.String())
	}
	if entry["msg"] != "failed to convert date" {
		t.Errorf("msg = %q, want %q", entry["msg"], "failed to convert date")
	}
	if entry["timestamp"] != "broken" {
		t.Errorf("timestamp = %q, want %q", entry["timestamp"], "broken")
	}
}
