// Package dataset はチャットログCSVの読み込みと前処理を提供する。
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hitoshi/chatcount/internal/kakaodate"
	"github.com/hitoshi/chatcount/internal/model"
)

// 入力CSVの必須カラム名。カラムの並び順は問わない。
const (
	columnDate    = "Date"
	columnUser    = "User"
	columnMessage = "Message"
)

// Loader はチャットログCSVを読み込み、RawRecordの列に変換する。
type Loader struct {
	logger *slog.Logger
}

// NewLoader はLoaderの新しいインスタンスを生成する。
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load は指定パスのCSVを読み込み、ファイル内の行順のままRawRecordを返す。
// ヘッダー行からカラム位置を解決するため、カラムの並び順には依存しない。
// 必須カラムが欠けている場合はエラーを返す。
func (l *Loader) Load(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input csv: %w", err)
	}
	defer f.Close()

	records, err := l.Read(f)
	if err != nil {
		return nil, err
	}

	l.logger.Info("input csv loaded",
		slog.String("path", path),
		slog.Int("row_count", len(records)),
	)
	return records, nil
}

// Read はrからCSVを読み込む。Loadの本体で、テストからはreaderを直接渡せる。
func (l *Loader) Read(r io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	// 継続行はカラム数が揃わないことがあるため、フィールド数の検査は行わない
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	idx, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []model.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		records = append(records, model.RawRecord{
			Timestamp: field(row, idx.date),
			User:      field(row, idx.user),
			Message:   field(row, idx.message),
		})
	}

	return records, nil
}

// Preprocess は各行のタイムスタンプを暦日に正規化し、前方補完を行う。
// 解析に失敗した行は警告ログを出して日付不明のままにし、直前の行で解決済みの
// 日付があればそれを引き継ぐ（エクスポート形式ではタイムスタンプを省略した
// 継続行が存在する）。補完は元の行順に依存するため、1回の逐次パスで行う。
// 戻り値の2つ目は日付解析に失敗した行数。
func (l *Loader) Preprocess(raws []model.RawRecord) ([]model.Record, int) {
	records := make([]model.Record, 0, len(raws))
	parseFailures := 0

	var lastDate time.Time // 直近の解決済み日付
	for _, raw := range raws {
		rec := model.Record{
			User:    raw.User,
			Message: raw.Message,
		}

		date, err := kakaodate.Parse(raw.Timestamp)
		if err != nil {
			parseFailures++
			l.logger.Warn("failed to convert date",
				slog.String("timestamp", raw.Timestamp),
				slog.String("user", raw.User),
				slog.String("error", err.Error()),
			)
			// 前方補完: 直前の解決済み日付を引き継ぐ
			rec.Date = lastDate
		} else {
			rec.Date = date
			lastDate = date
		}

		records = append(records, rec)
	}

	return records, parseFailures
}

// columnIndex は必須カラムのヘッダー内位置を保持する。
type columnIndex struct {
	date    int
	user    int
	message int
}

// resolveColumns はヘッダー行から必須カラムの位置を解決する。
func resolveColumns(header []string) (columnIndex, error) {
	idx := columnIndex{date: -1, user: -1, message: -1}

	for i, name := range header {
		// 先頭カラムのUTF-8 BOMを除去する
		name = strings.TrimPrefix(strings.TrimSpace(name), "\uFEFF")
		switch name {
		case columnDate:
			idx.date = i
		case columnUser:
			idx.user = i
		case columnMessage:
			idx.message = i
		}
	}

	if idx.date < 0 {
		return idx, model.NewMissingColumnError(columnDate)
	}
	if idx.user < 0 {
		return idx, model.NewMissingColumnError(columnUser)
	}
	if idx.message < 0 {
		return idx, model.NewMissingColumnError(columnMessage)
	}
	return idx, nil
}

// field は行のi番目のフィールドを返す。行が短い場合は空文字列を返す。
func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
