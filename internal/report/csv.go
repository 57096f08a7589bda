package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// isoDate は日付カラムヘッダーのフォーマット。
const isoDate = "2006-01-02"

// WriteCSV は日次レポートをUTF-8のCSVとして書き出す。
// ヘッダーは User, <日付...>, Total、日付カラムはISO形式。
func (r *DailyReport) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create daily report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(r.Dates)+2)
	header = append(header, "User")
	for _, d := range r.Dates {
		header = append(header, d.Format(isoDate))
	}
	header = append(header, "Total")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write daily report header: %w", err)
	}

	for _, row := range r.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.User)
		for _, c := range row.Counts {
			record = append(record, strconv.Itoa(c))
		}
		record = append(record, strconv.Itoa(row.Total))
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write daily report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush daily report: %w", err)
	}
	return nil
}

// WriteCSV はランク付け済み週次レポートをUTF-8のCSVとして書き出す。
// ヘッダーは Rank, User, <週ラベル...>, Total。Rankは装飾済みラベル、
// Userは '/' より前に切り詰めた表示名。
func (r *RankedReport) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create weekly report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(r.Weeks)+3)
	header = append(header, "Rank", "User")
	for _, l := range r.Weeks {
		header = append(header, l.String())
	}
	header = append(header, "Total")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write weekly report header: %w", err)
	}

	for _, row := range r.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.RankLabel, row.User)
		for _, c := range row.Counts {
			record = append(record, strconv.Itoa(c))
		}
		record = append(record, strconv.Itoa(row.Total))
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write weekly report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush weekly report: %w", err)
	}
	return nil
}
