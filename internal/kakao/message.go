package kakao

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hitoshi/chatcount/internal/model"
)

// UserTotal は週次レポートの1ユーザー分の累計回数。
type UserTotal struct {
	User  string
	Total int
}

// LoadTotals は週次レポートCSVからユーザーごとの累計回数を読み出す。
// UserとTotalのカラム位置はヘッダー行から解決する。
func LoadTotals(path string) ([]UserTotal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open weekly report: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read weekly report: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("weekly report is empty: %s", path)
	}

	userIdx, totalIdx := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case "User":
			userIdx = i
		case "Total":
			totalIdx = i
		}
	}
	if userIdx < 0 {
		return nil, model.NewMissingColumnError("User")
	}
	if totalIdx < 0 {
		return nil, model.NewMissingColumnError("Total")
	}

	totals := make([]UserTotal, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if userIdx >= len(row) || totalIdx >= len(row) {
			continue
		}
		total, err := strconv.Atoi(row[totalIdx])
		if err != nil {
			continue
		}
		totals = append(totals, UserTotal{User: row[userIdx], Total: total})
	}

	return totals, nil
}

// Level は累計回数を達成レベルに変換する。
func Level(total int) int {
	switch {
	case total <= 10:
		return 1
	case total <= 30:
		return 2
	case total <= 50:
		return 3
	default:
		return 4
	}
}

// ComposeMessage は通知メッセージの本文を組み立てる。
// ユーザーごとに累計回数と達成レベルを1行で並べる。
func ComposeMessage(totals []UserTotal) string {
	var b strings.Builder
	b.WriteString("📢 오늘의 인증 결과 📢\n")
	for _, ut := range totals {
		fmt.Fprintf(&b, "%s - %d회 📚 (레벨 %d)\n", ut.User, ut.Total, Level(ut.Total))
	}
	return strings.TrimRight(b.String(), "\n")
}
