package report

import (
	"sort"
	"strconv"

	"github.com/hitoshi/chatcount/internal/model"
)

// leaderboardSize は月間リーダーボードの最大表示人数。
const leaderboardSize = 3

// LeaderboardEntry は月間リーダーボードの1件を表す。
type LeaderboardEntry struct {
	User     string
	MonthSum int
}

// MonthlyTop は日次レポートから指定月の参加日数上位を返す。
// 月は1〜12で指定する。該当する日付カラムが1つもない場合はエラーを返す
// （レポート自体は壊れないため、呼び出し元は再照会できる）。
// 同値はレポートの行順（ユーザー名昇順）を保持し、上位3名まで返す。
// 人数が足りない場合は埋め合わせをしない。
func MonthlyTop(rep *DailyReport, month int) ([]LeaderboardEntry, error) {
	if month < 1 || month > 12 {
		return nil, model.NewInvalidMonthError(strconv.Itoa(month))
	}

	// 指定月の日付カラムを選ぶ
	var cols []int
	for i, d := range rep.Dates {
		if int(d.Month()) == month {
			cols = append(cols, i)
		}
	}
	if len(cols) == 0 {
		return nil, model.NewNoMonthColumnsError(month)
	}

	entries := make([]LeaderboardEntry, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		sum := 0
		for _, c := range cols {
			sum += row.Counts[c]
		}
		entries = append(entries, LeaderboardEntry{User: row.User, MonthSum: sum})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].MonthSum > entries[j].MonthSum })

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries, nil
}
