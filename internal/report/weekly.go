package report

import (
	"sort"
	"time"

	"github.com/hitoshi/chatcount/internal/model"
	"github.com/hitoshi/chatcount/internal/week"
)

// WeeklyReport はユーザー×週ラベルの参加行列を表す。
// カラムは週ラベルの時系列順、行はユーザー名昇順で確定する。
type WeeklyReport struct {
	Weeks []week.Label
	Rows  []Row
}

// BuildWeekly はフィルタ済みレコードから週次レポートを構築する。
// まず(user, date)で重複排除してから日付を週ラベルに解決するため、
// セル値はその週の参加日数（0〜7）になる。週ラベルに解決できない行
// （対象年の外の日付）は集計前に除外する。
func BuildWeekly(records []model.Record, cutoff time.Time, resolver *week.Resolver) *WeeklyReport {
	cutoff = model.DateOnly(cutoff)

	// (user, date)で重複排除する
	presence := make(map[string]map[time.Time]bool)
	for _, rec := range records {
		if !rec.HasDate() || rec.User == "" {
			continue
		}
		if rec.Date.After(cutoff) {
			continue
		}
		if presence[rec.User] == nil {
			presence[rec.User] = make(map[time.Time]bool)
		}
		presence[rec.User][rec.Date] = true
	}

	// 参加日を週ラベルに畳み込む
	weekCounts := make(map[string]map[week.Label]int)
	weekSet := make(map[week.Label]bool)
	for u, dates := range presence {
		for d := range dates {
			label, ok := resolver.Resolve(d)
			if !ok {
				continue
			}
			if weekCounts[u] == nil {
				weekCounts[u] = make(map[week.Label]int)
			}
			weekCounts[u][label]++
			weekSet[label] = true
		}
	}

	weeks := make([]week.Label, 0, len(weekSet))
	for l := range weekSet {
		weeks = append(weeks, l)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	users := make([]string, 0, len(weekCounts))
	for u := range weekCounts {
		users = append(users, u)
	}
	sort.Strings(users)

	rows := make([]Row, 0, len(users))
	for _, u := range users {
		counts := make([]int, len(weeks))
		total := 0
		for i, l := range weeks {
			counts[i] = weekCounts[u][l]
			total += counts[i]
		}
		rows = append(rows, Row{User: u, Counts: counts, Total: total})
	}

	return &WeeklyReport{Weeks: weeks, Rows: rows}
}
