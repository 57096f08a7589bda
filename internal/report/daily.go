// Package report はフィルタ済みチャットログからの参加集計レポート生成を提供する。
// 日次・週次のピボット集計、密ランク付け、月間リーダーボード照会を含む。
package report

import (
	"sort"
	"time"

	"github.com/hitoshi/chatcount/internal/model"
)

// Row はピボット行列の1行を表す。Countsの並びはレポートのカラム順に対応する。
type Row struct {
	User   string
	Counts []int
	Total  int
}

// DailyReport はユーザー×日付の参加行列を表す。
// カラムは日付昇順、行はユーザー名昇順で確定する。
type DailyReport struct {
	Dates []time.Time
	Rows  []Row
}

// BuildDaily はフィルタ済みレコードから日次レポートを構築する。
// 同一ユーザーが同じ日に複数回発言していても1日1回として数える。
// 日付不明の行、およびcutoffより後の行は集計に含めない。
// セル値は在/不在の0/1、Totalは行の合計（= 参加日数）。
func BuildDaily(records []model.Record, cutoff time.Time) *DailyReport {
	cutoff = model.DateOnly(cutoff)

	// (user, date)で重複排除する
	presence := make(map[string]map[time.Time]bool)
	dateSet := make(map[time.Time]bool)
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
		dateSet[rec.Date] = true
	}

	// カラム順は明示的にソートして確定する（マップの列挙順に依存しない）
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	users := make([]string, 0, len(presence))
	for u := range presence {
		users = append(users, u)
	}
	sort.Strings(users)

	rows := make([]Row, 0, len(users))
	for _, u := range users {
		counts := make([]int, len(dates))
		total := 0
		for i, d := range dates {
			if presence[u][d] {
				counts[i] = 1
				total++
			}
		}
		rows = append(rows, Row{User: u, Counts: counts, Total: total})
	}

	return &DailyReport{Dates: dates, Rows: rows}
}

// StartDate は集計期間の開始日（最古の日付カラム）を返す。
// レポートが空の場合はゼロ値を返す。
func (r *DailyReport) StartDate() time.Time {
	if len(r.Dates) == 0 {
		return time.Time{}
	}
	return r.Dates[0]
}
