package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hitoshi/chatcount/internal/week"
)

// RankedRow はランク付け済みレポートの1行を表す。
type RankedRow struct {
	Rank      int    // 密ランク（1始まり、同値は同ランク）
	RankLabel string // 表示用ラベル（上位3位は王冠付き、6位以降は "-"）
	User      string // '/'より前に切り詰めた表示名
	Counts    []int
	Total     int
}

// RankedReport はランク昇順に整列した週次レポートを表す。
type RankedReport struct {
	Weeks []week.Label
	Rows  []RankedRow
}

// Rank は週次レポートにTotal降順の密ランクを付け、ランク昇順に整列して返す。
// 同値のTotalは同じランクを共有し、次の異なるTotalはグループの大きさに
// かかわらず直後の整数ランクを取る。同ランク内の行順は入力順を保持する。
func Rank(rep *WeeklyReport) *RankedReport {
	ranks := denseRanks(rep.Rows)

	rows := make([]RankedRow, len(rep.Rows))
	for i, row := range rep.Rows {
		rows[i] = RankedRow{
			Rank:      ranks[i],
			RankLabel: RankLabel(ranks[i]),
			User:      DisplayName(row.User),
			Counts:    row.Counts,
			Total:     row.Total,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })

	return &RankedReport{Weeks: rep.Weeks, Rows: rows}
}

// denseRanks は各行のTotal降順の密ランクを入力順で返す。
func denseRanks(rows []Row) []int {
	// 異なるTotal値を降順に並べ、値→ランクの写像を作る
	seen := make(map[int]bool)
	var totals []int
	for _, row := range rows {
		if !seen[row.Total] {
			seen[row.Total] = true
			totals = append(totals, row.Total)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(totals)))

	rankOf := make(map[int]int, len(totals))
	for i, total := range totals {
		rankOf[total] = i + 1
	}

	ranks := make([]int, len(rows))
	for i, row := range rows {
		ranks[i] = rankOf[row.Total]
	}
	return ranks
}

// RankLabel は数値ランクを表示用ラベルに変換する。
// 1〜3位は王冠の数で装飾し、4〜5位は素の順位、6位以降は "-" を返す。
func RankLabel(rank int) string {
	switch rank {
	case 1:
		return "1위 👑👑👑"
	case 2:
		return "2위 👑👑"
	case 3:
		return "3위 👑"
	case 4, 5:
		return fmt.Sprintf("%d위", rank)
	default:
		return "-"
	}
}

// DisplayName はユーザー識別子を表示名に変換する。
// エクスポートは '/' の後ろに副次識別子を埋め込むため、最初の '/' より
// 前の部分だけを表示する。
func DisplayName(user string) string {
	if i := strings.Index(user, "/"); i >= 0 {
		return user[:i]
	}
	return user
}
