// Package week は木曜日基準の月内週番号の解決を提供する。
//
// 月Mの第1週は、その月の最初の木曜日を含む週の月曜日に始まり、
// 翌月の第1週の開始日の直前まで続く。このため月初の数日が前月の最終週に、
// 月末の数日が翌月の第1週に属することがある。
package week

import (
	"fmt"
	"time"

	"github.com/hitoshi/chatcount/internal/model"
)

// Label は「M月W週目」の週ラベルを表す。
type Label struct {
	Month int // 1〜12
	Week  int // 1始まり
}

// String はロケール固有の週ラベル文字列を返す（例: "4월 1주차"）。
func (l Label) String() string {
	return fmt.Sprintf("%d월 %d주차", l.Month, l.Week)
}

// Before はチャート列の並び替えに使う時系列順を返す。
func (l Label) Before(other Label) bool {
	if l.Month != other.Month {
		return l.Month < other.Month
	}
	return l.Week < other.Week
}

// Resolver は対象年1年分の暦日から週ラベルへの写像を保持する。
// 対象年の外の日付は解決できない。
type Resolver struct {
	year       int
	weekStarts [12]time.Time // weekStarts[m-1] = 月mの第1週の月曜日
}

// NewResolver は対象年のResolverを生成する。
func NewResolver(year int) *Resolver {
	r := &Resolver{year: year}
	for m := 1; m <= 12; m++ {
		r.weekStarts[m-1] = weekOneStart(year, time.Month(m))
	}
	return r
}

// Year はこのResolverの対象年を返す。
func (r *Resolver) Year() int {
	return r.year
}

// Resolve は日付dの週ラベルを返す。対象年の外の日付、および1月の第1週の
// 開始日より前の日付はfalseを返す。12月の区間は対象年の末日まで延長する
// （翌年1月の第1週が12月末に食い込む年でも、対象年内の日付は必ず解決する）。
func (r *Resolver) Resolve(d time.Time) (Label, bool) {
	if d.Year() != r.year {
		return Label{}, false
	}
	d = model.DateOnly(d)

	// dを含む区間の月を探す: weekStarts[m] <= d < weekStarts[m+1]
	month := -1
	for m := 11; m >= 0; m-- {
		if !d.Before(r.weekStarts[m]) {
			month = m
			break
		}
	}
	if month < 0 {
		// 対象年の元日が1月第1週の開始日より前に来る年だけ起こりうる
		return Label{}, false
	}

	days := int(d.Sub(r.weekStarts[month]).Hours() / 24)
	return Label{
		Month: month + 1,
		Week:  days/7 + 1,
	}, true
}

// weekOneStart は指定月の第1週の開始日（最初の木曜日を含む週の月曜日）を返す。
func weekOneStart(year int, month time.Month) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Thursday {
		d = d.AddDate(0, 0, 1)
	}
	// 木曜日の3日前の月曜日
	return d.AddDate(0, 0, -3)
}
