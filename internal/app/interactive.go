package app

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/hitoshi/chatcount/internal/model"
	"github.com/hitoshi/chatcount/internal/report"
)

// errQuit は月次照会ループの終了を示す。
var errQuit = errors.New("quit")

// parseKeywords はカンマ区切りの入力をキーワードの列に分解する。
// 前後の空白は除去し、空要素はそのまま残す（バリデーションはフィルタ側で行う）。
func parseKeywords(input string) []string {
	parts := strings.Split(input, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		keywords = append(keywords, strings.TrimSpace(p))
	}
	return keywords
}

// parseMonthInput は月次照会の入力を解析する。
// "q"はループ終了、それ以外は1〜12の整数として解釈する。
func parseMonthInput(input string) (int, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "q") {
		return 0, errQuit
	}

	month, err := strconv.Atoi(input)
	if err != nil {
		return 0, model.NewInvalidMonthError(input)
	}
	if month < 1 || month > 12 {
		return 0, model.NewInvalidMonthError(input)
	}
	return month, nil
}

// promptKeywords はキーワードのカンマ区切り入力を促す。
func promptKeywords() ([]string, error) {
	prompt := promptui.Prompt{
		Label: "집계할 키워드 (쉼표로 구분)",
		Validate: func(input string) error {
			for _, kw := range parseKeywords(input) {
				if kw != "" {
					return nil
				}
			}
			return errors.New("키워드를 1개 이상 입력해 주세요")
		},
	}

	input, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("keyword prompt failed: %w", err)
	}
	return parseKeywords(input), nil
}

// runMonthLoop は月次リーダーボードの対話ループを実行する。
// 無効な入力はエラーを表示して再入力を促し、"q"で終了する。
func runMonthLoop(w io.Writer, daily *report.DailyReport) error {
	for {
		prompt := promptui.Prompt{
			Label: "월 (1-12, q로 종료)",
		}
		input, err := prompt.Run()
		if err != nil {
			// Ctrl+C等の中断はループ終了として扱う
			return nil
		}

		month, err := parseMonthInput(input)
		if err == errQuit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(w, err.Error())
			continue
		}

		entries, err := report.MonthlyTop(daily, month)
		if err != nil {
			fmt.Fprintln(w, err.Error())
			continue
		}

		printLeaderboard(w, month, entries)
	}
}

// printLeaderboard は月次リーダーボードを出力する。
func printLeaderboard(w io.Writer, month int, entries []report.LeaderboardEntry) {
	fmt.Fprintf(w, "🏆 %d월 TOP %d 🏆\n", month, len(entries))
	for i, e := range entries {
		fmt.Fprintf(w, "%d위 %s (%d회)\n", i+1, report.DisplayName(e.User), e.MonthSum)
	}
}
