package insights

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// 質問の分類結果。学習器ではなく固定パターン照合（意図的に単純にしてある）
type IntentKind int

const (
	IntentGeneric IntentKind = iota
	IntentMostAbsentThisMonth
	IntentWFHLastWeek
	IntentAbsencesForMonth
)

type Intent struct {
	Kind  IntentKind
	Month time.Month // IntentAbsencesForMonth のときだけ有効
	Raw   string     // 元の質問文（Generic でそのままAIに渡す）
}

const (
	phraseMostAbsent = "who was absent the most this month?"
	phraseWFHWeek    = "how many wfh days last week?"
)

var monthNames = [...]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var foldCaser = cases.Fold()

// Classify: 月名の部分一致 → 定型文の完全一致 → Generic の順。
// 月名が先なのは仕様（"wfh days last week in september" は月次レポートになる）。
// 失敗しない全域関数。
func Classify(question string) Intent {
	normalized := foldCaser.String(strings.TrimSpace(question))

	for i, name := range monthNames {
		if strings.Contains(normalized, name) {
			return Intent{
				Kind:  IntentAbsencesForMonth,
				Month: time.Month(i + 1),
				Raw:   question,
			}
		}
	}

	switch normalized {
	case phraseMostAbsent:
		return Intent{Kind: IntentMostAbsentThisMonth, Raw: question}
	case phraseWFHWeek:
		return Intent{Kind: IntentWFHLastWeek, Raw: question}
	}

	return Intent{Kind: IntentGeneric, Raw: question}
}

// 応答文で使う小文字の月名（分類と同じ語彙）
func monthName(m time.Month) string {
	return monthNames[int(m)-1]
}
