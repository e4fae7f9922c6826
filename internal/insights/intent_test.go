package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCanonicalPhrases(t *testing.T) {
	cases := []struct {
		question string
		want     IntentKind
	}{
		{"who was absent the most this month?", IntentMostAbsentThisMonth},
		{"WHO WAS ABSENT THE MOST THIS MONTH?", IntentMostAbsentThisMonth},
		{"  who was absent the most this month?  ", IntentMostAbsentThisMonth},
		{"how many wfh days last week?", IntentWFHLastWeek},
		{"How Many WFH Days Last Week?", IntentWFHLastWeek},
	}
	for _, tc := range cases {
		got := Classify(tc.question)
		assert.Equal(t, tc.want, got.Kind, "question=%q", tc.question)
	}
}

func TestClassifyMonthSubstring(t *testing.T) {
	got := Classify("show me absences for September")
	assert.Equal(t, IntentAbsencesForMonth, got.Kind)
	assert.Equal(t, time.September, got.Month)

	// 部分一致で良い（トークン一致ではない）
	got = Classify("September options please")
	assert.Equal(t, IntentAbsencesForMonth, got.Kind)
	assert.Equal(t, time.September, got.Month)
}

func TestClassifyMonthTakesPrecedenceOverPhrases(t *testing.T) {
	got := Classify("how many wfh days last week in September?")
	assert.Equal(t, IntentAbsencesForMonth, got.Kind)
	assert.Equal(t, time.September, got.Month)
}

func TestClassifyGenericFallback(t *testing.T) {
	got := Classify("does anyone ever show up on time?")
	assert.Equal(t, IntentGeneric, got.Kind)
	assert.Equal(t, "does anyone ever show up on time?", got.Raw)
}

func TestClassifyDeterministic(t *testing.T) {
	q := "random question about nothing"
	first := Classify(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(q))
	}
}

func TestClassifyFirstMonthMatchWins(t *testing.T) {
	// 複数の月名を含む場合は語彙順（1月→12月）の先勝ち
	got := Classify("compare march and january absences")
	assert.Equal(t, IntentAbsencesForMonth, got.Kind)
	assert.Equal(t, time.January, got.Month)
}
