package insights

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"kintai-backend/internal/attendance"
)

// 失敗時の応答文字列（会話面の契約。必ず何かしらのテキストを返す）
const (
	MsgCannotProcess  = "Error processing your request. Please try again with a different phrasing."
	MsgNoAbsences     = "No absences recorded this month"
	genericPromptHead = "Answer this question about attendance: "
)

// RecordStore: resolver が必要とする読み取り面だけ（実体は attendance.Store）
type RecordStore interface {
	ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]attendance.Record, error)
	ListByStatusAndDateRange(ctx context.Context, status attendance.Status, start, end time.Time) ([]attendance.Record, error)
	RankAbsences(ctx context.Context, start, end time.Time, limit int) ([]attendance.AbsenceRank, error)
}

// Completer: 生成AIバックエンド。error を返さない（失敗は文字列に畳まれている）
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

type Service struct {
	store RecordStore
	ai    Completer
	now   func() time.Time
}

func NewService(store RecordStore, ai Completer) *Service {
	return &Service{store: store, ai: ai, now: time.Now}
}

// AnswerQuestion: 分類 → 決定的ハンドラ or AI。常にテキストを返す。
// 決定的に答えられる質問はAIを経由せず即答する（遅延と障害面を増やさないため）。
func (s *Service) AnswerQuestion(ctx context.Context, question string) string {
	intent := Classify(question)

	switch intent.Kind {
	case IntentAbsencesForMonth:
		return s.absencesForMonth(ctx, intent.Month)
	case IntentMostAbsentThisMonth:
		return s.mostAbsentThisMonth(ctx)
	case IntentWFHLastWeek:
		return s.wfhLastWeek(ctx)
	default:
		return s.ai.Complete(ctx, genericPromptHead+intent.Raw)
	}
}

func (s *Service) mostAbsentThisMonth(ctx context.Context) string {
	start, end := attendance.MonthWindow(s.now())

	ranks, err := s.store.RankAbsences(ctx, start, end, 1)
	if err != nil {
		log.Printf("[WARN] rank absences failed: %v", err)
		return MsgCannotProcess
	}
	if len(ranks) == 0 || ranks[0].Count == 0 {
		return MsgNoAbsences
	}
	return fmt.Sprintf("%s was absent the most this month with %d absences.",
		ranks[0].EmployeeName, ranks[0].Count)
}

func (s *Service) wfhLastWeek(ctx context.Context) string {
	start, end := attendance.TrailingWeek(s.now())

	recs, err := s.store.ListByDateRange(ctx, start, end)
	if err != nil {
		log.Printf("[WARN] list by range failed: %v", err)
		return MsgCannotProcess
	}
	count := attendance.CountByStatus(recs)[attendance.StatusWFH]
	return fmt.Sprintf("There were %d WFH days last week.", count)
}

func (s *Service) absencesForMonth(ctx context.Context, month time.Month) string {
	name := monthName(month)
	start, end := attendance.NamedMonthWindow(month, s.now())

	recs, err := s.store.ListByStatusAndDateRange(ctx, attendance.StatusAbsent, start, end)
	if err != nil {
		log.Printf("[WARN] list absences for %s failed: %v", name, err)
		return fmt.Sprintf("Could not process request for %s. Please check the month name.", name)
	}
	if len(recs) == 0 {
		return fmt.Sprintf("No absences recorded in %s.", name)
	}

	// 社員別に集計（順序はランキングと同じ規則で固定）
	var b strings.Builder
	fmt.Fprintf(&b, "Absences in %s:\n", name)
	for _, rank := range attendance.RankMostAbsent(recs, 0) {
		fmt.Fprintf(&b, "- %s: %d days\n", rank.EmployeeName, rank.Count)
	}
	return b.String()
}

// DailySummary: 1日分のステータス件数をプロンプトに埋めてAIに要約させる。
// こちらは決定的フォールバックを持たない（常に外部呼び出し）。
// store 障害だけは error として上に返す。
func (s *Service) DailySummary(ctx context.Context, date time.Time) (string, error) {
	recs, err := s.store.ListByDate(ctx, date)
	if err != nil {
		return "", err
	}

	stats := attendance.CountByStatus(recs)
	prompt := fmt.Sprintf(
		"Generate a natural language summary of daily attendance for %s. "+
			"Statistics: Present - %d, WFH - %d, Absent - %d. "+
			"Highlight any notable patterns.",
		date.Format(attendance.DateLayout),
		stats[attendance.StatusPresent],
		stats[attendance.StatusWFH],
		stats[attendance.StatusAbsent],
	)
	return s.ai.Complete(ctx, prompt), nil
}
