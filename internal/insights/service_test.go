package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kintai-backend/internal/attendance"
)

// ===== fakes =====

type fakeStore struct {
	byDate      []attendance.Record
	byRange     []attendance.Record
	byStatus    []attendance.Record
	ranks       []attendance.AbsenceRank
	err         error
	gotStart    time.Time
	gotEnd      time.Time
	gotStatus   attendance.Status
	rankedLimit int
}

func (f *fakeStore) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	return f.byDate, f.err
}
func (f *fakeStore) ListByDateRange(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	f.gotStart, f.gotEnd = start, end
	return f.byRange, f.err
}
func (f *fakeStore) ListByStatusAndDateRange(ctx context.Context, status attendance.Status, start, end time.Time) ([]attendance.Record, error) {
	f.gotStatus, f.gotStart, f.gotEnd = status, start, end
	return f.byStatus, f.err
}
func (f *fakeStore) RankAbsences(ctx context.Context, start, end time.Time, limit int) ([]attendance.AbsenceRank, error) {
	f.gotStart, f.gotEnd, f.rankedLimit = start, end, limit
	return f.ranks, f.err
}

type fakeAI struct {
	gotPrompt string
	reply     string
}

func (f *fakeAI) Complete(ctx context.Context, prompt string) string {
	f.gotPrompt = prompt
	return f.reply
}

func newTestService(store *fakeStore, ai *fakeAI, now time.Time) *Service {
	return &Service{store: store, ai: ai, now: func() time.Time { return now }}
}

func rec(empID uint64, name, team, date string, status attendance.Status) attendance.Record {
	return attendance.Record{
		EmployeeID:   empID,
		EmployeeName: name,
		TeamID:       team,
		WorkDate:     date,
		Status:       status,
	}
}

var march2024 = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// ===== most absent this month =====

func TestAnswerMostAbsentThisMonth(t *testing.T) {
	store := &fakeStore{ranks: []attendance.AbsenceRank{{EmployeeID: 1, EmployeeName: "A", Count: 2}}}
	ai := &fakeAI{reply: "should not be called"}
	svc := newTestService(store, ai, march2024)

	got := svc.AnswerQuestion(context.Background(), "who was absent the most this month?")

	assert.Equal(t, "A was absent the most this month with 2 absences.", got)
	assert.Equal(t, "2024-03-01", store.gotStart.Format(attendance.DateLayout))
	assert.Equal(t, "2024-03-31", store.gotEnd.Format(attendance.DateLayout))
	assert.Equal(t, 1, store.rankedLimit)
	assert.Empty(t, ai.gotPrompt, "決定的パスはAIを呼ばない")
}

func TestAnswerMostAbsentNoAbsences(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeAI{}, march2024)
	got := svc.AnswerQuestion(context.Background(), "who was absent the most this month?")
	assert.Equal(t, "No absences recorded this month", got)
}

func TestAnswerMostAbsentZeroCountTreatedAsNone(t *testing.T) {
	store := &fakeStore{ranks: []attendance.AbsenceRank{{EmployeeID: 1, EmployeeName: "A", Count: 0}}}
	svc := newTestService(store, &fakeAI{}, march2024)
	got := svc.AnswerQuestion(context.Background(), "who was absent the most this month?")
	assert.Equal(t, "No absences recorded this month", got)
}

func TestAnswerMostAbsentStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	svc := newTestService(store, &fakeAI{}, march2024)
	got := svc.AnswerQuestion(context.Background(), "who was absent the most this month?")
	assert.Equal(t, MsgCannotProcess, got)
}

// ===== wfh last week =====

func TestAnswerWFHLastWeek(t *testing.T) {
	store := &fakeStore{byRange: []attendance.Record{
		rec(1, "A", "dev", "2024-03-11", attendance.StatusWFH),
		rec(2, "B", "dev", "2024-03-12", attendance.StatusWFH),
		rec(3, "C", "ops", "2024-03-12", attendance.StatusPresent),
	}}
	svc := newTestService(store, &fakeAI{}, march2024)

	got := svc.AnswerQuestion(context.Background(), "how many wfh days last week?")

	assert.Equal(t, "There were 2 WFH days last week.", got)
	assert.Equal(t, "2024-03-09", store.gotStart.Format(attendance.DateLayout))
	assert.Equal(t, "2024-03-15", store.gotEnd.Format(attendance.DateLayout))
}

func TestAnswerWFHLastWeekZero(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeAI{}, march2024)
	got := svc.AnswerQuestion(context.Background(), "how many wfh days last week?")
	assert.Equal(t, "There were 0 WFH days last week.", got)
}

// ===== absences for month =====

func TestAnswerAbsencesForMonth(t *testing.T) {
	store := &fakeStore{byStatus: []attendance.Record{
		rec(1, "A", "dev", "2024-09-02", attendance.StatusAbsent),
		rec(1, "A", "dev", "2024-09-03", attendance.StatusAbsent),
		rec(2, "B", "ops", "2024-09-02", attendance.StatusAbsent),
	}}
	svc := newTestService(store, &fakeAI{}, march2024)

	got := svc.AnswerQuestion(context.Background(), "show absences in September please")

	assert.Equal(t, "Absences in september:\n- A: 2 days\n- B: 1 days\n", got)
	assert.Equal(t, attendance.StatusAbsent, store.gotStatus)
	assert.Equal(t, "2024-09-01", store.gotStart.Format(attendance.DateLayout))
	assert.Equal(t, "2024-09-30", store.gotEnd.Format(attendance.DateLayout))
}

func TestAnswerAbsencesForMonthNone(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeAI{}, march2024)
	got := svc.AnswerQuestion(context.Background(), "anything happen in february?")
	assert.Equal(t, "No absences recorded in february.", got)
}

func TestAnswerAbsencesForMonthStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	svc := newTestService(store, &fakeAI{}, march2024)
	got := svc.AnswerQuestion(context.Background(), "absences in october?")
	assert.Equal(t, "Could not process request for october. Please check the month name.", got)
}

// ===== generic =====

func TestAnswerGenericGoesToAI(t *testing.T) {
	ai := &fakeAI{reply: "Attendance has been stable."}
	svc := newTestService(&fakeStore{}, ai, march2024)

	got := svc.AnswerQuestion(context.Background(), "is attendance getting better?")

	assert.Equal(t, "Attendance has been stable.", got)
	assert.Equal(t, "Answer this question about attendance: is attendance getting better?", ai.gotPrompt)
}

// ===== daily summary =====

func TestDailySummaryBuildsPromptAndReturnsCompletionVerbatim(t *testing.T) {
	store := &fakeStore{byDate: []attendance.Record{
		rec(1, "A", "dev", "2024-03-01", attendance.StatusPresent),
		rec(2, "B", "dev", "2024-03-01", attendance.StatusWFH),
		rec(3, "C", "ops", "2024-03-01", attendance.StatusWFH),
		rec(4, "D", "ops", "2024-03-01", attendance.StatusAbsent),
	}}
	ai := &fakeAI{reply: "Mostly remote today."}
	svc := newTestService(store, ai, march2024)

	got, err := svc.DailySummary(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "Mostly remote today.", got)
	assert.Equal(t,
		"Generate a natural language summary of daily attendance for 2024-03-01. "+
			"Statistics: Present - 1, WFH - 2, Absent - 1. "+
			"Highlight any notable patterns.",
		ai.gotPrompt)
}

func TestDailySummaryStoreFailurePropagates(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	svc := newTestService(store, &fakeAI{}, march2024)

	_, err := svc.DailySummary(context.Background(), march2024)
	require.Error(t, err)
}
