package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id, empID uint64, name, team, date string, status Status) Record {
	return Record{
		AttendanceID: id,
		EmployeeID:   empID,
		EmployeeName: name,
		TeamID:       team,
		WorkDate:     date,
		Status:       status,
	}
}

func TestCountByStatusPartitionsAllRecords(t *testing.T) {
	records := []Record{
		rec(1, 1, "A", "t1", "2024-03-01", StatusPresent),
		rec(2, 1, "A", "t1", "2024-03-02", StatusWFH),
		rec(3, 2, "B", "t2", "2024-03-01", StatusAbsent),
		rec(4, 2, "B", "t2", "2024-03-02", StatusAbsent),
		rec(5, 3, "C", "t1", "2024-03-01", StatusWFH),
	}

	counts := CountByStatus(records)

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(records), total, "全レコードがちょうど1つのバケツに入る")
	assert.Equal(t, 1, counts[StatusPresent])
	assert.Equal(t, 2, counts[StatusWFH])
	assert.Equal(t, 2, counts[StatusAbsent])
	// 無いステータスはゼロ値として読める
	assert.Equal(t, 0, counts[Status("OTHER")])
}

func TestCountByStatusEmpty(t *testing.T) {
	counts := CountByStatus(nil)
	assert.Equal(t, 0, counts[StatusWFH])
}

func TestWFHByTeamOmitsZeroTeams(t *testing.T) {
	records := []Record{
		rec(1, 1, "A", "dev", "2024-03-01", StatusWFH),
		rec(2, 2, "B", "dev", "2024-03-01", StatusWFH),
		rec(3, 3, "C", "sales", "2024-03-01", StatusPresent),
		rec(4, 4, "D", "ops", "2024-03-01", StatusWFH),
	}

	trend := WFHByTeam(records)

	assert.Equal(t, map[string]int{"dev": 2, "ops": 1}, trend)
	_, ok := trend["sales"]
	assert.False(t, ok, "WFHゼロのチームはキーを持たない")
}

func TestRankMostAbsentOrderAndTieBreak(t *testing.T) {
	records := []Record{
		rec(1, 2, "B", "t1", "2024-03-01", StatusAbsent),
		rec(2, 1, "A", "t1", "2024-03-01", StatusAbsent),
		rec(3, 1, "A", "t1", "2024-03-02", StatusAbsent),
		rec(4, 3, "C", "t2", "2024-03-03", StatusAbsent),
		rec(5, 3, "C", "t2", "2024-03-04", StatusAbsent),
		rec(6, 4, "D", "t2", "2024-03-01", StatusPresent),
	}

	ranks := RankMostAbsent(records, 0)

	require.Len(t, ranks, 3)
	// 同数(A=2, C=2)は employee_id 昇順
	assert.Equal(t, uint64(1), ranks[0].EmployeeID)
	assert.EqualValues(t, 2, ranks[0].Count)
	assert.Equal(t, uint64(3), ranks[1].EmployeeID)
	assert.EqualValues(t, 2, ranks[1].Count)
	assert.Equal(t, uint64(2), ranks[2].EmployeeID)
	assert.EqualValues(t, 1, ranks[2].Count)
}

func TestRankMostAbsentLimitAndTopEntry(t *testing.T) {
	records := []Record{
		rec(1, 1, "A", "t1", "2024-03-01", StatusAbsent),
		rec(2, 1, "A", "t1", "2024-03-02", StatusAbsent),
		rec(3, 2, "B", "t1", "2024-03-01", StatusPresent),
	}

	ranks := RankMostAbsent(records, 1)

	require.Len(t, ranks, 1)
	assert.Equal(t, "A", ranks[0].EmployeeName)
	assert.EqualValues(t, 2, ranks[0].Count)
}

func TestRankMostAbsentNoAbsences(t *testing.T) {
	records := []Record{
		rec(1, 1, "A", "t1", "2024-03-01", StatusPresent),
		rec(2, 2, "B", "t1", "2024-03-01", StatusWFH),
	}
	assert.Empty(t, RankMostAbsent(records, 5))
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(time.Date(2024, 2, 15, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-01", start.Format(DateLayout))
	assert.Equal(t, "2024-02-29", end.Format(DateLayout), "うるう年の末日")

	start, end = MonthWindow(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-12-01", start.Format(DateLayout))
	assert.Equal(t, "2025-12-31", end.Format(DateLayout))
}

func TestNamedMonthWindowUsesReferenceYear(t *testing.T) {
	ref := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	start, end := NamedMonthWindow(time.September, ref)
	assert.Equal(t, "2024-09-01", start.Format(DateLayout))
	assert.Equal(t, "2024-09-30", end.Format(DateLayout))
}

func TestTrailingWeekInclusiveSevenDays(t *testing.T) {
	ref := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	start, end := TrailingWeek(ref)
	assert.Equal(t, "2024-03-04", start.Format(DateLayout))
	assert.Equal(t, "2024-03-10", end.Format(DateLayout))
	assert.EqualValues(t, 6, end.Sub(start)/(24*time.Hour))
}
