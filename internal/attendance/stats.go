package attendance

import (
	"sort"
	"time"
)

// 集計はすべて純関数。期間の絞り込みは呼び出し側（store）が済ませている前提。

// CountByStatus: ステータス別の件数。全レコードがちょうど1つのバケツに入る
func CountByStatus(records []Record) map[Status]int {
	out := make(map[Status]int, 3)
	for _, r := range records {
		out[r.Status]++
	}
	return out
}

// WFHByTeam: チーム別のWFH件数。WFHゼロのチームはキー自体を持たない
func WFHByTeam(records []Record) map[string]int {
	out := make(map[string]int)
	for _, r := range records {
		if r.Status == StatusWFH {
			out[r.TeamID]++
		}
	}
	return out
}

// RankMostAbsent: 欠勤数の多い順。同数は employee_id 昇順で固定
// （storeの集計クエリと同じ順序規則）。limit <= 0 なら全件。
// 欠勤ゼロなら空スライス。呼び出し側は「欠勤なし」として扱い、
// ランキング成功として扱ってはならない。
func RankMostAbsent(records []Record, limit int) []AbsenceRank {
	counts := make(map[uint64]*AbsenceRank)
	var order []uint64
	for _, r := range records {
		if r.Status != StatusAbsent {
			continue
		}
		if rank, ok := counts[r.EmployeeID]; ok {
			rank.Count++
			continue
		}
		counts[r.EmployeeID] = &AbsenceRank{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			Count:        1,
		}
		order = append(order, r.EmployeeID)
	}

	out := make([]AbsenceRank, 0, len(order))
	for _, id := range order {
		out = append(out, *counts[id])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ===== 期間ヘルパー =====

// MonthWindow: ref の属する暦月（1日〜末日、両端含む）
func MonthWindow(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// NamedMonthWindow: ref の年における指定月（1日〜末日）
func NamedMonthWindow(month time.Month, ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// TrailingWeek: ref-6日 〜 ref（両端含む、7日間）
func TrailingWeek(ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -6), day
}
