package attendance

import "fmt"

// 勤怠ステータス（閉集合。これ以外はDBにもAPIにも流さない）
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusWFH     Status = "WFH"
	StatusAbsent  Status = "ABSENT"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPresent, StatusWFH, StatusAbsent:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status: %q", s)
}

// DB行に対応（スキャン用。employees をJOINして名前とチームも持つ）
type recordRow struct {
	AttendanceID uint64
	EmployeeID   uint64
	EmployeeName string
	TeamID       string
	WorkDate     string // DATE → "YYYY-MM-DD"
	Status       string
}

// Service ↔ Store で使うモデル（必要最小限）
type Record struct {
	AttendanceID uint64
	EmployeeID   uint64
	EmployeeName string
	TeamID       string
	WorkDate     string
	Status       Status
}

func (r recordRow) toModel() Record {
	return Record{
		AttendanceID: r.AttendanceID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		TeamID:       r.TeamID,
		WorkDate:     r.WorkDate,
		Status:       Status(r.Status),
	}
}

func (r Record) toDTO() RecordResponse {
	return RecordResponse{
		AttendanceID: r.AttendanceID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		TeamID:       r.TeamID,
		WorkDate:     r.WorkDate,
		Status:       string(r.Status),
	}
}

// 欠勤ランキングの1行（store の集計クエリと stats.RankMostAbsent の両方が返す形）
type AbsenceRank struct {
	EmployeeID   uint64 `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Count        int64  `json:"count"`
}
