package attendance

const (
	DateLayout = "2006-01-02"
)

type CreateRecordRequest struct {
	EmployeeID uint64 `json:"employee_id" binding:"required"`
	WorkDate   string `json:"date" binding:"required"` // "YYYY-MM-DD"
	Status     string `json:"status" binding:"required"`
}

type UpdateRecordRequest struct {
	EmployeeID uint64 `json:"employee_id" binding:"required"`
	WorkDate   string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

type RecordResponse struct {
	AttendanceID uint64 `json:"attendance_id"`
	EmployeeID   uint64 `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	TeamID       string `json:"team_id"`
	WorkDate     string `json:"date"`
	Status       string `json:"status"`
}

// GET /attendance/trends の応答（present_count と team別WFH件数）
type TrendsResponse struct {
	TotalEntries int            `json:"total_entries"`
	PresentCount int            `json:"present_count"`
	WFHTrend     map[string]int `json:"wfh_trend"`
}
