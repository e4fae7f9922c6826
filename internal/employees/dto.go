package employees

type CreateEmployeeRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	TeamID string `json:"team_id" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	TeamID string `json:"team_id" binding:"required"`
}

type EmployeeResponse struct {
	EmployeeID   uint64 `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TeamID       string `json:"team_id"`
}
