package employees

// DB行に対応（スキャン用）
type employeeRow struct {
	EmployeeID   uint64
	EmployeeCode string
	Name         string
	Email        string
	TeamID       string
}

// Service ↔ Store で使うモデル（必要最小限）
type Employee struct {
	EmployeeID   uint64
	EmployeeCode string
	Name         string
	Email        string
	TeamID       string
}

func (r employeeRow) toModel() Employee {
	return Employee(r)
}

func (e Employee) toDTO() EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:   e.EmployeeID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Email:        e.Email,
		TeamID:       e.TeamID,
	}
}
