package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	ulid "github.com/oklog/ulid/v2"
)

// ===== Error model (attendance/insights と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, store: NewStore(db)}
}

// POST /employees
func (s *Service) Create(ctx context.Context, in CreateEmployeeRequest) (EmployeeResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.TeamID) == "" {
		return EmployeeResponse{}, ErrInvalid("name, email, team_id are required")
	}

	// 社員コード（UNIQUE。表示・連携用の公開ID）
	code := "EMP-" + ulid.Make().String()

	emp, err := s.store.Insert(ctx, code, in.Name, in.Email, in.TeamID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 { // duplicate key
			return EmployeeResponse{}, ErrConflict("email already exists")
		}
		return EmployeeResponse{}, err
	}
	return emp.toDTO(), nil
}

// GET /employees/:employee_id
func (s *Service) Get(ctx context.Context, id uint64) (EmployeeResponse, error) {
	emp, err := s.store.Get(ctx, id)
	if err == sql.ErrNoRows {
		return EmployeeResponse{}, ErrNotFound("employee not found")
	}
	if err != nil {
		return EmployeeResponse{}, err
	}
	return emp.toDTO(), nil
}

// GET /employees?email=
func (s *Service) FindByEmail(ctx context.Context, email string) (EmployeeResponse, error) {
	if strings.TrimSpace(email) == "" {
		return EmployeeResponse{}, ErrInvalid("email is required")
	}
	emp, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if emp == nil {
		return EmployeeResponse{}, ErrNotFound("employee not found")
	}
	return emp.toDTO(), nil
}

// HEAD /employees?email=
func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, ErrInvalid("email is required")
	}
	return s.store.ExistsByEmail(ctx, email)
}

// PUT /employees/:employee_id
func (s *Service) Update(ctx context.Context, id uint64, in UpdateEmployeeRequest) (EmployeeResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.TeamID) == "" {
		return EmployeeResponse{}, ErrInvalid("name, email, team_id are required")
	}

	// 同値更新で RowsAffected=0 になるため、存在確認してから置き換える
	if _, err := s.store.Get(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return EmployeeResponse{}, ErrNotFound("employee not found")
		}
		return EmployeeResponse{}, err
	}

	if _, err := s.store.Update(ctx, id, in.Name, in.Email, in.TeamID); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return EmployeeResponse{}, ErrConflict("email already exists")
		}
		return EmployeeResponse{}, err
	}

	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return emp.toDTO(), nil
}
