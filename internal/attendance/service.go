package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	mysql "github.com/go-sql-driver/mysql"

	platformdb "kintai-backend/internal/platform/db"
)

// ===== Error model (employees/insights と同型) =====
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

// POST /attendance
func (s *Service) AddEntry(ctx context.Context, in CreateRecordRequest) (RecordResponse, bool, error) {
	status, err := ParseStatus(in.Status)
	if err != nil {
		return RecordResponse{}, false, ErrInvalid("status must be PRESENT, WFH or ABSENT")
	}
	workDate, err := time.ParseInLocation(DateLayout, in.WorkDate, time.UTC)
	if err != nil {
		return RecordResponse{}, false, ErrInvalid("date must be YYYY-MM-DD")
	}

	rec, created, err := s.store.Upsert(ctx, in.EmployeeID, workDate, status)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1452 { // foreign key constraint fails
			return RecordResponse{}, false, ErrNotFound("employee not found")
		}
		return RecordResponse{}, false, err
	}
	return rec.toDTO(), created, nil
}

// GET /attendance/employee/:employee_id
func (s *Service) GetByEmployee(ctx context.Context, employeeID uint64) ([]RecordResponse, error) {
	recs, err := s.store.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]RecordResponse, 0, len(recs))
	for i := 0; i < len(recs); i++ {
		out = append(out, recs[i].toDTO())
	}
	return out, nil
}

// GET /attendance/trends
func (s *Service) Trends(ctx context.Context, startStr, endStr string) (TrendsResponse, error) {
	start, err := time.ParseInLocation(DateLayout, startStr, time.UTC)
	if err != nil {
		return TrendsResponse{}, ErrInvalid("start must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(DateLayout, endStr, time.UTC)
	if err != nil {
		return TrendsResponse{}, ErrInvalid("end must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return TrendsResponse{}, ErrInvalid("end must be >= start")
	}

	recs, err := s.store.ListByDateRange(ctx, start, end)
	if err != nil {
		return TrendsResponse{}, err
	}

	byStatus := CountByStatus(recs)
	return TrendsResponse{
		TotalEntries: len(recs),
		PresentCount: byStatus[StatusPresent],
		WFHTrend:     WFHByTeam(recs),
	}, nil
}

// PUT /attendance/:id
func (s *Service) UpdateEntry(ctx context.Context, id uint64, in UpdateRecordRequest) (RecordResponse, error) {
	status, err := ParseStatus(in.Status)
	if err != nil {
		return RecordResponse{}, ErrInvalid("status must be PRESENT, WFH or ABSENT")
	}
	workDate, err := time.ParseInLocation(DateLayout, in.WorkDate, time.UTC)
	if err != nil {
		return RecordResponse{}, ErrInvalid("date must be YYYY-MM-DD")
	}

	// 存在確認→置き換えを1Txで行う
	err = platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		st := NewStore(tx)
		if _, err := st.Get(ctx, id); err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound("record not found")
			}
			return err
		}
		if err := st.Replace(ctx, id, in.EmployeeID, workDate, status); err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) {
				switch me.Number {
				case 1452:
					return ErrNotFound("employee not found")
				case 1062: // 同じ社員・同じ日の別レコードと衝突
					return ErrConflict("another record exists for that employee and date")
				}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return RecordResponse{}, err
	}

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return RecordResponse{}, err
	}
	return rec.toDTO(), nil
}
