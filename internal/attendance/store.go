package attendance

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

const selectRecord = `
	SELECT a.attendance_id, a.employee_id, e.name, e.team_id,
	       DATE_FORMAT(a.work_date, '%Y-%m-%d') AS work_date, a.status
	FROM attendance_records a
	JOIN employees e ON e.employee_id = a.employee_id
`

// Upsert: (employee_id, work_date) の UNIQUE キーでINSERTまたはUPDATE。
// 同じ日の二重打刻は上書き（last-write-wins）。
// 返り値: 確定行、created=true（新規）/false（更新）
func (s *Store) Upsert(ctx context.Context, employeeID uint64, workDate time.Time, status Status) (Record, bool, error) {
	// INSERT ... ON DUPLICATE KEY UPDATE
	// - 新規: RowsAffected = 1
	// - 既存更新: RowsAffected = 2
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO attendance_records (employee_id, work_date, status)
	VALUES (?, ?, ?)
	ON DUPLICATE KEY UPDATE
	status = VALUES(status)`,
		employeeID, workDate.Format(DateLayout), string(status))
	if err != nil {
		return Record{}, false, err
	}
	aff, _ := res.RowsAffected()
	created := (aff == 1)

	// 最終行を取得（UNIQUEキーで）
	row := s.db.QueryRowContext(ctx, selectRecord+`
	WHERE a.employee_id = ? AND a.work_date = ?`,
		employeeID, workDate.Format(DateLayout))

	var r recordRow
	if err := row.Scan(&r.AttendanceID, &r.EmployeeID, &r.EmployeeName, &r.TeamID, &r.WorkDate, &r.Status); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, created, ErrInternal("inserted but not found")
		}
		return Record{}, created, err
	}
	return r.toModel(), created, nil
}

func (s *Store) Get(ctx context.Context, id uint64) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+`
	WHERE a.attendance_id = ?`, id)

	var r recordRow
	if err := row.Scan(&r.AttendanceID, &r.EmployeeID, &r.EmployeeName, &r.TeamID, &r.WorkDate, &r.Status); err != nil {
		return Record{}, err
	}
	return r.toModel(), nil
}

// Replace: idで1件を置き換え（部分更新はしない）
func (s *Store) Replace(ctx context.Context, id uint64, employeeID uint64, workDate time.Time, status Status) error {
	_, err := s.db.ExecContext(ctx, `
	UPDATE attendance_records
	SET employee_id = ?, work_date = ?, status = ?
	WHERE attendance_id = ?`,
		employeeID, workDate.Format(DateLayout), string(status), id)
	return err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID uint64) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+`
	WHERE a.employee_id = ?
	ORDER BY a.work_date ASC, a.attendance_id ASC`, employeeID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func (s *Store) ListByDate(ctx context.Context, date time.Time) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+`
	WHERE a.work_date = ?
	ORDER BY a.attendance_id ASC`, date.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func (s *Store) ListByDateRange(ctx context.Context, start, end time.Time) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+`
	WHERE a.work_date BETWEEN ? AND ?
	ORDER BY a.work_date ASC, a.attendance_id ASC`,
		start.Format(DateLayout), end.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func (s *Store) ListByStatusAndDateRange(ctx context.Context, status Status, start, end time.Time) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+`
	WHERE a.status = ? AND a.work_date BETWEEN ? AND ?
	ORDER BY a.work_date ASC, a.attendance_id ASC`,
		string(status), start.Format(DateLayout), end.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// RankAbsences: 期間の欠勤数を社員別合計（TOP N）。
// 同数は employee_id 昇順で順序を固定する。
func (s *Store) RankAbsences(ctx context.Context, start, end time.Time, limit int) ([]AbsenceRank, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT a.employee_id, e.name, COUNT(*) AS cnt
	FROM attendance_records a
	JOIN employees e ON e.employee_id = a.employee_id
	WHERE a.status = ? AND a.work_date BETWEEN ? AND ?
	GROUP BY a.employee_id, e.name
	ORDER BY cnt DESC, a.employee_id ASC
	LIMIT ?`,
		string(StatusAbsent), start.Format(DateLayout), end.Format(DateLayout), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AbsenceRank
	for rows.Next() {
		var row AbsenceRank
		if err := rows.Scan(&row.EmployeeID, &row.EmployeeName, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ===== helpers =====

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r recordRow
		if err := rows.Scan(&r.AttendanceID, &r.EmployeeID, &r.EmployeeName, &r.TeamID, &r.WorkDate, &r.Status); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
