package employees

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

const selectCols = `employee_id, employee_code, name, email, team_id`

// Insert: email は UNIQUE。重複は mysql 1062 で返るので Service 側で CONFLICT に写像する
func (s *Store) Insert(ctx context.Context, code, name, email, teamID string) (Employee, error) {
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO employees (employee_code, name, email, team_id)
	VALUES (?, ?, ?, ?)`, code, name, email, teamID)
	if err != nil {
		return Employee{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Employee{}, err
	}
	return s.Get(ctx, uint64(id))
}

func (s *Store) Get(ctx context.Context, id uint64) (Employee, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT `+selectCols+`
	FROM employees
	WHERE employee_id = ?`, id)

	var r employeeRow
	if err := row.Scan(&r.EmployeeID, &r.EmployeeCode, &r.Name, &r.Email, &r.TeamID); err != nil {
		return Employee{}, err
	}
	return r.toModel(), nil
}

// FindByEmail: 見つからなければ (nil, nil)
func (s *Store) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT `+selectCols+`
	FROM employees
	WHERE email = ?
	LIMIT 1`, email)

	var r employeeRow
	err := row.Scan(&r.EmployeeID, &r.EmployeeCode, &r.Name, &r.Email, &r.TeamID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
	SELECT 1 FROM employees
	WHERE email = ? LIMIT 1`, email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update: 置き換え更新（部分更新はしない）
func (s *Store) Update(ctx context.Context, id uint64, name, email, teamID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
	UPDATE employees
	SET name = ?, email = ?, team_id = ?
	WHERE employee_id = ?`, name, email, teamID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
