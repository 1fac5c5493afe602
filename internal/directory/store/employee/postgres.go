package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"staffdir/internal/directory/models"
	"staffdir/pkg/platform/sentinel"
)

// PostgresStore persists employees in PostgreSQL. Code and email uniqueness
// are enforced by UNIQUE constraints so concurrent writers racing on one key
// cannot both succeed; the branch_id foreign key keeps references valid.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const employeeColumns = `id, employee_code, first_name, last_name, email, phone_number,
	hire_date, position, address, branch_id, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, e *models.Employee) error {
	query := `
		INSERT INTO employees (id, employee_code, first_name, last_name, email, phone_number,
			hire_date, position, address, branch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.EmployeeCode, e.FirstName, e.LastName, nullable(e.Email), e.PhoneNumber,
		e.HireDate, nullable(e.Position), nullable(e.Address), e.BranchID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("employee code %q or email %q: %w", e.EmployeeCode, e.Email, sentinel.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("branch %s: %w", e.BranchID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, e *models.Employee) error {
	query := `
		UPDATE employees
		SET employee_code = $2, first_name = $3, last_name = $4, email = $5, phone_number = $6,
			hire_date = $7, position = $8, address = $9, branch_id = $10, updated_at = $11
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		e.ID, e.EmployeeCode, e.FirstName, e.LastName, nullable(e.Email), e.PhoneNumber,
		e.HireDate, nullable(e.Position), nullable(e.Address), e.BranchID, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("employee code %q or email %q: %w", e.EmployeeCode, e.Email, sentinel.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("branch %s: %w", e.BranchID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("update employee: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update employee rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete employee rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find employee by id: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) FindByCode(ctx context.Context, code string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`
	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find employee by code: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) FindByBranchID(ctx context.Context, branchID uuid.UUID) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE branch_id = $1 ORDER BY employee_code`
	return s.queryEmployees(ctx, query, branchID)
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY employee_code`
	return s.queryEmployees(ctx, query)
}

func (s *PostgresStore) SearchByFirstName(ctx context.Context, name string) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE first_name ILIKE '%' || $1 || '%' ORDER BY employee_code`
	return s.queryEmployees(ctx, query, name)
}

func (s *PostgresStore) SearchByPosition(ctx context.Context, position string) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE position ILIKE '%' || $1 || '%' ORDER BY employee_code`
	return s.queryEmployees(ctx, query, position)
}

func (s *PostgresStore) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE employee_code = $1)`, code)
}

func (s *PostgresStore) ExistsByCodeExcludingID(ctx context.Context, code string, id uuid.UUID) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE employee_code = $1 AND id <> $2)`, code, id)
}

func (s *PostgresStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1)`, email)
}

func (s *PostgresStore) ExistsByEmailExcludingID(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1 AND id <> $2)`, email, id)
}

func (s *PostgresStore) CountByBranchID(ctx context.Context, branchID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE branch_id = $1`, branchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count employees by branch: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("employee exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) queryEmployees(ctx context.Context, query string, args ...any) ([]*models.Employee, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var out []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*models.Employee, error) {
	var e models.Employee
	var email, position, address sql.NullString
	err := row.Scan(&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &email, &e.PhoneNumber,
		&e.HireDate, &position, &address, &e.BranchID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Email = email.String
	e.Position = position.String
	e.Address = address.String
	return &e, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
