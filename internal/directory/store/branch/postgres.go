package branch

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

// PostgresStore persists branches in PostgreSQL. Uniqueness is enforced by
// the branches_code_key constraint rather than a prior existence check, which
// closes the check-then-act race between concurrent writers; the referencing
// employees foreign key blocks deletes of populated branches.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const branchColumns = `id, code, name, address, phone_number, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, b *models.Branch) error {
	query := `
		INSERT INTO branches (id, code, name, address, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.Code, b.Name, nullable(b.Address), nullable(b.PhoneNumber), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("branch code %q: %w", b.Code, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, b *models.Branch) error {
	query := `
		UPDATE branches
		SET code = $2, name = $3, address = $4, phone_number = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		b.ID, b.Code, b.Name, nullable(b.Address), nullable(b.PhoneNumber), b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("branch code %q: %w", b.Code, sentinel.ErrConflict)
		}
		return fmt.Errorf("update branch: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update branch rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("branch has employees: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("delete branch: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete branch rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	b, err := scanBranch(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find branch by id: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) FindByCode(ctx context.Context, code string) (*models.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE code = $1`
	b, err := scanBranch(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find branch by code: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY code`
	return s.queryBranches(ctx, query)
}

func (s *PostgresStore) SearchByName(ctx context.Context, name string) ([]*models.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE name ILIKE '%' || $1 || '%' ORDER BY code`
	return s.queryBranches(ctx, query, name)
}

func (s *PostgresStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM branches WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("branch exists by id: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM branches WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("branch exists by code: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ExistsByCodeExcludingID(ctx context.Context, code string, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM branches WHERE code = $1 AND id <> $2)`, code, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("branch exists by code excluding id: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) queryBranches(ctx context.Context, query string, args ...any) ([]*models.Branch, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query branches: %w", err)
	}
	defer rows.Close()

	var out []*models.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate branches: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBranch(row rowScanner) (*models.Branch, error) {
	var b models.Branch
	var address, phone sql.NullString
	err := row.Scan(&b.ID, &b.Code, &b.Name, &address, &phone, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Address = address.String
	b.PhoneNumber = phone.String
	return &b, nil
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
