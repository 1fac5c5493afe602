//go:build integration

package employee_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"staffdir/internal/directory/models"
	branchstore "staffdir/internal/directory/store/branch"
	"staffdir/internal/directory/store/employee"
	"staffdir/pkg/platform/sentinel"
	"staffdir/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	branches *branchstore.PostgresStore
	store    *employee.PostgresStore

	branchID uuid.UUID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.branches = branchstore.NewPostgres(s.postgres.DB)
	s.store = employee.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.Truncate(ctx))

	now := time.Now().UTC().Truncate(time.Microsecond)
	s.branchID = uuid.New()
	s.Require().NoError(s.branches.Create(ctx, &models.Branch{
		ID:        s.branchID,
		Code:      "HO",
		Name:      "Head Office",
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func (s *PostgresStoreSuite) newTestEmployee(code, email string) *models.Employee {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Employee{
		ID:           uuid.New(),
		EmployeeCode: code,
		FirstName:    "John",
		LastName:     "Doe",
		Email:        email,
		PhoneNumber:  "088812345678",
		HireDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Position:     "Teller",
		BranchID:     s.branchID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	e := s.newTestEmployee("EMP001", "john@example.com")
	s.Require().NoError(s.store.Create(ctx, e))

	loaded, err := s.store.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.Equal("EMP001", loaded.EmployeeCode)
	s.Equal("john@example.com", loaded.Email)
	s.Equal(s.branchID, loaded.BranchID)
	s.WithinDuration(e.HireDate, loaded.HireDate, time.Millisecond)

	byCode, err := s.store.FindByCode(ctx, "EMP001")
	s.Require().NoError(err)
	s.Equal(e.ID, byCode.ID)
}

func (s *PostgresStoreSuite) TestNullableEmailRoundTrip() {
	ctx := context.Background()
	e := s.newTestEmployee("EMP001", "")
	e.Position = ""
	s.Require().NoError(s.store.Create(ctx, e))

	loaded, err := s.store.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.Empty(loaded.Email)
	s.Empty(loaded.Position)

	// Several employees without email must not collide on the unique index.
	s.Require().NoError(s.store.Create(ctx, s.newTestEmployee("EMP002", "")))
}

func (s *PostgresStoreSuite) TestUniqueViolationsMapToConflict() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newTestEmployee("EMP001", "john@example.com")))

	sameCode := s.newTestEmployee("EMP001", "other@example.com")
	s.Require().ErrorIs(s.store.Create(ctx, sameCode), sentinel.ErrConflict)

	sameEmail := s.newTestEmployee("EMP002", "john@example.com")
	s.Require().ErrorIs(s.store.Create(ctx, sameEmail), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestUnknownBranchMapsToNotFound() {
	ctx := context.Background()
	e := s.newTestEmployee("EMP001", "john@example.com")
	e.BranchID = uuid.New()
	s.Require().ErrorIs(s.store.Create(ctx, e), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestBranchDeleteRestrictedWhileStaffed() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newTestEmployee("EMP001", "john@example.com")))

	s.Require().ErrorIs(s.branches.Delete(ctx, s.branchID), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestFindByBranchIDAndCount() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newTestEmployee("EMP002", "b@example.com")))
	s.Require().NoError(s.store.Create(ctx, s.newTestEmployee("EMP001", "a@example.com")))

	list, err := s.store.FindByBranchID(ctx, s.branchID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("EMP001", list[0].EmployeeCode)

	count, err := s.store.CountByBranchID(ctx, s.branchID)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *PostgresStoreSuite) TestSearches() {
	ctx := context.Background()
	john := s.newTestEmployee("EMP001", "john@example.com")
	s.Require().NoError(s.store.Create(ctx, john))

	jane := s.newTestEmployee("EMP002", "jane@example.com")
	jane.FirstName = "Jane"
	jane.Position = "Branch Manager"
	s.Require().NoError(s.store.Create(ctx, jane))

	byName, err := s.store.SearchByFirstName(ctx, "JA")
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("Jane", byName[0].FirstName)

	byPosition, err := s.store.SearchByPosition(ctx, "manager")
	s.Require().NoError(err)
	s.Require().Len(byPosition, 1)
	s.Equal("EMP002", byPosition[0].EmployeeCode)
}

func (s *PostgresStoreSuite) TestUpdateAndDelete() {
	ctx := context.Background()
	e := s.newTestEmployee("EMP001", "john@example.com")
	s.Require().NoError(s.store.Create(ctx, e))

	e.Position = "Senior Teller"
	s.Require().NoError(s.store.Update(ctx, e))

	loaded, err := s.store.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.Equal("Senior Teller", loaded.Position)

	s.Require().NoError(s.store.Delete(ctx, e.ID))
	_, err = s.store.FindByID(ctx, e.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
