package employee

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"staffdir/internal/directory/models"
	"staffdir/pkg/platform/sentinel"
)

func newEmployee(code, email string, branchID uuid.UUID) *models.Employee {
	return &models.Employee{
		ID:           uuid.New(),
		EmployeeCode: code,
		FirstName:    "John",
		LastName:     "Doe",
		Email:        email,
		PhoneNumber:  "088812345678",
		BranchID:     branchID,
	}
}

func TestInMemoryCreateEnforcesCodeAndEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	branchID := uuid.New()

	require.NoError(t, store.Create(ctx, newEmployee("EMP001", "john@example.com", branchID)))

	sameCode := newEmployee("EMP001", "other@example.com", branchID)
	require.ErrorIs(t, store.Create(ctx, sameCode), sentinel.ErrConflict)

	sameEmail := newEmployee("EMP002", "john@example.com", branchID)
	require.ErrorIs(t, store.Create(ctx, sameEmail), sentinel.ErrConflict)
}

func TestInMemoryEmptyEmailNeverConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	branchID := uuid.New()

	require.NoError(t, store.Create(ctx, newEmployee("EMP001", "", branchID)))
	require.NoError(t, store.Create(ctx, newEmployee("EMP002", "", branchID)))
}

func TestInMemoryUpdateKeepsOwnValues(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	branchID := uuid.New()

	e := newEmployee("EMP001", "john@example.com", branchID)
	require.NoError(t, store.Create(ctx, e))

	e.Position = "Teller"
	require.NoError(t, store.Update(ctx, e), "an employee keeps its own code and email")
}

func TestInMemoryFindByBranchID(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	home := uuid.New()
	away := uuid.New()

	require.NoError(t, store.Create(ctx, newEmployee("EMP002", "b@example.com", home)))
	require.NoError(t, store.Create(ctx, newEmployee("EMP001", "a@example.com", home)))
	require.NoError(t, store.Create(ctx, newEmployee("EMP003", "c@example.com", away)))

	list, err := store.FindByBranchID(ctx, home)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "EMP001", list[0].EmployeeCode, "sorted by code")

	count, err := store.CountByBranchID(ctx, home)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	empty, err := store.FindByBranchID(ctx, uuid.New())
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestInMemorySearches(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	branchID := uuid.New()

	john := newEmployee("EMP001", "john@example.com", branchID)
	john.Position = "Teller"
	require.NoError(t, store.Create(ctx, john))

	jane := newEmployee("EMP002", "jane@example.com", branchID)
	jane.FirstName = "Jane"
	jane.Position = "Branch Manager"
	require.NoError(t, store.Create(ctx, jane))

	byName, err := store.SearchByFirstName(ctx, "JA")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "Jane", byName[0].FirstName)

	byPosition, err := store.SearchByPosition(ctx, "manager")
	require.NoError(t, err)
	require.Len(t, byPosition, 1)
	require.Equal(t, "EMP002", byPosition[0].EmployeeCode)
}

func TestInMemoryExistsExcludingID(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	branchID := uuid.New()

	e := newEmployee("EMP001", "john@example.com", branchID)
	require.NoError(t, store.Create(ctx, e))

	taken, err := store.ExistsByCodeExcludingID(ctx, "EMP001", uuid.New())
	require.NoError(t, err)
	require.True(t, taken)

	self, err := store.ExistsByEmailExcludingID(ctx, "john@example.com", e.ID)
	require.NoError(t, err)
	require.False(t, self)
}

func TestInMemoryLookupsReportNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	_, err := store.FindByID(ctx, uuid.New())
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = store.FindByCode(ctx, "NOPE")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, uuid.New()), sentinel.ErrNotFound)
}
