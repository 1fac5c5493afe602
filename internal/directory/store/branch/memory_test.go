package branch

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"staffdir/internal/directory/models"
	"staffdir/pkg/platform/sentinel"
)

func newBranch(code, name string) *models.Branch {
	return &models.Branch{ID: uuid.New(), Code: code, Name: name}
}

func TestInMemoryCreateEnforcesCodeUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	require.NoError(t, store.Create(ctx, newBranch("HO", "Head Office")))

	err := store.Create(ctx, newBranch("HO", "Other"))
	require.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestInMemoryUpdateChecksCodeAgainstOthers(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	first := newBranch("HO", "Head Office")
	second := newBranch("BR1", "Downtown")
	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))

	// Keeping your own code is fine.
	first.Name = "Headquarters"
	require.NoError(t, store.Update(ctx, first))

	// Taking another branch's code is not.
	second.Code = "HO"
	require.ErrorIs(t, store.Update(ctx, second), sentinel.ErrConflict)
}

func TestInMemoryLookupsReportNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	_, err := store.FindByID(ctx, uuid.New())
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = store.FindByCode(ctx, "NOPE")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, uuid.New()), sentinel.ErrNotFound)
	require.ErrorIs(t, store.Update(ctx, newBranch("HO", "Head Office")), sentinel.ErrNotFound)
}

func TestInMemorySearchByNameIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	require.NoError(t, store.Create(ctx, newBranch("HO", "Head Office")))
	require.NoError(t, store.Create(ctx, newBranch("BR1", "Downtown")))

	matches, err := store.SearchByName(ctx, "OFFICE")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "HO", matches[0].Code)
}

func TestInMemoryExistsByCodeExcludingID(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	b := newBranch("HO", "Head Office")
	require.NoError(t, store.Create(ctx, b))

	taken, err := store.ExistsByCodeExcludingID(ctx, "HO", uuid.New())
	require.NoError(t, err)
	require.True(t, taken)

	self, err := store.ExistsByCodeExcludingID(ctx, "HO", b.ID)
	require.NoError(t, err)
	require.False(t, self, "a branch does not conflict with itself")
}

func TestInMemoryFindAllSortedByCode(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	for _, code := range []string{"ZZ", "AA", "MM"} {
		require.NoError(t, store.Create(ctx, newBranch(code, "Branch "+code)))
	}

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "AA", all[0].Code)
	require.Equal(t, "ZZ", all[2].Code)
}

func TestInMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	b := newBranch("HO", "Head Office")
	require.NoError(t, store.Create(ctx, b))

	loaded, err := store.FindByID(ctx, b.ID)
	require.NoError(t, err)
	loaded.Name = "Mutated"

	reloaded, err := store.FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "Head Office", reloaded.Name, "callers cannot mutate stored state")
}
