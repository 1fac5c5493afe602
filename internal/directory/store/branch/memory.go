// Package branch persists branch records. InMemory backs unit tests and
// infrastructure-free development; PostgresStore is the production store.
package branch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"staffdir/internal/directory/models"
	"staffdir/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded branch store. Uniqueness is checked inside the
// lock so concurrent writers racing on one code see exactly one success.
type InMemory struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.Branch
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[uuid.UUID]models.Branch)}
}

func (s *InMemory) Create(_ context.Context, b *models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Code == b.Code {
			return fmt.Errorf("branch code %q: %w", b.Code, sentinel.ErrConflict)
		}
	}
	s.byID[b.ID] = *b
	return nil
}

func (s *InMemory) Update(_ context.Context, b *models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[b.ID]; !ok {
		return sentinel.ErrNotFound
	}
	for id, existing := range s.byID {
		if id != b.ID && existing.Code == b.Code {
			return fmt.Errorf("branch code %q: %w", b.Code, sentinel.ErrConflict)
		}
	}
	s.byID[b.ID] = *b
	return nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &b, nil
}

func (s *InMemory) FindByCode(_ context.Context, code string) (*models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.byID {
		if b.Code == code {
			found := b
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindAll(_ context.Context) ([]*models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Branch, 0, len(s.byID))
	for _, b := range s.byID {
		found := b
		out = append(out, &found)
	}
	sortByCode(out)
	return out, nil
}

func (s *InMemory) SearchByName(_ context.Context, name string) ([]*models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(name)
	var out []*models.Branch
	for _, b := range s.byID {
		if strings.Contains(strings.ToLower(b.Name), needle) {
			found := b
			out = append(out, &found)
		}
	}
	sortByCode(out)
	return out, nil
}

func (s *InMemory) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok, nil
}

func (s *InMemory) ExistsByCode(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.byID {
		if b.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemory) ExistsByCodeExcludingID(_ context.Context, code string, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for bid, b := range s.byID {
		if bid != id && b.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func sortByCode(branches []*models.Branch) {
	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Code < branches[j].Code
	})
}
