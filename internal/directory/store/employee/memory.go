// Package employee persists employee records. InMemory backs unit tests and
// infrastructure-free development; PostgresStore is the production store.
package employee

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

// InMemory is a mutex-guarded employee store. Code and email uniqueness are
// checked inside the lock so racing writers see exactly one success.
type InMemory struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.Employee
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[uuid.UUID]models.Employee)}
}

func (s *InMemory) Create(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.EmployeeCode == e.EmployeeCode {
			return fmt.Errorf("employee code %q: %w", e.EmployeeCode, sentinel.ErrConflict)
		}
		if e.Email != "" && existing.Email == e.Email {
			return fmt.Errorf("employee email %q: %w", e.Email, sentinel.ErrConflict)
		}
	}
	s.byID[e.ID] = *e
	return nil
}

func (s *InMemory) Update(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	for id, existing := range s.byID {
		if id == e.ID {
			continue
		}
		if existing.EmployeeCode == e.EmployeeCode {
			return fmt.Errorf("employee code %q: %w", e.EmployeeCode, sentinel.ErrConflict)
		}
		if e.Email != "" && existing.Email == e.Email {
			return fmt.Errorf("employee email %q: %w", e.Email, sentinel.ErrConflict)
		}
	}
	s.byID[e.ID] = *e
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

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &e, nil
}

func (s *InMemory) FindByCode(_ context.Context, code string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.byID {
		if e.EmployeeCode == code {
			found := e
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByBranchID(_ context.Context, branchID uuid.UUID) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Employee
	for _, e := range s.byID {
		if e.BranchID == branchID {
			found := e
			out = append(out, &found)
		}
	}
	sortByCode(out)
	return out, nil
}

func (s *InMemory) FindAll(_ context.Context) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Employee, 0, len(s.byID))
	for _, e := range s.byID {
		found := e
		out = append(out, &found)
	}
	sortByCode(out)
	return out, nil
}

func (s *InMemory) SearchByFirstName(_ context.Context, name string) ([]*models.Employee, error) {
	return s.search(func(e models.Employee) string { return e.FirstName }, name)
}

func (s *InMemory) SearchByPosition(_ context.Context, position string) ([]*models.Employee, error) {
	return s.search(func(e models.Employee) string { return e.Position }, position)
}

func (s *InMemory) search(field func(models.Employee) string, needle string) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle = strings.ToLower(needle)
	var out []*models.Employee
	for _, e := range s.byID {
		if strings.Contains(strings.ToLower(field(e)), needle) {
			found := e
			out = append(out, &found)
		}
	}
	sortByCode(out)
	return out, nil
}

func (s *InMemory) ExistsByCode(_ context.Context, code string) (bool, error) {
	return s.exists(func(e models.Employee) bool { return e.EmployeeCode == code })
}

func (s *InMemory) ExistsByCodeExcludingID(_ context.Context, code string, id uuid.UUID) (bool, error) {
	return s.exists(func(e models.Employee) bool { return e.EmployeeCode == code && e.ID != id })
}

func (s *InMemory) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return s.exists(func(e models.Employee) bool { return e.Email == email })
}

func (s *InMemory) ExistsByEmailExcludingID(_ context.Context, email string, id uuid.UUID) (bool, error) {
	return s.exists(func(e models.Employee) bool { return e.Email == email && e.ID != id })
}

func (s *InMemory) exists(match func(models.Employee) bool) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.byID {
		if match(e) {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemory) CountByBranchID(_ context.Context, branchID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.byID {
		if e.BranchID == branchID {
			count++
		}
	}
	return count, nil
}

func sortByCode(employees []*models.Employee) {
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].EmployeeCode < employees[j].EmployeeCode
	})
}
