package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is an organizational location.
//
// Invariants:
//   - Code is 2-10 characters and unique across all branches
//   - Name is 2-100 characters
//   - A branch cannot be deleted while any employee references it
//   - CreatedAt is immutable after construction
//
// Branches never hold live employee objects; the employee relation is reached
// only through count and lookup queries, which keeps serialization acyclic.
type Branch struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BranchDetails pairs a branch with its derived employee count. The count is
// never stored; it is computed from the employee relation at read time.
type BranchDetails struct {
	Branch        *Branch
	EmployeeCount int
}
