package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a person assigned to exactly one branch.
//
// Invariants:
//   - EmployeeCode is 3-20 characters and unique
//   - Email, when present, is unique across employees
//   - PhoneNumber digits are exactly 12 long and start with "08"
//   - BranchID resolves to an existing branch at write time
//
// Employee holds only the branch identifier, not a back-pointer; the branch
// code/name snapshot on EmployeeDetails is denormalized at read time.
type Employee struct {
	ID           uuid.UUID `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"`
	PhoneNumber  string    `json:"phone_number"`
	HireDate     time.Time `json:"hire_date"`
	Position     string    `json:"position,omitempty"`
	Address      string    `json:"address,omitempty"`
	BranchID     uuid.UUID `json:"branch_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins first and last name for event payloads and notifications.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeDetails carries an employee together with a snapshot of its branch
// code and name for API responses and event payloads.
type EmployeeDetails struct {
	Employee   *Employee
	BranchCode string
	BranchName string
}
