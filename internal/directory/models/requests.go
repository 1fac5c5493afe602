package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// BranchRequest carries the mutable branch fields for create and update.
type BranchRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Normalize trims surrounding whitespace on all fields.
func (r *BranchRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

// Validate checks structural field constraints and returns one message per
// failing field. An empty map means the request is well formed.
func (r *BranchRequest) Validate() map[string]string {
	fields := make(map[string]string)
	// Bounds count characters, not bytes, so multi-byte names measure the
	// same as ASCII ones.
	if n := utf8.RuneCountInString(r.Code); n < 2 || n > 10 {
		fields["code"] = "code must be between 2 and 10 characters"
	}
	if n := utf8.RuneCountInString(r.Name); n < 2 || n > 100 {
		fields["name"] = "name must be between 2 and 100 characters"
	}
	if utf8.RuneCountInString(r.Address) > 500 {
		fields["address"] = "address must be at most 500 characters"
	}
	if utf8.RuneCountInString(r.PhoneNumber) > 20 {
		fields["phone_number"] = "phone number must be at most 20 characters"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// EmployeeRequest carries the mutable employee fields for create and update.
// An empty Email means no email; phone number format is checked by the
// registry rather than here because its failures report as conflicts.
type EmployeeRequest struct {
	EmployeeCode string    `json:"employee_code"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"`
	PhoneNumber  string    `json:"phone_number"`
	HireDate     time.Time `json:"hire_date"`
	Position     string    `json:"position,omitempty"`
	Address      string    `json:"address,omitempty"`
	BranchID     uuid.UUID `json:"branch_id"`
}

// Normalize trims surrounding whitespace on all free-text fields.
func (r *EmployeeRequest) Normalize() {
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Position = strings.TrimSpace(r.Position)
	r.Address = strings.TrimSpace(r.Address)
}

// Validate checks structural field constraints and returns one message per
// failing field.
func (r *EmployeeRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if n := utf8.RuneCountInString(r.EmployeeCode); n < 3 || n > 20 {
		fields["employee_code"] = "employee code must be between 3 and 20 characters"
	}
	if n := utf8.RuneCountInString(r.FirstName); n < 2 || n > 50 {
		fields["first_name"] = "first name must be between 2 and 50 characters"
	}
	if n := utf8.RuneCountInString(r.LastName); n < 2 || n > 50 {
		fields["last_name"] = "last name must be between 2 and 50 characters"
	}
	if r.Email != "" && !emailShape.MatchString(r.Email) {
		fields["email"] = "email must be a valid address"
	}
	if r.HireDate.IsZero() {
		fields["hire_date"] = "hire date is required"
	}
	if utf8.RuneCountInString(r.Position) > 50 {
		fields["position"] = "position must be at most 50 characters"
	}
	if utf8.RuneCountInString(r.Address) > 500 {
		fields["address"] = "address must be at most 500 characters"
	}
	if r.BranchID == uuid.Nil {
		fields["branch_id"] = "branch id is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
