package handler

import (
	"time"

	"github.com/google/uuid"

	"staffdir/internal/directory/models"
)

// BranchResponse is the wire shape of a branch, including the derived
// employee count.
type BranchResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	EmployeeCount int       `json:"employee_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toBranchResponse(d *models.BranchDetails) BranchResponse {
	return BranchResponse{
		ID:            d.Branch.ID,
		Code:          d.Branch.Code,
		Name:          d.Branch.Name,
		Address:       d.Branch.Address,
		PhoneNumber:   d.Branch.PhoneNumber,
		EmployeeCount: d.EmployeeCount,
		CreatedAt:     d.Branch.CreatedAt,
		UpdatedAt:     d.Branch.UpdatedAt,
	}
}

func toBranchResponses(details []*models.BranchDetails) []BranchResponse {
	out := make([]BranchResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toBranchResponse(d))
	}
	return out
}

// EmployeeResponse is the wire shape of an employee, carrying a snapshot of
// its branch code and name instead of a nested branch object.
type EmployeeResponse struct {
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
	BranchCode   string    `json:"branch_code"`
	BranchName   string    `json:"branch_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toEmployeeResponse(d *models.EmployeeDetails) EmployeeResponse {
	return EmployeeResponse{
		ID:           d.Employee.ID,
		EmployeeCode: d.Employee.EmployeeCode,
		FirstName:    d.Employee.FirstName,
		LastName:     d.Employee.LastName,
		Email:        d.Employee.Email,
		PhoneNumber:  d.Employee.PhoneNumber,
		HireDate:     d.Employee.HireDate,
		Position:     d.Employee.Position,
		Address:      d.Employee.Address,
		BranchID:     d.Employee.BranchID,
		BranchCode:   d.BranchCode,
		BranchName:   d.BranchName,
		CreatedAt:    d.Employee.CreatedAt,
		UpdatedAt:    d.Employee.UpdatedAt,
	}
}

func toEmployeeResponses(details []*models.EmployeeDetails) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toEmployeeResponse(d))
	}
	return out
}
