package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"staffdir/internal/directory/events"
	"staffdir/internal/directory/models"
	dErrors "staffdir/pkg/domain-errors"
	"staffdir/pkg/platform/sentinel"
	"staffdir/pkg/requestcontext"
)

// CreateEmployee validates the request, enforces employee invariants in
// order (phone format, code uniqueness, email uniqueness, branch existence),
// persists the employee, and emits a CREATE event plus a welcome
// notification.
func (s *Service) CreateEmployee(ctx context.Context, req models.EmployeeRequest) (*models.EmployeeDetails, error) {
	req.Normalize()
	if fields := req.Validate(); fields != nil {
		s.metrics.RecordRejection("employee", string(dErrors.CodeValidation))
		return nil, dErrors.NewValidation("invalid employee request", fields)
	}
	if err := validatePhoneNumber(req.PhoneNumber); err != nil {
		s.metrics.RecordRejection("employee", string(dErrors.CodeConflict))
		return nil, err
	}
	if err := s.checkEmployeeUniqueness(ctx, req, uuid.Nil); err != nil {
		return nil, err
	}

	branch, err := s.resolveBranch(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	employee := &models.Employee{
		ID:           uuid.New(),
		EmployeeCode: req.EmployeeCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		HireDate:     req.HireDate,
		Position:     req.Position,
		Address:      req.Address,
		BranchID:     branch.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.RecordRejection("employee", string(dErrors.CodeConflict))
			return nil, dErrors.Newf(dErrors.CodeConflict, "Employee with code '%s' already exists", req.EmployeeCode)
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Branch not found with id: %s", req.BranchID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create employee")
	}

	s.logger.InfoContext(ctx, "employee created",
		"employee_id", employee.ID,
		"code", employee.EmployeeCode,
		"branch_id", branch.ID,
	)
	s.metrics.RecordMutation("employee", "create")
	s.publishEmployeeEvent(ctx, events.KindCreate, employee, branch)
	s.publisher.PublishNotification(ctx,
		fmt.Sprintf("Employee %s joined branch %s", employee.FullName(), branch.Name),
		requestcontext.ActorID(ctx),
	)

	return &models.EmployeeDetails{Employee: employee, BranchCode: branch.Code, BranchName: branch.Name}, nil
}

// UpdateEmployee overwrites an existing employee after re-running the full
// invariant chain, excluding the employee itself from uniqueness checks.
func (s *Service) UpdateEmployee(ctx context.Context, id uuid.UUID, req models.EmployeeRequest) (*models.EmployeeDetails, error) {
	req.Normalize()
	if fields := req.Validate(); fields != nil {
		s.metrics.RecordRejection("employee", string(dErrors.CodeValidation))
		return nil, dErrors.NewValidation("invalid employee request", fields)
	}
	if err := validatePhoneNumber(req.PhoneNumber); err != nil {
		s.metrics.RecordRejection("employee", string(dErrors.CodeConflict))
		return nil, err
	}

	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Employee not found with id: %s", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}

	if err := s.checkEmployeeUniqueness(ctx, req, id); err != nil {
		return nil, err
	}

	branch, err := s.resolveBranch(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}

	employee.EmployeeCode = req.EmployeeCode
	employee.FirstName = req.FirstName
	employee.LastName = req.LastName
	employee.Email = req.Email
	employee.PhoneNumber = req.PhoneNumber
	employee.HireDate = req.HireDate
	employee.Position = req.Position
	employee.Address = req.Address
	employee.BranchID = branch.ID
	employee.UpdatedAt = time.Now()

	if err := s.employees.Update(ctx, employee); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.RecordRejection("employee", string(dErrors.CodeConflict))
			return nil, dErrors.Newf(dErrors.CodeConflict, "Employee with code '%s' already exists", req.EmployeeCode)
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Employee not found with id: %s", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update employee")
	}

	s.logger.InfoContext(ctx, "employee updated",
		"employee_id", employee.ID,
		"code", employee.EmployeeCode,
		"branch_id", branch.ID,
	)
	s.metrics.RecordMutation("employee", "update")
	s.publishEmployeeEvent(ctx, events.KindUpdate, employee, branch)

	return &models.EmployeeDetails{Employee: employee, BranchCode: branch.Code, BranchName: branch.Name}, nil
}

// DeleteEmployee removes an employee and emits a DELETE event. Unlike
// branches, nothing downstream guards employee deletion.
func (s *Service) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "Employee not found with id: %s", id)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "Employee not found with id: %s", id)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete employee")
	}

	// Best effort: the branch may be gone by now, the event still carries
	// whatever snapshot we can assemble.
	branch, err := s.branches.FindByID(ctx, employee.BranchID)
	if err != nil {
		branch = &models.Branch{ID: employee.BranchID}
	}

	s.logger.InfoContext(ctx, "employee deleted", "employee_id", id, "code", employee.EmployeeCode)
	s.metrics.RecordMutation("employee", "delete")
	s.publishEmployeeEvent(ctx, events.KindDelete, employee, branch)

	return nil
}

// GetEmployeeByID returns an employee with its branch snapshot.
func (s *Service) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*models.EmployeeDetails, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Employee not found with id: %s", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	return s.employeeDetails(ctx, employee)
}

// GetEmployeeByCode returns an employee by its unique code.
func (s *Service) GetEmployeeByCode(ctx context.Context, code string) (*models.EmployeeDetails, error) {
	employee, err := s.employees.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Employee not found with code: %s", code)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	return s.employeeDetails(ctx, employee)
}

// GetEmployeesByBranchID lists a branch's employees. The branch must exist
// even when it has none; an existing empty branch yields an empty list.
func (s *Service) GetEmployeesByBranchID(ctx context.Context, branchID uuid.UUID) ([]*models.EmployeeDetails, error) {
	branch, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Branch not found with id: %s", branchID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load branch")
	}

	employees, err := s.employees.FindByBranchID(ctx, branchID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list branch employees")
	}
	out := make([]*models.EmployeeDetails, 0, len(employees))
	for _, e := range employees {
		out = append(out, &models.EmployeeDetails{Employee: e, BranchCode: branch.Code, BranchName: branch.Name})
	}
	return out, nil
}

// ListEmployees returns all employees with branch snapshots.
func (s *Service) ListEmployees(ctx context.Context) ([]*models.EmployeeDetails, error) {
	employees, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
	}
	return s.enrichEmployees(ctx, employees)
}

// SearchEmployeesByName matches on first name, case-insensitively. No match
// is an empty list, not an error.
func (s *Service) SearchEmployeesByName(ctx context.Context, name string) ([]*models.EmployeeDetails, error) {
	employees, err := s.employees.SearchByFirstName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search employees")
	}
	return s.enrichEmployees(ctx, employees)
}

// SearchEmployeesByPosition matches on position, case-insensitively.
func (s *Service) SearchEmployeesByPosition(ctx context.Context, position string) ([]*models.EmployeeDetails, error) {
	employees, err := s.employees.SearchByPosition(ctx, position)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search employees")
	}
	return s.enrichEmployees(ctx, employees)
}

// checkEmployeeUniqueness verifies code then email, excluding selfID when it
// is non-nil. The order is part of the observable contract.
func (s *Service) checkEmployeeUniqueness(ctx context.Context, req models.EmployeeRequest, selfID uuid.UUID) error {
	var (
		codeTaken bool
		err       error
	)
	if selfID == uuid.Nil {
		codeTaken, err = s.employees.ExistsByCode(ctx, req.EmployeeCode)
	} else {
		codeTaken, err = s.employees.ExistsByCodeExcludingID(ctx, req.EmployeeCode, selfID)
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check employee code")
	}
	if codeTaken {
		s.metrics.RecordRejection("employee", string(dErrors.CodeConflict))
		return dErrors.Newf(dErrors.CodeConflict, "Employee with code '%s' already exists", req.EmployeeCode)
	}

	if req.Email == "" {
		return nil
	}
	var emailTaken bool
	if selfID == uuid.Nil {
		emailTaken, err = s.employees.ExistsByEmail(ctx, req.Email)
	} else {
		emailTaken, err = s.employees.ExistsByEmailExcludingID(ctx, req.Email, selfID)
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check employee email")
	}
	if emailTaken {
		s.metrics.RecordRejection("employee", string(dErrors.CodeConflict))
		return dErrors.Newf(dErrors.CodeConflict, "Employee with email '%s' already exists", req.Email)
	}
	return nil
}

func (s *Service) resolveBranch(ctx context.Context, branchID uuid.UUID) (*models.Branch, error) {
	branch, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Branch not found with id: %s", branchID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load branch")
	}
	return branch, nil
}

func (s *Service) employeeDetails(ctx context.Context, employee *models.Employee) (*models.EmployeeDetails, error) {
	branch, err := s.branches.FindByID(ctx, employee.BranchID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Orphaned reference should be impossible; surface the bare record.
			return &models.EmployeeDetails{Employee: employee}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load branch")
	}
	return &models.EmployeeDetails{Employee: employee, BranchCode: branch.Code, BranchName: branch.Name}, nil
}

func (s *Service) enrichEmployees(ctx context.Context, employees []*models.Employee) ([]*models.EmployeeDetails, error) {
	out := make([]*models.EmployeeDetails, 0, len(employees))
	for _, e := range employees {
		details, err := s.employeeDetails(ctx, e)
		if err != nil {
			return nil, err
		}
		out = append(out, details)
	}
	return out, nil
}

func (s *Service) publishEmployeeEvent(ctx context.Context, kind events.Kind, employee *models.Employee, branch *models.Branch) {
	s.publisher.PublishEmployeeEvent(ctx, events.EmployeeEvent{
		EventType:    kind,
		EmployeeID:   employee.ID,
		EmployeeCode: employee.EmployeeCode,
		EmployeeName: employee.FullName(),
		Email:        employee.Email,
		PhoneNumber:  employee.PhoneNumber,
		BranchID:     branch.ID,
		BranchCode:   branch.Code,
		BranchName:   branch.Name,
		UserID:       requestcontext.ActorID(ctx),
	})
}
