package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"staffdir/internal/directory/events"
	"staffdir/internal/directory/models"
	dErrors "staffdir/pkg/domain-errors"
	"staffdir/pkg/platform/sentinel"
	"staffdir/pkg/requestcontext"
)

// CreateBranch validates the request, enforces code uniqueness, persists the
// branch, and emits a CREATE event.
func (s *Service) CreateBranch(ctx context.Context, req models.BranchRequest) (*models.BranchDetails, error) {
	req.Normalize()
	if fields := req.Validate(); fields != nil {
		s.metrics.RecordRejection("branch", string(dErrors.CodeValidation))
		return nil, dErrors.NewValidation("invalid branch request", fields)
	}

	exists, err := s.branches.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check branch code")
	}
	if exists {
		s.metrics.RecordRejection("branch", string(dErrors.CodeConflict))
		return nil, dErrors.Newf(dErrors.CodeConflict, "Branch with code '%s' already exists", req.Code)
	}

	now := time.Now()
	branch := &models.Branch{
		ID:          uuid.New(),
		Code:        req.Code,
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.branches.Create(ctx, branch); err != nil {
		// The store constraint closes the race the ExistsByCode check leaves open.
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.RecordRejection("branch", string(dErrors.CodeConflict))
			return nil, dErrors.Newf(dErrors.CodeConflict, "Branch with code '%s' already exists", req.Code)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create branch")
	}

	s.logger.InfoContext(ctx, "branch created", "branch_id", branch.ID, "code", branch.Code)
	s.metrics.RecordMutation("branch", "create")
	s.publishBranchEvent(ctx, events.KindCreate, branch)

	return &models.BranchDetails{Branch: branch, EmployeeCount: 0}, nil
}

// UpdateBranch overwrites the mutable fields of an existing branch and emits
// an UPDATE event.
func (s *Service) UpdateBranch(ctx context.Context, id uuid.UUID, req models.BranchRequest) (*models.BranchDetails, error) {
	req.Normalize()
	if fields := req.Validate(); fields != nil {
		s.metrics.RecordRejection("branch", string(dErrors.CodeValidation))
		return nil, dErrors.NewValidation("invalid branch request", fields)
	}

	branch, err := s.branches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Branch not found with id: %s", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load branch")
	}

	if branch.Code != req.Code {
		taken, err := s.branches.ExistsByCodeExcludingID(ctx, req.Code, id)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check branch code")
		}
		if taken {
			s.metrics.RecordRejection("branch", string(dErrors.CodeConflict))
			return nil, dErrors.Newf(dErrors.CodeConflict, "Branch with code '%s' already exists", req.Code)
		}
	}

	branch.Code = req.Code
	branch.Name = req.Name
	branch.Address = req.Address
	branch.PhoneNumber = req.PhoneNumber
	branch.UpdatedAt = time.Now()

	if err := s.branches.Update(ctx, branch); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.RecordRejection("branch", string(dErrors.CodeConflict))
			return nil, dErrors.Newf(dErrors.CodeConflict, "Branch with code '%s' already exists", req.Code)
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Branch not found with id: %s", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update branch")
	}

	s.logger.InfoContext(ctx, "branch updated", "branch_id", branch.ID, "code", branch.Code)
	s.metrics.RecordMutation("branch", "update")
	s.publishBranchEvent(ctx, events.KindUpdate, branch)

	return s.branchDetails(ctx, branch)
}

// DeleteBranch removes a branch unless any employee still references it, and
// emits a DELETE event on success.
func (s *Service) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	branch, err := s.branches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "Branch not found with id: %s", id)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load branch")
	}

	count, err := s.employees.CountByBranchID(ctx, id)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count branch employees")
	}
	if count > 0 {
		s.metrics.RecordRejection("branch", string(dErrors.CodeConflict))
		return dErrors.Newf(dErrors.CodeConflict,
			"Cannot delete branch with %d employees. Please reassign employees first.", count)
	}

	if err := s.branches.Delete(ctx, id); err != nil {
		// An employee created between the count and the delete trips the
		// foreign key; report it the same way as a non-zero count.
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.RecordRejection("branch", string(dErrors.CodeConflict))
			return dErrors.New(dErrors.CodeConflict,
				"Cannot delete branch with employees. Please reassign employees first.")
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "Branch not found with id: %s", id)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete branch")
	}

	s.logger.InfoContext(ctx, "branch deleted", "branch_id", id, "code", branch.Code)
	s.metrics.RecordMutation("branch", "delete")
	s.publishBranchEvent(ctx, events.KindDelete, branch)

	return nil
}

// GetBranchByID returns a branch enriched with its employee count.
func (s *Service) GetBranchByID(ctx context.Context, id uuid.UUID) (*models.BranchDetails, error) {
	branch, err := s.branches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Branch not found with id: %s", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load branch")
	}
	return s.branchDetails(ctx, branch)
}

// GetBranchByCode returns a branch by its unique code.
func (s *Service) GetBranchByCode(ctx context.Context, code string) (*models.BranchDetails, error) {
	branch, err := s.branches.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Branch not found with code: %s", code)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load branch")
	}
	return s.branchDetails(ctx, branch)
}

// ListBranches returns all branches with employee counts.
func (s *Service) ListBranches(ctx context.Context) ([]*models.BranchDetails, error) {
	branches, err := s.branches.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list branches")
	}
	return s.enrichBranches(ctx, branches)
}

// SearchBranchesByName returns branches whose name contains the given text,
// case-insensitively. No match is an empty list, not an error.
func (s *Service) SearchBranchesByName(ctx context.Context, name string) ([]*models.BranchDetails, error) {
	branches, err := s.branches.SearchByName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search branches")
	}
	return s.enrichBranches(ctx, branches)
}

func (s *Service) branchDetails(ctx context.Context, branch *models.Branch) (*models.BranchDetails, error) {
	count, err := s.employees.CountByBranchID(ctx, branch.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count branch employees")
	}
	return &models.BranchDetails{Branch: branch, EmployeeCount: count}, nil
}

func (s *Service) enrichBranches(ctx context.Context, branches []*models.Branch) ([]*models.BranchDetails, error) {
	out := make([]*models.BranchDetails, 0, len(branches))
	for _, b := range branches {
		details, err := s.branchDetails(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, details)
	}
	return out, nil
}

func (s *Service) publishBranchEvent(ctx context.Context, kind events.Kind, branch *models.Branch) {
	s.publisher.PublishBranchEvent(ctx, events.BranchEvent{
		EventType:   kind,
		BranchID:    branch.ID,
		BranchCode:  branch.Code,
		BranchName:  branch.Name,
		Address:     branch.Address,
		PhoneNumber: branch.PhoneNumber,
		UserID:      requestcontext.ActorID(ctx),
	})
}
