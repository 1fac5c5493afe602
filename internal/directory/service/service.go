// Package service implements the branch and employee registries: invariant
// enforcement around every mutation plus domain event emission once the store
// write succeeds. Event emission is fire-and-forget; the store remains the
// source of truth.
package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"staffdir/internal/directory/events"
	"staffdir/internal/directory/metrics"
	"staffdir/internal/directory/models"
)

// BranchStore is the persistence contract the branch registry consumes.
// Implementations enforce code uniqueness atomically and report it as
// sentinel.ErrConflict so a check-then-act race cannot admit two writers.
type BranchStore interface {
	Create(ctx context.Context, b *models.Branch) error
	Update(ctx context.Context, b *models.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
	FindByCode(ctx context.Context, code string) (*models.Branch, error)
	FindAll(ctx context.Context) ([]*models.Branch, error)
	SearchByName(ctx context.Context, name string) ([]*models.Branch, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByCodeExcludingID(ctx context.Context, code string, id uuid.UUID) (bool, error)
}

// EmployeeStore is the persistence contract the employee registry consumes.
type EmployeeStore interface {
	Create(ctx context.Context, e *models.Employee) error
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	FindByCode(ctx context.Context, code string) (*models.Employee, error)
	FindByBranchID(ctx context.Context, branchID uuid.UUID) ([]*models.Employee, error)
	FindAll(ctx context.Context) ([]*models.Employee, error)
	SearchByFirstName(ctx context.Context, name string) ([]*models.Employee, error)
	SearchByPosition(ctx context.Context, position string) ([]*models.Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByCodeExcludingID(ctx context.Context, code string, id uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcludingID(ctx context.Context, email string, id uuid.UUID) (bool, error)
	CountByBranchID(ctx context.Context, branchID uuid.UUID) (int, error)
}

// EventPublisher receives one domain event per successful mutation. Methods
// never return errors: publish failures must not fail the completed mutation.
type EventPublisher interface {
	PublishBranchEvent(ctx context.Context, ev events.BranchEvent)
	PublishEmployeeEvent(ctx context.Context, ev events.EmployeeEvent)
	PublishNotification(ctx context.Context, message, userID string)
}

// Service exposes the branch and employee registries over shared stores.
type Service struct {
	branches  BranchStore
	employees EmployeeStore
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service. Without WithPublisher events are silently
// discarded, which keeps registry semantics intact in tests and in
// channel-less deployments.
func New(branches BranchStore, employees EmployeeStore, opts ...Option) *Service {
	s := &Service{
		branches:  branches,
		employees: employees,
		publisher: noopPublisher{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type noopPublisher struct{}

func (noopPublisher) PublishBranchEvent(context.Context, events.BranchEvent)     {}
func (noopPublisher) PublishEmployeeEvent(context.Context, events.EmployeeEvent) {}
func (noopPublisher) PublishNotification(context.Context, string, string)        {}
