// Package handler is the HTTP surface of the directory. It decodes requests,
// delegates to the registries, and renders responses; no business rule lives
// here.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"staffdir/internal/directory/models"
	dErrors "staffdir/pkg/domain-errors"
	"staffdir/pkg/platform/httputil"
)

// Service defines the registry operations the HTTP layer consumes.
type Service interface {
	CreateBranch(ctx context.Context, req models.BranchRequest) (*models.BranchDetails, error)
	UpdateBranch(ctx context.Context, id uuid.UUID, req models.BranchRequest) (*models.BranchDetails, error)
	DeleteBranch(ctx context.Context, id uuid.UUID) error
	GetBranchByID(ctx context.Context, id uuid.UUID) (*models.BranchDetails, error)
	GetBranchByCode(ctx context.Context, code string) (*models.BranchDetails, error)
	ListBranches(ctx context.Context) ([]*models.BranchDetails, error)
	SearchBranchesByName(ctx context.Context, name string) ([]*models.BranchDetails, error)

	CreateEmployee(ctx context.Context, req models.EmployeeRequest) (*models.EmployeeDetails, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, req models.EmployeeRequest) (*models.EmployeeDetails, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
	GetEmployeeByID(ctx context.Context, id uuid.UUID) (*models.EmployeeDetails, error)
	GetEmployeeByCode(ctx context.Context, code string) (*models.EmployeeDetails, error)
	GetEmployeesByBranchID(ctx context.Context, branchID uuid.UUID) ([]*models.EmployeeDetails, error)
	ListEmployees(ctx context.Context) ([]*models.EmployeeDetails, error)
	SearchEmployeesByName(ctx context.Context, name string) ([]*models.EmployeeDetails, error)
	SearchEmployeesByPosition(ctx context.Context, position string) ([]*models.EmployeeDetails, error)
}

// Handler wires directory endpoints to the registries.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a directory handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts all directory endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/branches", func(r chi.Router) {
		r.Post("/", h.HandleCreateBranch)
		r.Get("/", h.HandleListBranches)
		r.Get("/search", h.HandleSearchBranches)
		r.Get("/code/{code}", h.HandleGetBranchByCode)
		r.Get("/{id}", h.HandleGetBranch)
		r.Put("/{id}", h.HandleUpdateBranch)
		r.Delete("/{id}", h.HandleDeleteBranch)
	})
	r.Route("/api/employees", func(r chi.Router) {
		r.Post("/", h.HandleCreateEmployee)
		r.Get("/", h.HandleListEmployees)
		r.Get("/search", h.HandleSearchEmployees)
		r.Get("/code/{code}", h.HandleGetEmployeeByCode)
		r.Get("/branch/{branchID}", h.HandleGetEmployeesByBranch)
		r.Get("/{id}", h.HandleGetEmployee)
		r.Put("/{id}", h.HandleUpdateEmployee)
		r.Delete("/{id}", h.HandleDeleteEmployee)
	})
}

// pathID parses the {id} route parameter. A malformed id renders as 400
// rather than falling through to a not-found lookup.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeBadRequest, "invalid %s: %q", name, raw)
	}
	return id, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
