package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffdir/internal/directory/models"
	"staffdir/pkg/platform/httputil"
	"staffdir/pkg/requestcontext"
)

// HandleCreateEmployee handles POST /api/employees.
func (h *Handler) HandleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.EmployeeRequest
	if err := httputil.Decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.service.CreateEmployee(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "employee created",
		"request_id", requestcontext.RequestID(ctx),
		"employee_id", details.Employee.ID,
		"code", details.Employee.EmployeeCode,
	)
	httputil.WriteJSON(w, http.StatusCreated, toEmployeeResponse(details))
}

// HandleGetEmployee handles GET /api/employees/{id}.
func (h *Handler) HandleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.service.GetEmployeeByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toEmployeeResponse(details))
}

// HandleGetEmployeeByCode handles GET /api/employees/code/{code}.
func (h *Handler) HandleGetEmployeeByCode(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.GetEmployeeByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toEmployeeResponse(details))
}

// HandleGetEmployeesByBranch handles GET /api/employees/branch/{branchID}.
func (h *Handler) HandleGetEmployeesByBranch(w http.ResponseWriter, r *http.Request) {
	branchID, err := pathID(r, "branchID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.service.GetEmployeesByBranchID(r.Context(), branchID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toEmployeeResponses(details))
}

// HandleListEmployees handles GET /api/employees.
func (h *Handler) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toEmployeeResponses(details))
}

// HandleSearchEmployees handles GET /api/employees/search with either a
// name or a position query parameter. Name wins when both are present.
func (h *Handler) HandleSearchEmployees(w http.ResponseWriter, r *http.Request) {
	var (
		details []*models.EmployeeDetails
		err     error
	)
	query := r.URL.Query()
	switch {
	case query.Get("name") != "":
		details, err = h.service.SearchEmployeesByName(r.Context(), query.Get("name"))
	case query.Get("position") != "":
		details, err = h.service.SearchEmployeesByPosition(r.Context(), query.Get("position"))
	default:
		details, err = h.service.ListEmployees(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toEmployeeResponses(details))
}

// HandleUpdateEmployee handles PUT /api/employees/{id}.
func (h *Handler) HandleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.EmployeeRequest
	if err := httputil.Decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.service.UpdateEmployee(ctx, id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "employee updated",
		"request_id", requestcontext.RequestID(ctx),
		"employee_id", id,
	)
	httputil.WriteJSON(w, http.StatusOK, toEmployeeResponse(details))
}

// HandleDeleteEmployee handles DELETE /api/employees/{id}.
func (h *Handler) HandleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.DeleteEmployee(ctx, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "employee deleted",
		"request_id", requestcontext.RequestID(ctx),
		"employee_id", id,
	)
	w.WriteHeader(http.StatusNoContent)
}
