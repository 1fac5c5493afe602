package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffdir/internal/directory/models"
	"staffdir/pkg/platform/httputil"
	"staffdir/pkg/requestcontext"
)

// HandleCreateBranch handles POST /api/branches.
func (h *Handler) HandleCreateBranch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.BranchRequest
	if err := httputil.Decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.service.CreateBranch(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "branch created",
		"request_id", requestcontext.RequestID(ctx),
		"branch_id", details.Branch.ID,
		"code", details.Branch.Code,
	)
	httputil.WriteJSON(w, http.StatusCreated, toBranchResponse(details))
}

// HandleGetBranch handles GET /api/branches/{id}.
func (h *Handler) HandleGetBranch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.service.GetBranchByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBranchResponse(details))
}

// HandleGetBranchByCode handles GET /api/branches/code/{code}.
func (h *Handler) HandleGetBranchByCode(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.GetBranchByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBranchResponse(details))
}

// HandleListBranches handles GET /api/branches.
func (h *Handler) HandleListBranches(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.ListBranches(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBranchResponses(details))
}

// HandleSearchBranches handles GET /api/branches/search?name=.
func (h *Handler) HandleSearchBranches(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.SearchBranchesByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBranchResponses(details))
}

// HandleUpdateBranch handles PUT /api/branches/{id}.
func (h *Handler) HandleUpdateBranch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.BranchRequest
	if err := httputil.Decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.service.UpdateBranch(ctx, id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "branch updated",
		"request_id", requestcontext.RequestID(ctx),
		"branch_id", id,
	)
	httputil.WriteJSON(w, http.StatusOK, toBranchResponse(details))
}

// HandleDeleteBranch handles DELETE /api/branches/{id}.
func (h *Handler) HandleDeleteBranch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.DeleteBranch(ctx, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "branch deleted",
		"request_id", requestcontext.RequestID(ctx),
		"branch_id", id,
	)
	w.WriteHeader(http.StatusNoContent)
}
