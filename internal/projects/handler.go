package projects

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/measurebook/measurebook/internal/platform/httpx"
	"github.com/measurebook/measurebook/internal/shared"
)

// Handler wires HTTP endpoints for projects and sheet saves.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes registers project routes on the provided router. The
// router must already enforce authentication.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleFetch)
	r.Put("/{id}", h.handleSaveSheet)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ident, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	var req CreateProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid request body", httpx.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: name, clientName, date and location are required", httpx.ErrValidation))
		return
	}

	created, err := h.service.Create(r.Context(), ident, req)
	if err != nil {
		h.logError(r, "create project failed", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, CreateProjectResponse{
		Message:   "Project created successfully",
		ProjectID: created.ID,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	summaries, err := h.service.List(r.Context(), ident)
	if err != nil {
		h.logError(r, "list projects failed", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ListProjectsResponse{Projects: summaries})
}

func (h *Handler) handleFetch(w http.ResponseWriter, r *http.Request) {
	ident, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	projectID, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, ErrNotFound)
		return
	}

	resp, err := h.service.Fetch(r.Context(), ident, projectID)
	if err != nil {
		h.logError(r, "fetch project failed", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSaveSheet(w http.ResponseWriter, r *http.Request) {
	ident, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	projectID, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, ErrNotFound)
		return
	}

	var req SaveSheetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid request body", httpx.ErrValidation))
		return
	}

	total, err := h.service.SaveSheet(r.Context(), ident, projectID, req)
	if err != nil {
		h.logError(r, "save sheet failed", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, SaveSheetResponse{
		Message:     "Project updated successfully",
		TotalAmount: total,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ident, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	projectID, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, ErrNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), ident, projectID); err != nil {
		h.logError(r, "delete project failed", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	h.logger.Error(msg, "error", err, "path", r.URL.Path)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id")
	}
	return id, nil
}
