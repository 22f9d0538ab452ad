package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"praxis/internal/catalog"
	"praxis/internal/platform/middleware"
	"praxis/internal/progress/service"
	"praxis/internal/transport/http/shared"
	dErrors "praxis/pkg/domain-errors"
)

// Service defines the interface for module progression operations.
type Service interface {
	List(ctx context.Context, userID string) ([]service.ModuleStatus, error)
	Get(ctx context.Context, userID, slug string) (service.ModuleStatus, string, error)
	MarkCompleted(ctx context.Context, userID, slug string) (service.Completion, error)
}

// Handler handles module catalog and progression endpoints.
type Handler struct {
	logger   *slog.Logger
	progress Service
}

// New creates a new progress Handler.
func New(progress Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, progress: progress}
}

// Register registers the module routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/modules", h.handleList)
	r.Get("/api/modules/{slug}", h.handleGet)
	r.Post("/api/modules/{slug}/complete", h.handleComplete)
}

type moduleResponse struct {
	*catalog.Module
	Completed bool   `json:"completed"`
	Next      string `json:"next,omitempty"`
}

type listResponse struct {
	Modules []moduleResponse `json:"modules"`
}

type completeResponse struct {
	Slug             string   `json:"slug"`
	CompletedModules []string `json:"completedModules"`
	Next             string   `json:"next"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	statuses, err := h.progress.List(ctx, userID)
	if err != nil {
		h.logError(r, "failed to list modules", err)
		shared.WriteError(w, err)
		return
	}

	resp := listResponse{Modules: make([]moduleResponse, 0, len(statuses))}
	for _, st := range statuses {
		resp.Modules = append(resp.Modules, moduleResponse{Module: st.Module, Completed: st.Completed})
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	slug := chi.URLParam(r, "slug")
	status, next, err := h.progress.Get(ctx, userID, slug)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logError(r, "failed to load module", err)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, moduleResponse{Module: status.Module, Completed: status.Completed, Next: next})
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	slug := chi.URLParam(r, "slug")
	completion, err := h.progress.MarkCompleted(ctx, userID, slug)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logError(r, "failed to complete module", err)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, completeResponse{
		Slug:             completion.Slug,
		CompletedModules: completion.CompletedModules,
		Next:             completion.Next,
	})
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
}
