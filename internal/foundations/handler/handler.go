package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"praxis/internal/platform/middleware"
	profilemodels "praxis/internal/profile/models"
	"praxis/internal/transport/http/shared"
	dErrors "praxis/pkg/domain-errors"
)

// Service defines the interface for foundations operations.
type Service interface {
	Overview(ctx context.Context, userID string) (*profilemodels.Profile, error)
	UpdateField(ctx context.Context, userID string, field profilemodels.Field, value string) (bool, error)
}

// Navigator resolves where the dashboard should send the user next.
type Navigator interface {
	Resume(ctx context.Context, userID string) (string, error)
}

// Handler handles the foundations dashboard endpoints.
type Handler struct {
	logger      *slog.Logger
	foundations Service
	navigator   Navigator
}

// New creates a new foundations Handler.
func New(foundations Service, navigator Navigator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, foundations: foundations, navigator: navigator}
}

// Register registers the foundations routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/foundations", h.handleOverview)
	r.Patch("/api/foundations/{field}", h.handleUpdateField)
}

type overviewResponse struct {
	Domain             string     `json:"domain"`
	Constraint         string     `json:"constraint"`
	Goal               string     `json:"goal"`
	CompletedModules   []string   `json:"completedModules"`
	OnboardingComplete bool       `json:"onboardingComplete"`
	OnboardingDate     *time.Time `json:"onboardingDate,omitempty"`
	Resume             string     `json:"resume"`
}

type updateFieldRequest struct {
	Value string `json:"value"`
}

type updateFieldResponse struct {
	Field   string `json:"field"`
	Updated bool   `json:"updated"`
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.foundations.Overview(ctx, userID)
	if err != nil {
		h.logError(r, "failed to load foundations", err)
		shared.WriteError(w, err)
		return
	}
	resume, err := h.navigator.Resume(ctx, userID)
	if err != nil {
		h.logError(r, "failed to resolve resume target", err)
		shared.WriteError(w, err)
		return
	}

	completed := profile.Foundations.CompletedModules
	if completed == nil {
		completed = []string{}
	}
	shared.WriteJSON(w, http.StatusOK, overviewResponse{
		Domain:             profile.Foundations.Domain,
		Constraint:         profile.Foundations.Constraint,
		Goal:               profile.Foundations.Goal,
		CompletedModules:   completed,
		OnboardingComplete: profile.OnboardingComplete,
		OnboardingDate:     profile.OnboardingDate,
		Resume:             resume,
	})
}

func (h *Handler) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	field, ok := profilemodels.ParseField(chi.URLParam(r, "field"))
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown field"))
		return
	}

	var req updateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.foundations.UpdateField(ctx, userID, field, req.Value)
	if err != nil {
		h.logError(r, "failed to update field", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, updateFieldResponse{Field: string(field), Updated: updated})
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	ctx := r.Context()
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		h.logger.WarnContext(ctx, msg, "request_id", middleware.GetRequestID(ctx), "error", err.Error())
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}
