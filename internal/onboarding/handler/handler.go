package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"praxis/internal/onboarding/models"
	"praxis/internal/onboarding/service"
	"praxis/internal/platform/middleware"
	"praxis/internal/transport/http/shared"
	dErrors "praxis/pkg/domain-errors"
)

// Service defines the interface for onboarding operations.
type Service interface {
	Advance(ctx context.Context, userID string, step int, answers models.Answers) (service.Result, error)
	Skip(ctx context.Context, userID string, answers models.Answers) (service.Result, error)
}

// Handler handles onboarding wizard endpoints.
type Handler struct {
	logger     *slog.Logger
	onboarding Service
}

// New creates a new onboarding Handler.
func New(onboarding Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, onboarding: onboarding}
}

// Register registers the onboarding routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/onboarding/advance", h.handleAdvance)
	r.Post("/api/onboarding/skip", h.handleSkip)
}

type advanceRequest struct {
	Step    int            `json:"step"`
	Answers models.Answers `json:"answers"`
}

type skipRequest struct {
	Answers models.Answers `json:"answers"`
}

type wizardResponse struct {
	State     string `json:"state"`
	Finalized bool   `json:"finalized"`
	Redirect  string `json:"redirect,omitempty"`
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid advance request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	res, err := h.onboarding.Advance(ctx, userID, req.Step, req.Answers)
	if err != nil {
		h.writeServiceError(w, r, "advance failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toWizardResponse(res))
}

func (h *Handler) handleSkip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	// Skip may arrive with an empty body when no answers were collected.
	var req skipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	res, err := h.onboarding.Skip(ctx, userID, req.Answers)
	if err != nil {
		h.writeServiceError(w, r, "skip failed", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toWizardResponse(res))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeBadRequest) {
		h.logger.WarnContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	shared.WriteError(w, err)
}

func toWizardResponse(res service.Result) wizardResponse {
	return wizardResponse{
		State:     res.State.String(),
		Finalized: res.State.Terminal(),
		Redirect:  res.Redirect,
	}
}
