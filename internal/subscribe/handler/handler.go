package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"praxis/internal/platform/middleware"
	"praxis/internal/transport/http/shared"
	dErrors "praxis/pkg/domain-errors"
)

// maxEmailLength caps input before it reaches the service or the provider.
const maxEmailLength = 254

// Service defines the interface for subscription operations.
type Service interface {
	Subscribe(ctx context.Context, email, source string) error
}

// Handler handles the public subscribe endpoint.
type Handler struct {
	logger    *slog.Logger
	subscribe Service
}

// New creates a new subscribe Handler.
func New(subscribe Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, subscribe: subscribe}
}

// Register registers the subscribe route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/subscribe", h.handleSubscribe)
}

type subscribeRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeInvalidEmail(w)
		return
	}
	if !govalidator.IsByteLength(req.Email, 1, maxEmailLength) {
		h.writeInvalidEmail(w)
		return
	}

	if err := h.subscribe.Subscribe(ctx, req.Email, req.Source); err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			h.writeInvalidEmail(w)
			return
		}
		h.logger.ErrorContext(ctx, "subscribe failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeInvalidEmail emits the rejection body the embedding forms key off.
// Changing it breaks deployed clients.
func (h *Handler) writeInvalidEmail(w http.ResponseWriter) {
	shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid email"})
}
