package accesskey

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"praxis/internal/platform/middleware"
	"praxis/internal/transport/http/shared"
	dErrors "praxis/pkg/domain-errors"
)

// Handler exposes the access key gate over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the access key Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register registers the access key route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/access-key", h.handleValidate)
}

type validateRequest struct {
	Key string `json:"key"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.Validate(ctx, middleware.GetUserID(ctx), req.Key); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, validateResponse{Valid: true})
}
