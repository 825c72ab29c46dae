package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"regdesk/internal/registration/models"
	"regdesk/internal/registration/validate"
)

// Service is the registration operation the handler delegates to.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) models.RegisterResponse
}

// Handler is the thin HTTP layer over the registration service. It owns
// decoding and the response envelope; all business rules live in the service.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the public routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)
	r.Post("/register", h.handleRegister)
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Backend is running"))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("OK"))
}

// handleRegister always answers HTTP 200 with a {success, message} body for
// handled outcomes; the form branches on the success flag, never the status
// code. An undecodable body is treated like any other incomplete submission.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "undecodable register request", "error", err)
		h.writeJSON(ctx, w, models.RegisterResponse{
			Success: false,
			Message: validate.MessageFillAllFields,
		})
		return
	}

	h.writeJSON(ctx, w, h.service.Register(ctx, req))
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, resp models.RegisterResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
