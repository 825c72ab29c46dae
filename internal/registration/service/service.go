package service

import (
	"context"
	"errors"
	"log/slog"

	"regdesk/internal/platform/metrics"
	"regdesk/internal/registration/models"
	"regdesk/internal/registration/validate"
	"regdesk/pkg/platform/sentinel"
)

// Response messages. Clients display these verbatim, so they never carry
// store internals.
const (
	MessageRegistered        = "Registered successfully!"
	MessageAlreadyRegistered = "You have already registered."
	MessageFailed            = "Registration failed. Try again later."
)

// Store is the record store capability the service needs: one lookup, one
// conditional insert.
type Store interface {
	FindByEmailOrAdmissionNo(ctx context.Context, email, admissionNo string) (*models.Registrant, error)
	Create(ctx context.Context, registrant *models.Registrant) error
}

// Service handles registrations. It is stateless per request: everything
// either lives on the request or is delegated to the store.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates the request, rejects duplicates, and inserts one
// registrant. Every handled outcome is a response envelope, never a fault:
// callers branch on Success only.
//
// The duplicate pre-check runs before the insert, but atomicity comes from
// the store's uniqueness constraint: a racing writer that slips past the
// pre-check loses the insert and is reported as already registered.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) models.RegisterResponse {
	if msg := validate.Server(validate.Fields(req)); msg != "" {
		s.metrics.RecordRegistration(metrics.OutcomeInvalid)
		return models.RegisterResponse{Success: false, Message: msg}
	}

	existing, err := s.store.FindByEmailOrAdmissionNo(ctx, req.Email, req.AdmissionNo)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.ErrorContext(ctx, "duplicate check failed", "error", err)
		s.metrics.RecordRegistration(metrics.OutcomeFailed)
		return models.RegisterResponse{Success: false, Message: MessageFailed}
	}
	if existing != nil {
		s.metrics.RecordRegistration(metrics.OutcomeDuplicate)
		return models.RegisterResponse{Success: false, Message: MessageAlreadyRegistered}
	}

	registrant := models.NewRegistrant(req)
	if err := s.store.Create(ctx, registrant); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.RecordRegistration(metrics.OutcomeDuplicate)
			return models.RegisterResponse{Success: false, Message: MessageAlreadyRegistered}
		}
		s.logger.ErrorContext(ctx, "insert failed", "error", err, "registrant_id", registrant.ID)
		s.metrics.RecordRegistration(metrics.OutcomeFailed)
		return models.RegisterResponse{Success: false, Message: MessageFailed}
	}

	s.logger.InfoContext(ctx, "registrant created", "registrant_id", registrant.ID)
	s.metrics.RecordRegistration(metrics.OutcomeRegistered)
	return models.RegisterResponse{Success: true, Message: MessageRegistered}
}
