// Package service resolves identities across registered users and private
// contact books and decides, per requester, which fields may be disclosed.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks IdentityStore,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"callerid/internal/directory/metrics"
	idmodels "callerid/internal/identity/models"
	id "callerid/pkg/domain"
	dErrors "callerid/pkg/domain-errors"
	audit "callerid/pkg/platform/audit"
	"callerid/pkg/platform/sentinel"
	"callerid/pkg/requestcontext"
)

// IdentityStore is the read/write surface the resolver needs. Absence of a
// single row is sentinel.ErrNotFound; empty lists are not errors.
type IdentityStore interface {
	FindUserByPhone(ctx context.Context, phone string) (*idmodels.User, error)
	FindUserByID(ctx context.Context, userID id.UserID) (*idmodels.User, error)
	FindUsersByNamePrefix(ctx context.Context, prefix string) ([]*idmodels.User, error)
	FindUsersByNameSubstring(ctx context.Context, fragment string) ([]*idmodels.User, error)
	FindContactsByPhone(ctx context.Context, phone string) ([]*idmodels.Contact, error)
	FindContactsByOwner(ctx context.Context, owner id.UserID) ([]*idmodels.Contact, error)
	CountSpamReportsByPhone(ctx context.Context, phone string) (int, error)
	CreateSpamReport(ctx context.Context, report *idmodels.SpamReport) error
	CreateContact(ctx context.Context, contact *idmodels.Contact) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const (
	opSearchByName  = "search_by_name"
	opSearchByPhone = "search_by_phone"
	opFetchByID     = "fetch_by_id"
	opReportSpam    = "report_spam"
	opAddContact    = "add_contact"
	opListContacts  = "list_contacts"

	defaultScoreConcurrency = 8
)

// Service is the disclosure resolver.
type Service struct {
	store          IdentityStore
	scorer         *SpamScorer
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer

	scoreConcurrency int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithScoreConcurrency bounds parallel spam count lookups when the store has
// no batch counter.
func WithScoreConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.scoreConcurrency = n
		}
	}
}

// New constructs a Service.
func New(store IdentityStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("identity store is required")
	}
	s := &Service{
		store:            store,
		logger:           slog.Default(),
		tracer:           otel.Tracer("callerid/internal/directory"),
		scoreConcurrency: defaultScoreConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scorer = NewSpamScorer(store, s.scoreConcurrency)
	return s, nil
}

// Scorer exposes the spam score calculator backing the resolver.
func (s *Service) Scorer() *SpamScorer {
	return s.scorer
}

func (s *Service) start(ctx context.Context, op string, requesterID id.UserID) (context.Context, trace.Span, time.Time) {
	ctx, span := s.tracer.Start(ctx, "directory."+op)
	span.SetAttributes(requesterAttr(requesterID))
	return ctx, span, time.Now()
}

func (s *Service) finish(span trace.Span, op string, start time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
	if s.metrics != nil {
		s.metrics.ObserveOperation(op, start)
	}
}

// storeFault converts a store error into StoreUnavailable.
func (s *Service) storeFault(ctx context.Context, op string, err error) error {
	s.logger.WarnContext(ctx, "identity store call failed",
		"operation", op,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementStoreFailure(op)
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "identity store unavailable")
}

func isNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}

// toValidation turns model invariant failures into caller-facing validation errors.
func toValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
	}
	return err
}

func (s *Service) logAudit(ctx context.Context, event audit.Event, attributes ...any) {
	event.RequestID = requestcontext.RequestID(ctx)
	if event.RequestID != "" {
		attributes = append(attributes, "request_id", event.RequestID)
	}
	if event.ActorID != "" {
		attributes = append(attributes, "actor_id", event.ActorID)
	}
	args := append(attributes, "event", event.Action, "user_id", event.UserID.String(), "log_type", "audit")
	s.logger.InfoContext(ctx, event.Action, args...)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}
