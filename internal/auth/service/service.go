// Package service registers accounts, checks credentials and issues bearer
// tokens.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"callerid/internal/auth/models"
	"callerid/internal/auth/password"
	idmodels "callerid/internal/identity/models"
	"callerid/pkg/attrs"
	id "callerid/pkg/domain"
	dErrors "callerid/pkg/domain-errors"
	audit "callerid/pkg/platform/audit"
	"callerid/pkg/platform/sentinel"
	"callerid/pkg/requestcontext"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *idmodels.User) error
	FindUserByPhone(ctx context.Context, phone string) (*idmodels.User, error)
	FindUserByID(ctx context.Context, userID id.UserID) (*idmodels.User, error)
}

type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, phone string, expiresIn time.Duration) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const defaultTokenTTL = time.Hour

type Service struct {
	users          UserStore
	tokens         TokenIssuer
	hasher         *password.Hasher
	tokenTTL       time.Duration
	logger         *slog.Logger
	auditPublisher AuditPublisher
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

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

func WithHasher(h *password.Hasher) Option {
	return func(s *Service) {
		s.hasher = h
	}
}

func New(users UserStore, tokens TokenIssuer, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, errors.New("user store is required")
	}
	if tokens == nil {
		return nil, errors.New("token issuer is required")
	}
	s := &Service{
		users:    users,
		tokens:   tokens,
		hasher:   password.NewHasher(0),
		tokenTTL: defaultTokenTTL,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TokenTTL is the lifetime of issued access tokens.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Register creates an account. A phone already taken is a conflict.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*idmodels.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if dErrors.CodeOf(err) != dErrors.CodeInternal {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	user, err := idmodels.NewUser(req.Name, req.Phone, req.Email, hash, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "User already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create user")
	}

	s.logAudit(ctx, audit.EventUserRegistered, user.ID, user.Phone)
	return user, nil
}

// Login returns a bearer token. An unknown phone is NotFound and a wrong
// password is Unauthorized.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}

	user, err := s.users.FindUserByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logAudit(ctx, audit.EventAuthFailed, 0, req.Phone, "reason", "unknown_phone")
			return "", dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load user")
	}

	if err := s.hasher.Verify(req.Password, user.PasswordHash); err != nil {
		s.logAudit(ctx, audit.EventAuthFailed, user.ID, user.Phone, "reason", "bad_password")
		if errors.Is(err, password.ErrMismatch) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify credentials")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Phone, s.tokenTTL)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	s.logAudit(ctx, audit.EventLoginSucceeded, user.ID, user.Phone)
	return token, nil
}

// Profile returns the caller's own account.
func (s *Service) Profile(ctx context.Context, userID id.UserID) (*idmodels.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load user")
	}
	return user, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, userID id.UserID, subject string, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		attributes = append(attributes, "client_ip", ip)
	}
	args := append(attributes, "event", string(event), "user_id", userID.String(), "log_type", "audit")
	if event == audit.EventAuthFailed {
		s.logger.WarnContext(ctx, string(event), args...)
	} else {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		UserID:    userID,
		Subject:   subject,
		Action:    string(event),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: requestID,
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
