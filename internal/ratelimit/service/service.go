// Package service applies the per-IP request budget.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"callerid/internal/ratelimit/metrics"
	"callerid/internal/ratelimit/models"
	audit "callerid/pkg/platform/audit"
	"callerid/pkg/requestcontext"
)

// BucketStore is the sliding-window counter backing the limiter.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	buckets        BucketStore
	policy         models.Policy
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(*Service)

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

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(buckets BucketStore, policy models.Policy, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, fmt.Errorf("bucket store is required")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	s := &Service{buckets: buckets, policy: policy, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CheckIPRateLimit consumes one request from the client's budget.
func (s *Service) CheckIPRateLimit(ctx context.Context, ip string) (*models.RateLimitResult, error) {
	result, err := s.buckets.Allow(ctx, models.KeyForIP(ip), s.policy.Limit, s.policy.Window)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementStoreErrors()
		}
		return nil, fmt.Errorf("check ip rate limit: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordDecision(result.Allowed)
	}
	if !result.Allowed {
		s.logAudit(ctx, ip, result)
	}
	return result, nil
}

func (s *Service) logAudit(ctx context.Context, ip string, result *models.RateLimitResult) {
	requestID := requestcontext.RequestID(ctx)
	s.logger.WarnContext(ctx, string(audit.EventRateLimitExceeded),
		"client_ip", ip,
		"retry_after", result.RetryAfter,
		"request_id", requestID,
		"log_type", "audit",
	)
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:    string(audit.EventRateLimitExceeded),
		Subject:   ip,
		Decision:  "blocked",
		RequestID: requestID,
	})
}
