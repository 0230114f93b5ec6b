package models

import (
	"time"

	dErrors "callerid/pkg/domain-errors"
)

// Policy is a sliding-window request budget.
type Policy struct {
	Limit  int
	Window time.Duration
}

// DefaultPolicy allows 100 requests per client IP per 15 minutes.
var DefaultPolicy = Policy{Limit: 100, Window: 15 * time.Minute}

func (p Policy) Validate() error {
	if p.Limit <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "rate limit must be positive")
	}
	if p.Window <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "rate limit window must be positive")
	}
	return nil
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// RateLimitExceededResponse is the 429 body.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

const ipKeyPrefix = "rl:ip:"

// KeyForIP is the bucket key for a client address.
func KeyForIP(ip string) string {
	if ip == "" {
		ip = "unknown"
	}
	return ipKeyPrefix + ip
}
