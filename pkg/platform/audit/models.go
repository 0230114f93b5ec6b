package audit

import (
	"context"
	"time"

	id "callerid/pkg/domain"
)

// EventCategory classifies audit events for retention and routing.
type EventCategory string

const (
	// CategoryCompliance covers account lifecycle and privacy decisions.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers failed logins and throttling.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine directory writes.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from services to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
	// ActorID is set when the acting user differs from UserID, e.g. the
	// requester who was shown another user's email.
	ActorID string
}

type AuditEvent string

const (
	EventUserRegistered    AuditEvent = "user_registered"
	EventLoginSucceeded    AuditEvent = "login_succeeded"
	EventAuthFailed        AuditEvent = "auth_failed"
	EventSpamReported      AuditEvent = "spam_reported"
	EventContactAdded      AuditEvent = "contact_added"
	EventEmailDisclosed    AuditEvent = "email_disclosed"
	EventRateLimitExceeded AuditEvent = "rate_limit_exceeded"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventUserRegistered:    CategoryCompliance,
	EventEmailDisclosed:    CategoryCompliance,
	EventAuthFailed:        CategorySecurity,
	EventRateLimitExceeded: CategorySecurity,
	EventLoginSucceeded:    CategoryOperations,
	EventSpamReported:      CategoryOperations,
	EventContactAdded:      CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader lists stored events for a user. Only queryable stores implement it.
type Reader interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
