package models

import (
	"strings"
	"time"

	id "callerid/pkg/domain"
	dErrors "callerid/pkg/domain-errors"
)

// Contact is one user's private record of a person at a phone number.
// Names are free text and unverified; only the phone is ever matched on.
type Contact struct {
	ID        id.ContactID
	OwnerID   id.UserID
	Name      string
	Phone     string
	CreatedAt time.Time
}

// NewContact validates a contact before insert.
func NewContact(owner id.UserID, name, phone string, now time.Time) (*Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact owner is required")
	}
	if name == "" || phone == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "name and phone number are required to add a contact")
	}
	return &Contact{OwnerID: owner, Name: name, Phone: phone, CreatedAt: now}, nil
}
