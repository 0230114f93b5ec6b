package models

import (
	"strings"
	"time"

	id "callerid/pkg/domain"
	dErrors "callerid/pkg/domain-errors"
)

// User is a registered account. Phone is unique across users and is the key
// every other record joins on.
type User struct {
	ID           id.UserID
	Name         string
	Phone        string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser builds a user for registration. The id is assigned by the store.
func NewUser(name, phone, email, passwordHash string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "name cannot be empty")
	}
	if phone == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "phone cannot be empty")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash cannot be empty")
	}
	return &User{
		Name:         name,
		Phone:        phone,
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}
