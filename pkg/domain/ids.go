// Package domain holds identifier types shared across modules.
package domain

import (
	"strconv"
	"strings"

	dErrors "callerid/pkg/domain-errors"
)

// UserID identifies a registered account. Zero is never a valid id.
type UserID int64

// ContactID identifies a private address-book entry.
type ContactID int64

// ReportID identifies a single spam report row.
type ReportID int64

func (u UserID) String() string    { return strconv.FormatInt(int64(u), 10) }
func (c ContactID) String() string { return strconv.FormatInt(int64(c), 10) }
func (r ReportID) String() string  { return strconv.FormatInt(int64(r), 10) }

// IsZero reports whether the id is unset.
func (u UserID) IsZero() bool { return u == 0 }

// ParseUserID validates an id taken from a path parameter or token claim.
func ParseUserID(s string) (UserID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "user id must be an integer")
	}
	if n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "user id must be positive")
	}
	return UserID(n), nil
}
