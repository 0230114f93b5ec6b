package models

import (
	"regexp"
	"strings"
	"unicode"

	dErrors "callerid/pkg/domain-errors"
	"callerid/pkg/email"
)

const minPasswordLength = 6

var phoneShape = regexp.MustCompile(`^\+?[0-9][0-9 \-]*[0-9]$`)

// ValidPhone accepts an optional leading +, digits with spaces or dashes, and
// 7 to 15 digits in total.
func ValidPhone(phone string) bool {
	if !phoneShape.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = email.Normalize(r.Email)
}

func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "Name is required")
	}
	if !ValidPhone(r.Phone) {
		return dErrors.New(dErrors.CodeValidation, "A valid phone number is required")
	}
	if r.Email != "" && !email.Valid(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid address")
	}
	if len(r.Password) < minPasswordLength {
		return dErrors.New(dErrors.CodeValidation, "Password should be at least 6 characters long")
	}
	return nil
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r *LoginRequest) Validate() error {
	if !ValidPhone(r.Phone) {
		return dErrors.New(dErrors.CodeValidation, "A valid phone number is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "Password is required")
	}
	return nil
}
