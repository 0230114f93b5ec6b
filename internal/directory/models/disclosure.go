package models

import (
	"encoding/json"
	"errors"
)

// ErrWithheld is returned when a withheld email is marshalled directly.
// Response types must tag the field with omitzero so it never gets that far.
var ErrWithheld = errors.New("email withheld from requester")

// Email carries a disclosure decision alongside the address. The zero value
// is withheld, so forgetting to decide never leaks the address.
type Email struct {
	address   string
	disclosed bool
}

// Disclose marks the address as visible to the requester. An empty address
// is still disclosed and serializes as "".
func Disclose(address string) Email {
	return Email{address: address, disclosed: true}
}

// Withhold is the explicit form of the zero value.
func Withhold() Email {
	return Email{}
}

// IsZero reports whether the email is withheld. encoding/json consults it for
// fields tagged omitzero.
func (e Email) IsZero() bool {
	return !e.disclosed
}

func (e Email) Disclosed() bool {
	return e.disclosed
}

// Value returns the address and whether it may be shown.
func (e Email) Value() (string, bool) {
	if !e.disclosed {
		return "", false
	}
	return e.address, true
}

func (e Email) MarshalJSON() ([]byte, error) {
	if !e.disclosed {
		return nil, ErrWithheld
	}
	return json.Marshal(e.address)
}

func (e Email) String() string {
	if !e.disclosed {
		return "<withheld>"
	}
	return e.address
}
