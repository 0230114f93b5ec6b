package models

import (
	id "callerid/pkg/domain"
)

// NameMatch is one row of a name search. Email is never part of it.
type NameMatch struct {
	Name           string
	Phone          string
	SpamLikelihood int
}

// RegisteredMatch is the phone search result when an account owns the phone.
type RegisteredMatch struct {
	ID             id.UserID
	Name           string
	Phone          string
	Email          Email
	SpamLikelihood int
}

// ContactMatch is a phone search result taken from someone's contact book.
type ContactMatch struct {
	Name  string
	Phone string
}

// PhoneLookup holds exactly one of Registered or Contacts.
type PhoneLookup struct {
	Registered *RegisteredMatch
	Contacts   []ContactMatch
}

// IsRegistered reports whether the phone belongs to an account.
func (p PhoneLookup) IsRegistered() bool {
	return p.Registered != nil
}

// Profile is the by-id view of a user as seen by a specific requester.
type Profile struct {
	ID             id.UserID
	Name           string
	Phone          string
	SpamLikelihood int
	Email          Email
}
