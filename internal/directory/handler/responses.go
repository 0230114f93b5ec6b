package handler

import (
	"time"

	"callerid/internal/directory/models"
	idmodels "callerid/internal/identity/models"
)

type NameMatchResponse struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	SpamLikelihood int    `json:"spamLikelihood"`
}

type SearchResultsResponse[T any] struct {
	Results []T `json:"results"`
}

// RegisteredUserResponse is the phone search hit for an account holder.
type RegisteredUserResponse struct {
	Name           string       `json:"name"`
	Phone          string       `json:"phone"`
	Email          models.Email `json:"email,omitzero"`
	SpamLikelihood int          `json:"spamLikelihood"`
}

type ContactMatchResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UserDetailsResponse omits the email key entirely when it is withheld.
type UserDetailsResponse struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Phone          string       `json:"phone"`
	SpamLikelihood int          `json:"spamLikelihood"`
	Email          models.Email `json:"email,omitzero"`
}

type UserEnvelope struct {
	User UserDetailsResponse `json:"user"`
}

type SpamReportResponse struct {
	ID         int64     `json:"id"`
	ReporterID int64     `json:"reporterId"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReportSpamResponse struct {
	Message    string             `json:"message"`
	SpamReport SpamReportResponse `json:"spamReport"`
}

type ContactResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"userId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddContactResponse struct {
	Message string          `json:"message"`
	Contact ContactResponse `json:"contact"`
}

type ContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

func toNameMatches(in []models.NameMatch) []NameMatchResponse {
	out := make([]NameMatchResponse, len(in))
	for i, m := range in {
		out[i] = NameMatchResponse{Name: m.Name, Phone: m.Phone, SpamLikelihood: m.SpamLikelihood}
	}
	return out
}

func toContactMatches(in []models.ContactMatch) []ContactMatchResponse {
	out := make([]ContactMatchResponse, len(in))
	for i, m := range in {
		out[i] = ContactMatchResponse{Name: m.Name, Phone: m.Phone}
	}
	return out
}

func toUserDetails(p *models.Profile) UserDetailsResponse {
	return UserDetailsResponse{
		ID:             int64(p.ID),
		Name:           p.Name,
		Phone:          p.Phone,
		SpamLikelihood: p.SpamLikelihood,
		Email:          p.Email,
	}
}

func toContact(c *idmodels.Contact) ContactResponse {
	return ContactResponse{
		ID:        int64(c.ID),
		OwnerID:   int64(c.OwnerID),
		Name:      c.Name,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

func toContacts(in []*idmodels.Contact) []ContactResponse {
	out := make([]ContactResponse, len(in))
	for i, c := range in {
		out[i] = toContact(c)
	}
	return out
}
