package store

import (
	"context"
	"strings"
	"sync"

	"callerid/internal/identity/models"
	id "callerid/pkg/domain"
	"callerid/pkg/platform/sentinel"
)

// InMemory keeps users, contacts and spam reports in process. Rows are kept in
// insertion order, which matches id order, so list results are id ascending
// like the Postgres store.
type InMemory struct {
	mu sync.RWMutex

	users        []*models.User
	usersByPhone map[string]int
	contacts     []*models.Contact
	reports      []*models.SpamReport

	nextUserID    int64
	nextContactID int64
	nextReportID  int64
}

func NewInMemory() *InMemory {
	return &InMemory{usersByPhone: make(map[string]int)}
}

func (s *InMemory) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.usersByPhone[user.Phone]; taken {
		return sentinel.ErrConflict
	}
	s.nextUserID++
	user.ID = id.UserID(s.nextUserID)
	u := *user
	s.users = append(s.users, &u)
	s.usersByPhone[u.Phone] = len(s.users) - 1
	return nil
}

func (s *InMemory) FindUserByPhone(_ context.Context, phone string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx, ok := s.usersByPhone[phone]; ok {
		u := *s.users[idx]
		return &u, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindUserByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// ids are dense and start at 1
	idx := int(userID) - 1
	if idx < 0 || idx >= len(s.users) {
		return nil, sentinel.ErrNotFound
	}
	u := *s.users[idx]
	return &u, nil
}

func (s *InMemory) FindUsersByNamePrefix(_ context.Context, prefix string) ([]*models.User, error) {
	prefix = strings.ToLower(prefix)
	return s.filterUsers(func(u *models.User) bool {
		return strings.HasPrefix(strings.ToLower(u.Name), prefix)
	}), nil
}

func (s *InMemory) FindUsersByNameSubstring(_ context.Context, fragment string) ([]*models.User, error) {
	fragment = strings.ToLower(fragment)
	return s.filterUsers(func(u *models.User) bool {
		return strings.Contains(strings.ToLower(u.Name), fragment)
	}), nil
}

func (s *InMemory) filterUsers(match func(*models.User) bool) []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0)
	for _, u := range s.users {
		if match(u) {
			c := *u
			out = append(out, &c)
		}
	}
	return out
}

func (s *InMemory) CreateContact(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextContactID++
	contact.ID = id.ContactID(s.nextContactID)
	c := *contact
	s.contacts = append(s.contacts, &c)
	return nil
}

func (s *InMemory) FindContactsByPhone(_ context.Context, phone string) ([]*models.Contact, error) {
	return s.filterContacts(func(c *models.Contact) bool { return c.Phone == phone }), nil
}

func (s *InMemory) FindContactsByOwner(_ context.Context, owner id.UserID) ([]*models.Contact, error) {
	return s.filterContacts(func(c *models.Contact) bool { return c.OwnerID == owner }), nil
}

func (s *InMemory) filterContacts(match func(*models.Contact) bool) []*models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Contact, 0)
	for _, c := range s.contacts {
		if match(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out
}

func (s *InMemory) CreateSpamReport(_ context.Context, report *models.SpamReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextReportID++
	report.ID = id.ReportID(s.nextReportID)
	r := *report
	s.reports = append(s.reports, &r)
	return nil
}

func (s *InMemory) CountSpamReportsByPhone(_ context.Context, phone string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.reports {
		if r.Phone == phone {
			n++
		}
	}
	return n, nil
}

// CountSpamReportsByPhones returns a count for every requested phone,
// including zero counts.
func (s *InMemory) CountSpamReportsByPhones(_ context.Context, phones []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int, len(phones))
	for _, p := range phones {
		counts[p] = 0
	}
	for _, r := range s.reports {
		if _, wanted := counts[r.Phone]; wanted {
			counts[r.Phone]++
		}
	}
	return counts, nil
}

// CountUsers is used by the seed command and health output.
func (s *InMemory) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
