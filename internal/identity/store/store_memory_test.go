package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"callerid/internal/identity/models"
	id "callerid/pkg/domain"
	"callerid/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) addUser(name, phone string) *models.User {
	u := &models.User{Name: name, Phone: phone, Email: name + "@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	return u
}

func (s *InMemoryStoreSuite) TestUsers() {
	s.Run("assigns ids and finds by id and phone", func() {
		ann := s.addUser("Ann", "+100")
		bob := s.addUser("Bob", "+200")
		s.Equal(id.UserID(1), ann.ID)
		s.Equal(id.UserID(2), bob.ID)

		found, err := s.store.FindUserByPhone(s.ctx, "+200")
		s.Require().NoError(err)
		s.Equal(bob.ID, found.ID)

		found, err = s.store.FindUserByID(s.ctx, ann.ID)
		s.Require().NoError(err)
		s.Equal("Ann", found.Name)
	})

	s.Run("duplicate phone is a conflict", func() {
		err := s.store.CreateUser(s.ctx, &models.User{Name: "Dup", Phone: "+100", PasswordHash: "x"})
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("unknown lookups return ErrNotFound", func() {
		_, err := s.store.FindUserByPhone(s.ctx, "+999")
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindUserByID(s.ctx, 99)
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindUserByID(s.ctx, 0)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned users are copies", func() {
		found, err := s.store.FindUserByPhone(s.ctx, "+100")
		s.Require().NoError(err)
		found.Name = "mutated"
		again, err := s.store.FindUserByPhone(s.ctx, "+100")
		s.Require().NoError(err)
		s.Equal("Ann", again.Name)
	})
}

func (s *InMemoryStoreSuite) TestNameMatching() {
	s.addUser("Alice Smith", "+1")
	s.addUser("Malik Ali", "+2")
	s.addUser("bob", "+3")

	prefix, err := s.store.FindUsersByNamePrefix(s.ctx, "ALI")
	s.Require().NoError(err)
	s.Require().Len(prefix, 1)
	s.Equal("+1", prefix[0].Phone)

	contains, err := s.store.FindUsersByNameSubstring(s.ctx, "ali")
	s.Require().NoError(err)
	s.Require().Len(contains, 2)
	s.Equal("+1", contains[0].Phone)
	s.Equal("+2", contains[1].Phone)

	none, err := s.store.FindUsersByNamePrefix(s.ctx, "zed")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *InMemoryStoreSuite) TestContactsAndReports() {
	s.Require().NoError(s.store.CreateContact(s.ctx, &models.Contact{OwnerID: 1, Name: "Plumber", Phone: "+9"}))
	s.Require().NoError(s.store.CreateContact(s.ctx, &models.Contact{OwnerID: 2, Name: "Joe", Phone: "+9"}))
	s.Require().NoError(s.store.CreateContact(s.ctx, &models.Contact{OwnerID: 1, Name: "Mum", Phone: "+8"}))

	byPhone, err := s.store.FindContactsByPhone(s.ctx, "+9")
	s.Require().NoError(err)
	s.Len(byPhone, 2)

	byOwner, err := s.store.FindContactsByOwner(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(byOwner, 2)
	s.Equal("Plumber", byOwner[0].Name)
	s.Equal("Mum", byOwner[1].Name)

	for range 3 {
		s.Require().NoError(s.store.CreateSpamReport(s.ctx, &models.SpamReport{ReporterID: 1, Phone: "+9"}))
	}
	n, err := s.store.CountSpamReportsByPhone(s.ctx, "+9")
	s.Require().NoError(err)
	s.Equal(3, n)

	counts, err := s.store.CountSpamReportsByPhones(s.ctx, []string{"+9", "+8"})
	s.Require().NoError(err)
	s.Equal(map[string]int{"+9": 3, "+8": 0}, counts)
}
