//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"callerid/internal/identity/models"
	"callerid/internal/identity/store"
	"callerid/pkg/platform/sentinel"
	"callerid/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "spam_reports", "contacts", "users")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) addUser(name, phone string) *models.User {
	u, err := models.NewUser(name, phone, name+"@example.com", "hash", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateUser(context.Background(), u))
	return u
}

func (s *PostgresStoreSuite) TestUniquePhone() {
	ctx := context.Background()
	s.addUser("Ann", "+15550001")

	dup, _ := models.NewUser("Other", "+15550001", "", "hash", time.Now())
	s.ErrorIs(s.store.CreateUser(ctx, dup), sentinel.ErrConflict)
}

// TestConcurrentRegistrationSamePhone verifies exactly one insert wins.
func (s *PostgresStoreSuite) TestConcurrentRegistrationSamePhone() {
	ctx := context.Background()
	const goroutines = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, _ := models.NewUser("Racer", "+15559999", "", "hash", time.Now())
			err := s.store.CreateUser(ctx, u)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if s.ErrorIs(err, sentinel.ErrConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(goroutines-1, conflicts)
}

func (s *PostgresStoreSuite) TestNameSearchIsCaseInsensitiveAndLiteral() {
	ctx := context.Background()
	s.addUser("Alice Smith", "+1")
	s.addUser("Malik Ali", "+2")
	s.addUser("100% Real", "+3")

	prefix, err := s.store.FindUsersByNamePrefix(ctx, "ALI")
	s.Require().NoError(err)
	s.Require().Len(prefix, 1)
	s.Equal("+1", prefix[0].Phone)

	contains, err := s.store.FindUsersByNameSubstring(ctx, "ali")
	s.Require().NoError(err)
	s.Len(contains, 2)

	literal, err := s.store.FindUsersByNameSubstring(ctx, "0%")
	s.Require().NoError(err)
	s.Require().Len(literal, 1)
	s.Equal("+3", literal[0].Phone)

	wildcard, err := s.store.FindUsersByNameSubstring(ctx, "_")
	s.Require().NoError(err)
	s.Empty(wildcard)
}

func (s *PostgresStoreSuite) TestContactsAndSpamCounts() {
	ctx := context.Background()
	owner := s.addUser("Owner", "+10")
	other := s.addUser("Other", "+11")

	c1, _ := models.NewContact(owner.ID, "Plumber", "+77", time.Now())
	c2, _ := models.NewContact(other.ID, "Joe", "+77", time.Now())
	s.Require().NoError(s.store.CreateContact(ctx, c1))
	s.Require().NoError(s.store.CreateContact(ctx, c2))

	byPhone, err := s.store.FindContactsByPhone(ctx, "+77")
	s.Require().NoError(err)
	s.Len(byPhone, 2)

	byOwner, err := s.store.FindContactsByOwner(ctx, owner.ID)
	s.Require().NoError(err)
	s.Require().Len(byOwner, 1)
	s.Equal("Plumber", byOwner[0].Name)

	for range 2 {
		r, _ := models.NewSpamReport(owner.ID, "+77", time.Now())
		s.Require().NoError(s.store.CreateSpamReport(ctx, r))
	}
	n, err := s.store.CountSpamReportsByPhone(ctx, "+77")
	s.Require().NoError(err)
	s.Equal(2, n)

	counts, err := s.store.CountSpamReportsByPhones(ctx, []string{"+77", "+10"})
	s.Require().NoError(err)
	s.Equal(map[string]int{"+77": 2, "+10": 0}, counts)
}

func (s *PostgresStoreSuite) TestMissingRowsAreNotFound() {
	ctx := context.Background()
	_, err := s.store.FindUserByID(ctx, 12345)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindUserByPhone(ctx, "+0")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
