// Package seed fills an identity store with generated accounts for local
// development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"callerid/internal/identity/models"
	"callerid/pkg/platform/sentinel"
)

const DefaultPassword = "password123"

type UserCreator interface {
	CreateUser(ctx context.Context, user *models.User) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

var (
	firstNames = []string{"Alice", "Aarav", "Bianca", "Chen", "Diego", "Elena", "Farah", "Gustav", "Hana", "Ivan",
		"Jamal", "Keiko", "Liam", "Maya", "Nikhil", "Olga", "Priya", "Quentin", "Rosa", "Samir"}
	lastNames = []string{"Anderson", "Bose", "Costa", "Dubois", "Eriksen", "Fischer", "Garcia", "Hughes", "Ito",
		"Jensen", "Kapoor", "Lopez", "Moreau", "Novak", "Okafor", "Patel", "Rossi", "Silva", "Tanaka", "Weber"}
)

// Populate inserts n users sharing one password. Phones that already exist
// are skipped and do not count towards n.
func Populate(ctx context.Context, users UserCreator, hasher PasswordHasher, n int, rng *rand.Rand, now time.Time) ([]*models.User, error) {
	hash, err := hasher.Hash(DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	created := make([]*models.User, 0, n)
	for attempts := 0; len(created) < n; attempts++ {
		if attempts > n*10 {
			return created, fmt.Errorf("gave up after %d attempts with %d users created", attempts, len(created))
		}
		first := firstNames[rng.IntN(len(firstNames))]
		last := lastNames[rng.IntN(len(lastNames))]
		phone := fmt.Sprintf("+1555%07d", rng.IntN(10_000_000))
		email := strings.ToLower(first+"."+last) + "@example.com"

		user, err := models.NewUser(first+" "+last, phone, email, hash, now)
		if err != nil {
			return created, err
		}
		if err := users.CreateUser(ctx, user); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				continue
			}
			return created, fmt.Errorf("create seed user: %w", err)
		}
		created = append(created, user)
	}
	return created, nil
}
