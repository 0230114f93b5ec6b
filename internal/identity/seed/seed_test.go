package seed

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callerid/internal/auth/password"
	"callerid/internal/identity/store"
)

func TestPopulate(t *testing.T) {
	ctx := context.Background()
	st := store.NewInMemory()
	hasher := password.NewHasher(4)

	users, err := Populate(ctx, st, hasher, 20, rand.New(rand.NewPCG(1, 2)), time.Now())
	require.NoError(t, err)
	require.Len(t, users, 20)

	count, err := st.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)

	phones := map[string]bool{}
	for _, u := range users {
		assert.False(t, phones[u.Phone], "phones are unique")
		phones[u.Phone] = true
		assert.NoError(t, hasher.Verify(DefaultPassword, u.PasswordHash))
	}
}
