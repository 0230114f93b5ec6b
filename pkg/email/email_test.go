package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Alice.Smith@example.com", Normalize("  Alice.Smith@EXAMPLE.com "))
	assert.Equal(t, "no-at-sign", Normalize("no-at-sign"))
}

func TestValid(t *testing.T) {
	for _, addr := range []string{"alice@example.com", "a.b+tag@mail.example.org"} {
		assert.True(t, Valid(addr), addr)
	}
	for _, addr := range []string{"", "alice", "alice@", "alice@localhost", "Alice <alice@example.com>", "alice@example."} {
		assert.False(t, Valid(addr), addr)
	}
}
