package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy.Validate())
	assert.Error(t, Policy{Limit: 0, Window: time.Minute}.Validate())
	assert.Error(t, Policy{Limit: 1}.Validate())
}

func TestKeyForIP(t *testing.T) {
	assert.Equal(t, "rl:ip:203.0.113.9", KeyForIP("203.0.113.9"))
	assert.Equal(t, "rl:ip:unknown", KeyForIP(""))
}
