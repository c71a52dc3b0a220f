package pwhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	ph, err := New(16, 10000)
	require.NoError(t, err)

	hash, err := ph.HashPassword("s3cret")
	require.NoError(t, err)

	t.Run("ValidPassword", func(t *testing.T) {
		assert.NoError(t, ph.Validate("s3cret", hash))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		assert.Error(t, ph.Validate("wrong", hash))
	})

	t.Run("HashesAreSalted", func(t *testing.T) {
		hash2, err := ph.HashPassword("s3cret")
		require.NoError(t, err)
		assert.NotEqual(t, hash, hash2)
		assert.NoError(t, ph.Validate("s3cret", hash2))
	})

	t.Run("MalformedHash", func(t *testing.T) {
		assert.Error(t, ph.Validate("s3cret", "not-a-hash"))
	})

	t.Run("BadParams", func(t *testing.T) {
		_, err := New(4, 10000)
		assert.Error(t, err)
		_, err = New(16, 10)
		assert.Error(t, err)
	})
}
