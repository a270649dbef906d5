package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashCheckPassword(t *testing.T) {
	t.Run("hash -> check", func(t *testing.T) {
		hashed, err := HashPassword("this is my password")
		assert.NoError(t, err)
		assert.NotEqual(t, "this is my password", hashed)

		assert.True(t, CheckPassword(hashed, "this is my password"))
		assert.False(t, CheckPassword(hashed, "some other password"))
	})
}
