package user

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhavishkl/NoQue/config"
)

func TestTokenRoundTrip(t *testing.T) {
	u := User{
		ID:    "8b9a2e71-55c0-4c42-9a3f-e6a1b21a6c11",
		Name:  "Asha",
		Email: "asha@example.com",
	}

	token, expiry, err := u.GetJWT()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(tokenLifetime), expiry, time.Minute)

	id, err := GetTokenID(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestGetTokenIDRejectsBadTokens(t *testing.T) {
	t.Run("garbage", func(t *testing.T) {
		_, err := GetTokenID("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss": "someone-else",
			"sub": "abc",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(config.GetSigningSecret())
		require.NoError(t, err)

		_, err = GetTokenID(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss": tokenIssuer,
			"sub": "abc",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}).SignedString(config.GetSigningSecret())
		require.NoError(t, err)

		_, err = GetTokenID(token)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss": tokenIssuer,
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(config.GetSigningSecret())
		require.NoError(t, err)

		_, err = GetTokenID(token)
		assert.Error(t, err)
	})
}
