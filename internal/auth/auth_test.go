package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/mealplan-be/internal/models"
)

func testUser() models.User {
	return models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", IsAdmin: true}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "issuer", time.Hour)
	user := testUser()

	raw, err := tm.Generate(user)
	require.NoError(t, err)

	id, err := tm.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: user.ID, Email: user.Email, Name: user.Name, IsAdmin: true}, id)
}

func TestTokenRejected(t *testing.T) {
	tm := NewTokenManager("secret", "issuer", time.Hour)
	raw, err := tm.Generate(testUser())
	require.NoError(t, err)

	t.Run("WrongSecret", func(t *testing.T) {
		_, err := NewTokenManager("other", "issuer", time.Hour).Parse(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		_, err := NewTokenManager("secret", "someone-else", time.Hour).Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		late := NewTokenManager("secret", "issuer", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("NoneAlgorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"iss": "issuer",
			"sub": uuid.NewString(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tm.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("NonUUIDSubject", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss": "issuer",
			"sub": "42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		raw, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = tm.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	ok, err := CheckPassword(hash, "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "hunter23")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-hash", "x")
	assert.Error(t, err)
}
