package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "admin@licorera.local", "Admin")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "Admin", claims.Name)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	id := uuid.New()

	refresh, err := m.GenerateRefreshToken(id)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	got, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestExpiredAndForeignTokensAreRejected(t *testing.T) {
	expired := NewJWTManager("secret", -time.Minute, time.Hour)
	token, err := expired.GenerateAccessToken(uuid.New(), "a@b.c", "A")
	require.NoError(t, err)
	_, err = expired.ValidateAccessToken(token)
	assert.Error(t, err)

	other := NewJWTManager("other", time.Hour, time.Hour)
	token, err = other.GenerateAccessToken(uuid.New(), "a@b.c", "A")
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour, time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenExpiresWithClock(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	issued := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateAccessToken(uuid.New(), "a@b.c", "A")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = m.ValidateAccessToken(token)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestShortID(t *testing.T) {
	id := uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000")
	assert.Equal(t, "3F2A9C1E", ShortID(id))
}
