package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.Sign("user-1")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewManager("secret", time.Hour).Sign("user-1")
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewManager("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := &Manager{secret: []byte("secret"), ttl: time.Nanosecond}
	token, err := m.Sign("user-1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
