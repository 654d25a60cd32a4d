package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueVerify(t *testing.T) {
	svc, err := NewTokenService("test-secret", "HS256")
	require.NoError(t, err)

	token, err := svc.Issue("a@x.com", time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	// 有效期应为 1 小时左右
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc, err := NewTokenService("test-secret", "HS256")
	require.NoError(t, err)

	token, err := svc.Issue("a@x.com", 0)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_Expired(t *testing.T) {
	svc, err := NewTokenService("test-secret", "HS256")
	require.NoError(t, err)

	token, err := svc.Issue("a@x.com", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_Invalid(t *testing.T) {
	svc, err := NewTokenService("test-secret", "HS256")
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService("other-secret", "HS256")
		require.NoError(t, err)
		token, err := other.Issue("a@x.com", time.Hour)
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		other, err := NewTokenService("test-secret", "HS512")
		require.NoError(t, err)
		token, err := other.Issue("a@x.com", time.Hour)
		require.NoError(t, err)
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("tampered", func(t *testing.T) {
		token, err := svc.Issue("a@x.com", time.Hour)
		require.NoError(t, err)
		_, err = svc.Verify(token + "x")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestNewTokenService_UnknownAlgorithm(t *testing.T) {
	_, err := NewTokenService("test-secret", "HS1024")
	assert.Error(t, err)
}
