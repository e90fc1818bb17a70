package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeService(t *testing.T) {
	svc := NewScopeService("test-secret", time.Hour)

	t.Run("should issue a token for a new scope", func(t *testing.T) {
		token, scopeID, expiresAt, err := svc.Issue()
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, strings.HasPrefix(scopeID, "scope-"))
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, scopeID, claims.ScopeID)
		assert.Equal(t, scopeID, claims.Subject)
	})

	t.Run("should refresh a token for an existing scope", func(t *testing.T) {
		token, _, err := svc.IssueFor("scope-fixed")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "scope-fixed", claims.ScopeID)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		other := NewScopeService("other-secret", time.Hour)
		token, _, err := other.IssueFor("scope-x")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrInvalidScopeToken))
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		past := NewScopeService("test-secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := past.IssueFor("scope-old")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidScopeToken)
	})

	t.Run("should reject a token without a scope", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidScopeToken)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidScopeToken)
	})
}
