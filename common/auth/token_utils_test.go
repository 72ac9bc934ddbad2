package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret")

	token, err := m.Issue("user-1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.Subject)
	assert.Equal(t, RoleAdmin, id.Role)
}

func TestTokenManager_Verify_Rejects(t *testing.T) {
	m := NewTokenManager("test-secret")

	expired, err := m.Issue("user-1", RoleUser, -time.Minute)
	require.NoError(t, err)

	foreign, err := NewTokenManager("other-secret").Issue("user-1", RoleUser, time.Hour)
	require.NoError(t, err)

	wrongType, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"typ": "refresh",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ": TokenTypeAccess,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"wrong type":   wrongType,
		"missing sub":  noSubject,
		"garbage":      "not.a.token",
		"empty":        "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.Error(t, err)
		})
	}
}

func TestTokenManager_DefaultsRoleToUser(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-2",
		"typ": TokenTypeAccess,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s"))
	require.NoError(t, err)

	id, err := NewTokenManager("s").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, id.Role)
}

func TestTokenManager_NoSecret(t *testing.T) {
	m := NewTokenManager("")
	_, err := m.Issue("user-1", RoleUser, time.Hour)
	assert.Error(t, err)
	_, err = m.Verify("anything")
	assert.Error(t, err)
}
