package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-kit/complaint-service/internal/auth"
	"github.com/civic-kit/complaint-service/internal/domain"
)

func TestTokenRoundTripCitizen(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 30)

	user := &domain.User{ID: "user-1", Role: domain.RoleUser}
	tokenStr, expiresAt, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenStr)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Nil(t, claims.Department)
}

func TestTokenRoundTripAdminDepartment(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 30)

	dept := domain.DepartmentElectricity
	user := &domain.User{ID: "admin-1", Role: domain.RoleAdmin, Department: &dept}
	tokenStr, _, err := tm.GenerateToken(user)
	require.NoError(t, err)

	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	require.NotNil(t, claims.Department)
	assert.Equal(t, domain.DepartmentElectricity, *claims.Department)

	actor := claims.Actor()
	assert.Equal(t, "admin-1", actor.ID)
	assert.True(t, actor.CanAccessDepartment(domain.DepartmentElectricity))
	assert.False(t, actor.CanAccessDepartment(domain.DepartmentWater))
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", 30)
	verifier := auth.NewTokenManager("secret-b", 30)

	tokenStr, _, err := issuer.GenerateToken(&domain.User{ID: "user-1", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = verifier.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 30)

	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)

	_, err = tm.ParseToken("")
	assert.Error(t, err)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 30)

	tokenStr, _, err := tm.GenerateToken(&domain.User{ID: "user-1", Role: domain.RoleUser})
	require.NoError(t, err)

	// Flipping a payload byte invalidates the signature.
	tampered := []byte(tokenStr)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}
	_, err = tm.ParseToken(string(tampered))
	assert.Error(t, err)
}
