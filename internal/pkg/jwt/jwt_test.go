package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
)

func TestJWTService_ActorRoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("EMP001", staff.RoleHR)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	actor, err := svc.ActorFromContext(ctx)
	require.NoError(t, err)

	assert.Equal(t, "EMP001", actor.EmployeeID)
	assert.Equal(t, staff.RoleHR, actor.Role)
}

func TestJWTService_RejectsMissingToken(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "1h")

	_, err := svc.ActorFromContext(context.Background())
	assert.Error(t, err)
}

func TestJWTService_RejectsBadRole(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "1h")

	tokenString, _, err := svc.GenerateAccessToken("EMP001", staff.Role("superuser"))
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	_, err = svc.ActorFromContext(ctx)
	assert.Error(t, err)
}
