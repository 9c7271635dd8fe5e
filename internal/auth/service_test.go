package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

func newTestService() (*Service, *memoryUserStore, *memoryAdminStore) {
	resolver, users, admins := newTestResolver()
	return NewService(resolver, NewTokenService("test-secret", time.Hour)), users, admins
}

func subjectOf(t *testing.T, token string) string {
	t.Helper()
	var claims Claims
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	require.NoError(t, err)
	return claims.Subject
}

func TestServiceRegisterLoginExample(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Asma", "asma@example.com", "Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	require.Equal(t, "Asma", registered.Principal.Name)
	require.Equal(t, RoleUser, registered.Principal.Role)
	require.False(t, registered.Principal.IsAdmin)
	require.Equal(t, registered.Principal.ID, subjectOf(t, registered.Token))

	loggedIn, err := svc.Login(ctx, "asma@example.com", "Secret123")
	require.NoError(t, err)
	require.Equal(t, registered.Principal.ID, loggedIn.Principal.ID)

	_, err = svc.Login(ctx, "asma@example.com", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestServiceFederatedLoginValidatesInput(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.FederatedLogin(ctx, "", "asma@example.com", "Asma")
	require.ErrorIs(t, err, shared.ErrInvalidFederatedInput)

	_, err = svc.FederatedLogin(ctx, "fid-1", "", "Asma")
	require.ErrorIs(t, err, shared.ErrInvalidFederatedInput)

	session, err := svc.FederatedLogin(ctx, "fid-1", "asma@example.com", "Asma")
	require.NoError(t, err)
	require.Equal(t, RoleUser, session.Principal.Role)
}

func TestServiceVerifyReloadsPrincipal(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	session, err := svc.Register(ctx, "Asma", "asma@example.com", "Secret123")
	require.NoError(t, err)

	info, err := svc.Verify(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, session.Principal.ID, info.ID)
	require.Equal(t, "asma@example.com", info.Email)
	require.False(t, info.IsAdmin)

	// A role change after issuance is reflected on the next verify.
	users.setRole(session.Principal.ID, RoleAdmin)
	info, err = svc.Verify(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, info.Role)
	require.True(t, info.IsAdmin)

	// A principal removed from the store invalidates its tokens.
	users.delete(session.Principal.ID)
	_, err = svc.Verify(ctx, session.Token)
	require.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestServiceVerifyLegacyAdminToken(t *testing.T) {
	svc, _, admins := newTestService()
	ctx := context.Background()

	seedAdmin(t, admins, "root", "root@example.com", "AdminPass1", RoleAdmin)

	session, err := svc.Login(ctx, "root", "AdminPass1")
	require.NoError(t, err)
	require.True(t, session.Principal.IsAdmin)

	info, err := svc.Verify(ctx, session.Token)
	require.NoError(t, err)
	require.True(t, info.IsAdmin)
	require.Equal(t, session.Principal.ID, info.ID)
}
