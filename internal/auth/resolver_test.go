package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

func newTestResolver() (*Resolver, *memoryUserStore, *memoryAdminStore) {
	users := newMemoryUserStore()
	admins := newMemoryAdminStore()
	return NewResolver(users, admins, NewHasher()), users, admins
}

func seedAdmin(t *testing.T, admins *memoryAdminStore, username, email, password string, role Role) *Principal {
	t.Helper()
	hash, err := NewHasher().Hash(password)
	require.NoError(t, err)
	p := &Principal{
		ID:           "admin-" + username,
		DisplayName:  username,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	admins.add(p)
	return p
}

func TestRegisterThenLogin(t *testing.T) {
	resolver, _, _ := newTestResolver()
	ctx := context.Background()

	registered, err := resolver.Register(ctx, "Asma", "asma@example.com", "Secret123")
	require.NoError(t, err)
	require.Equal(t, RoleUser, registered.Role)
	require.False(t, registered.IsAdmin())
	require.NotEmpty(t, registered.ID)
	require.NotEqual(t, "Secret123", registered.PasswordHash)

	loggedIn, err := resolver.ResolveForLogin(ctx, "asma@example.com", "Secret123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	resolver, _, _ := newTestResolver()
	ctx := context.Background()

	_, err := resolver.Register(ctx, "Asma", "asma@example.com", "Secret123")
	require.NoError(t, err)

	_, err = resolver.Register(ctx, "Other", "asma@example.com", "Other456")
	require.ErrorIs(t, err, shared.ErrDuplicateEmail)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	resolver, _, _ := newTestResolver()
	ctx := context.Background()

	_, err := resolver.Register(ctx, "Asma", "asma@example.com", "Secret123")
	require.NoError(t, err)

	_, wrongPassword := resolver.ResolveForLogin(ctx, "asma@example.com", "wrong")
	_, unknownUser := resolver.ResolveForLogin(ctx, "nobody@example.com", "whatever")

	require.ErrorIs(t, wrongPassword, shared.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, shared.ErrInvalidCredentials)
	require.Equal(t, wrongPassword, unknownUser)
}

func TestFederatedOnlyAccountRejectsPasswordLogin(t *testing.T) {
	resolver, _, _ := newTestResolver()
	ctx := context.Background()

	_, err := resolver.ResolveForFederated(ctx, "fid-1", "fed@example.com", "Fed User")
	require.NoError(t, err)

	_, err = resolver.ResolveForLogin(ctx, "fed@example.com", "anything")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestUnifiedUserResolvesBeforeLegacyAdmin(t *testing.T) {
	resolver, _, admins := newTestResolver()
	ctx := context.Background()

	seedAdmin(t, admins, "clash", "clash@example.com", "AdminPass1", RoleAdmin)
	registered, err := resolver.Register(ctx, "Clash", "clash@example.com", "UserPass1")
	require.NoError(t, err)

	resolved, err := resolver.ResolveForLogin(ctx, "clash@example.com", "UserPass1")
	require.NoError(t, err)
	require.Equal(t, registered.ID, resolved.ID)
	require.Equal(t, OriginUser, resolved.Origin)
	require.Equal(t, RoleUser, resolved.Role)

	// The admin password no longer works for the shared email: legacy
	// fallback only triggers on a complete miss in the unified table.
	_, err = resolver.ResolveForLogin(ctx, "clash@example.com", "AdminPass1")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLegacyAdminLoginByUsernameAndEmail(t *testing.T) {
	resolver, _, admins := newTestResolver()
	ctx := context.Background()

	seedAdmin(t, admins, "root", "root@example.com", "AdminPass1", RoleSuperAdmin)

	byUsername, err := resolver.ResolveForLogin(ctx, "root", "AdminPass1")
	require.NoError(t, err)
	require.Equal(t, OriginAdmin, byUsername.Origin)
	// Stored superadmin records still present as admin.
	require.Equal(t, RoleAdmin, byUsername.Role)
	require.True(t, byUsername.IsAdmin())

	byEmail, err := resolver.ResolveForLogin(ctx, "root@example.com", "AdminPass1")
	require.NoError(t, err)
	require.Equal(t, byUsername.ID, byEmail.ID)
}

func TestFederatedLoginIsIdempotent(t *testing.T) {
	resolver, users, _ := newTestResolver()
	ctx := context.Background()

	first, err := resolver.ResolveForFederated(ctx, "fid-42", "repeat@example.com", "Repeat")
	require.NoError(t, err)
	second, err := resolver.ResolveForFederated(ctx, "fid-42", "repeat@example.com", "Repeat")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, users.count())
}

func TestFederatedLoginLinksExistingPasswordAccount(t *testing.T) {
	resolver, users, _ := newTestResolver()
	ctx := context.Background()

	registered, err := resolver.Register(ctx, "Asma", "asma@example.com", "Secret123")
	require.NoError(t, err)
	require.Empty(t, registered.FederatedID)

	linked, err := resolver.ResolveForFederated(ctx, "fid-7", "asma@example.com", "Asma G")
	require.NoError(t, err)
	require.Equal(t, registered.ID, linked.ID)
	require.Equal(t, "fid-7", linked.FederatedID)
	require.Equal(t, 1, users.count())

	// Once linked, the federated id alone resolves the same principal.
	byFid, err := resolver.ResolveForFederated(ctx, "fid-7", "different@example.com", "")
	require.NoError(t, err)
	require.Equal(t, registered.ID, byFid.ID)

	// Password login keeps working after the link.
	byPassword, err := resolver.ResolveForLogin(ctx, "asma@example.com", "Secret123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, byPassword.ID)
}

func TestFederatedLoginCreatesWithDefaultName(t *testing.T) {
	resolver, _, _ := newTestResolver()
	ctx := context.Background()

	created, err := resolver.ResolveForFederated(ctx, "fid-9", "anon@example.com", "")
	require.NoError(t, err)
	require.Equal(t, "Google User", created.DisplayName)
	require.Equal(t, RoleUser, created.Role)
	require.Empty(t, created.PasswordHash)
}

func TestResolveByIDWalksBothLineages(t *testing.T) {
	resolver, _, admins := newTestResolver()
	ctx := context.Background()

	admin := seedAdmin(t, admins, "root", "root@example.com", "AdminPass1", RoleAdmin)
	user, err := resolver.Register(ctx, "Asma", "asma@example.com", "Secret123")
	require.NoError(t, err)

	gotUser, err := resolver.ResolveByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, OriginUser, gotUser.Origin)

	gotAdmin, err := resolver.ResolveByID(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, OriginAdmin, gotAdmin.Origin)

	_, err = resolver.ResolveByID(ctx, "missing-id")
	require.ErrorIs(t, err, shared.ErrNotFound)
}
