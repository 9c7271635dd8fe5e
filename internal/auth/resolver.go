package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

// UserStore persists unified user records.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*Principal, error)
	FindByFederatedID(ctx context.Context, federatedID string) (*Principal, error)
	FindByID(ctx context.Context, id string) (*Principal, error)
	Create(ctx context.Context, p *Principal) error
	// LinkFederatedID attaches a federated provider subject to an existing
	// record. The link is permanent; once set, federated logins match by
	// federated id directly.
	LinkFederatedID(ctx context.Context, id, federatedID string) error
}

// AdminStore persists legacy admin records. The auth flows never create or
// mutate these; provisioning happens out of band.
type AdminStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*Principal, error)
	FindByID(ctx context.Context, id string) (*Principal, error)
}

// Lineage is one ordered step in the principal lookup chain. Adding a new
// record lineage means appending to the chain, not branching in the resolver.
type Lineage interface {
	FindByIdentifier(ctx context.Context, identifier string) (*Principal, error)
	FindByID(ctx context.Context, id string) (*Principal, error)
}

type userLineage struct {
	store UserStore
}

func (l userLineage) FindByIdentifier(ctx context.Context, identifier string) (*Principal, error) {
	return l.store.FindByEmail(ctx, identifier)
}

func (l userLineage) FindByID(ctx context.Context, id string) (*Principal, error) {
	return l.store.FindByID(ctx, id)
}

type adminLineage struct {
	store AdminStore
}

func (l adminLineage) FindByIdentifier(ctx context.Context, identifier string) (*Principal, error) {
	p, err := l.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return normalizeLegacy(p), nil
}

func (l adminLineage) FindByID(ctx context.Context, id string) (*Principal, error) {
	p, err := l.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return normalizeLegacy(p), nil
}

// normalizeLegacy presents legacy records with the admin role regardless of
// the stored value, matching what clients with already-issued credentials
// expect.
func normalizeLegacy(p *Principal) *Principal {
	p.Role = RoleAdmin
	return p
}

// Resolver decides which stored principal, if any, answers a given login,
// registration or federated request.
type Resolver struct {
	users  UserStore
	chain  []Lineage
	hasher Hasher
	now    func() time.Time
}

// NewResolver constructs a Resolver. Unified users always resolve before
// legacy admins; the legacy lineage is consulted only on a complete miss.
func NewResolver(users UserStore, admins AdminStore, hasher Hasher) *Resolver {
	return &Resolver{
		users:  users,
		chain:  []Lineage{userLineage{store: users}, adminLineage{store: admins}},
		hasher: hasher,
		now:    time.Now,
	}
}

// ResolveForLogin finds the principal answering the identifier and checks the
// password. Unknown identifiers, wrong passwords and federated-only accounts
// attempting a password login all fail with the same error.
func (r *Resolver) ResolveForLogin(ctx context.Context, identifier, password string) (*Principal, error) {
	var principal *Principal
	for _, lineage := range r.chain {
		p, err := lineage.FindByIdentifier(ctx, identifier)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("auth: resolve login: %w", err)
		}
		principal = p
		break
	}
	if principal == nil {
		return nil, shared.ErrInvalidCredentials
	}
	if principal.PasswordHash == "" || !r.hasher.Verify(password, principal.PasswordHash) {
		return nil, shared.ErrInvalidCredentials
	}
	return principal, nil
}

// Register creates a unified user with a hashed password and the user role.
// The duplicate pre-check is not atomic against the store; the users table
// uniqueness constraint is the actual backstop and its violation is also
// reported as shared.ErrDuplicateEmail.
func (r *Resolver) Register(ctx context.Context, name, email, password string) (*Principal, error) {
	if _, err := r.users.FindByEmail(ctx, email); err == nil {
		return nil, shared.ErrDuplicateEmail
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("auth: register lookup: %w", err)
	}

	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	principal := &Principal{
		ID:           uuid.NewString(),
		DisplayName:  name,
		Email:        email,
		Role:         RoleUser,
		Origin:       OriginUser,
		PasswordHash: hash,
		CreatedAt:    r.now().UTC(),
	}
	if err := r.users.Create(ctx, principal); err != nil {
		return nil, err
	}
	return principal, nil
}

// ResolveForFederated answers a login asserted by an external identity
// provider. No password check happens here; the provider is the trust anchor.
// Matching by email on a record without a federated id links the id to that
// record, the only mutation any auth flow performs on an existing principal.
func (r *Resolver) ResolveForFederated(ctx context.Context, federatedID, email, displayName string) (*Principal, error) {
	p, err := r.users.FindByFederatedID(ctx, federatedID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("auth: federated lookup: %w", err)
	}

	p, err = r.users.FindByEmail(ctx, email)
	if err == nil {
		if p.FederatedID == "" {
			if err := r.users.LinkFederatedID(ctx, p.ID, federatedID); err != nil {
				return nil, fmt.Errorf("auth: link federated id: %w", err)
			}
			p.FederatedID = federatedID
		}
		return p, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("auth: federated email lookup: %w", err)
	}

	if displayName == "" {
		displayName = "Google User"
	}
	principal := &Principal{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Email:       email,
		Role:        RoleUser,
		Origin:      OriginUser,
		FederatedID: federatedID,
		CreatedAt:   r.now().UTC(),
	}
	if err := r.users.Create(ctx, principal); err != nil {
		return nil, err
	}
	return principal, nil
}

// ResolveByID reloads a principal from the store, walking the lineage chain
// in the same order as login resolution.
func (r *Resolver) ResolveByID(ctx context.Context, id string) (*Principal, error) {
	for _, lineage := range r.chain {
		p, err := lineage.FindByID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("auth: resolve by id: %w", err)
		}
		return p, nil
	}
	return nil, shared.ErrNotFound
}
