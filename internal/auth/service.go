package auth

import (
	"context"
	"errors"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

// PrincipalInfo is the client-facing view of an authenticated principal.
type PrincipalInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

// Session pairs a freshly minted token with its principal.
type Session struct {
	Token     string        `json:"token"`
	Principal PrincipalInfo `json:"user"`
}

// Service is the sole authentication contract exposed to routes and
// middleware: login, register, federated login and verify.
type Service struct {
	resolver *Resolver
	tokens   *TokenService
}

// NewService constructs a Service.
func NewService(resolver *Resolver, tokens *TokenService) *Service {
	return &Service{resolver: resolver, tokens: tokens}
}

// Login authenticates an identifier/password pair against both lineages and
// mints a session.
func (s *Service) Login(ctx context.Context, identifier, password string) (*Session, error) {
	principal, err := s.resolver.ResolveForLogin(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	return s.newSession(principal)
}

// Register creates a unified user account and mints a session for it.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	principal, err := s.resolver.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.newSession(principal)
}

// FederatedLogin authenticates an identity asserted by the external provider,
// creating or linking the unified record as needed.
func (s *Service) FederatedLogin(ctx context.Context, federatedID, email, displayName string) (*Session, error) {
	if federatedID == "" || email == "" {
		return nil, shared.ErrInvalidFederatedInput
	}
	principal, err := s.resolver.ResolveForFederated(ctx, federatedID, email, displayName)
	if err != nil {
		return nil, err
	}
	return s.newSession(principal)
}

// Verify validates a bearer token and re-resolves the principal from the
// store, so role changes made after issuance take effect. A token whose
// subject no longer resolves in either lineage is invalid.
func (s *Service) Verify(ctx context.Context, token string) (*PrincipalInfo, error) {
	payload, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	principal, err := s.resolver.ResolveByID(ctx, payload.PrincipalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidToken
		}
		return nil, err
	}
	info := principalInfo(principal)
	return &info, nil
}

func (s *Service) newSession(principal *Principal) (*Session, error) {
	token, err := s.tokens.Issue(principal.ID, principal.Email, principal.Role)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Principal: principalInfo(principal)}, nil
}

func principalInfo(p *Principal) PrincipalInfo {
	return PrincipalInfo{
		ID:      p.ID,
		Name:    p.DisplayName,
		Email:   p.Email,
		Role:    p.Role,
		IsAdmin: p.IsAdmin(),
	}
}
