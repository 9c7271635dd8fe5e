package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

// DefaultTokenTTL is the fixed validity window for issued tokens. There is no
// refresh or revocation mechanism; expiry is the only termination.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the signed token payload.
type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenPayload is the verified content of a bearer token.
type TokenPayload struct {
	PrincipalID string
	Email       string
	Role        Role
}

// TokenService mints and validates stateless bearer tokens. Verification is
// pure: signature plus expiry check, no store lookup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService constructs a TokenService. A zero ttl falls back to
// DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given principal identity.
func (s *TokenService) Issue(principalID, email string, role Role) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates a token and returns its payload. Expired tokens fail with
// shared.ErrExpiredToken; anything else wrong with the token fails with
// shared.ErrInvalidToken.
func (s *TokenService) Verify(token string) (TokenPayload, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	var claims Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPayload{}, shared.ErrExpiredToken
		}
		return TokenPayload{}, shared.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return TokenPayload{}, shared.ErrInvalidToken
	}
	return TokenPayload{
		PrincipalID: claims.Subject,
		Email:       claims.Email,
		Role:        claims.Role,
	}, nil
}
