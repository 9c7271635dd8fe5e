package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Unknown identifiers and
	// wrong passwords surface the same error so callers cannot tell which
	// accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail occurs when registering an email that is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicate indicates a uniqueness conflict on a non-email key.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidFederatedInput occurs when a federated login is missing the
	// provider subject or email.
	ErrInvalidFederatedInput = errors.New("invalid federated user data")
	// ErrInvalidToken covers malformed tokens, bad signatures and tokens whose
	// principal no longer resolves.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken occurs when a token is past its validity window.
	ErrExpiredToken = errors.New("expired token")
	// ErrValidation indicates request payload validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden indicates the principal lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized indicates a missing or unusable credential.
	ErrUnauthorized = errors.New("unauthorized")
)
