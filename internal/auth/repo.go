package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/markhoor-institute/markhoor-api/internal/platform/db"
	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

// PGUserStore implements UserStore using PostgreSQL.
type PGUserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore constructs a PostgreSQL user store.
func NewUserStore(pool *pgxpool.Pool) *PGUserStore {
	return &PGUserStore{pool: pool}
}

const userColumns = `id, name, email, password_hash, federated_id, role, created_at`

func scanUser(row pgx.Row) (*Principal, error) {
	var (
		p            Principal
		passwordHash pgtype.Text
		federatedID  pgtype.Text
		createdAt    pgtype.Timestamptz
	)
	err := row.Scan(&p.ID, &p.DisplayName, &p.Email, &passwordHash, &federatedID, &p.Role, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	p.Origin = OriginUser
	p.PasswordHash = passwordHash.String
	p.FederatedID = federatedID.String
	p.CreatedAt = createdAt.Time
	return &p, nil
}

// FindByEmail fetches a unified user by exact email match.
func (s *PGUserStore) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByFederatedID fetches a unified user by federated provider subject.
func (s *PGUserStore) FindByFederatedID(ctx context.Context, federatedID string) (*Principal, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE federated_id = $1`, federatedID)
	return scanUser(row)
}

// FindByID fetches a unified user by id.
func (s *PGUserStore) FindByID(ctx context.Context, id string) (*Principal, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Create inserts a unified user. Unique violations on email report
// shared.ErrDuplicateEmail, the backstop for the non-atomic duplicate
// pre-check in the resolver.
func (s *PGUserStore) Create(ctx context.Context, p *Principal) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, federated_id, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID,
		p.DisplayName,
		p.Email,
		pgtype.Text{String: p.PasswordHash, Valid: p.PasswordHash != ""},
		pgtype.Text{String: p.FederatedID, Valid: p.FederatedID != ""},
		p.Role,
		pgtype.Timestamptz{Time: createdAt, Valid: true},
	)
	if err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			return shared.ErrDuplicateEmail
		}
		if db.IsUniqueViolation(err, "") {
			return shared.ErrDuplicate
		}
		return err
	}
	return nil
}

// LinkFederatedID attaches a federated provider subject to an existing user.
func (s *PGUserStore) LinkFederatedID(ctx context.Context, id, federatedID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET federated_id = $2 WHERE id = $1 AND federated_id IS NULL`,
		id, federatedID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// PGAdminStore implements AdminStore using PostgreSQL.
type PGAdminStore struct {
	pool *pgxpool.Pool
}

// NewAdminStore constructs a PostgreSQL admin store.
func NewAdminStore(pool *pgxpool.Pool) *PGAdminStore {
	return &PGAdminStore{pool: pool}
}

const adminColumns = `id, username, email, password_hash, role, created_at`

func scanAdmin(row pgx.Row) (*Principal, error) {
	var (
		p         Principal
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(&p.ID, &p.DisplayName, &p.Email, &p.PasswordHash, &p.Role, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	p.Origin = OriginAdmin
	p.CreatedAt = createdAt.Time
	return &p, nil
}

// FindByIdentifier fetches a legacy admin matching either username or email.
func (s *PGAdminStore) FindByIdentifier(ctx context.Context, identifier string) (*Principal, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE username = $1 OR email = $1`, identifier)
	return scanAdmin(row)
}

// FindByID fetches a legacy admin by id.
func (s *PGAdminStore) FindByID(ctx context.Context, id string) (*Principal, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

var (
	_ UserStore  = (*PGUserStore)(nil)
	_ AdminStore = (*PGAdminStore)(nil)
)
