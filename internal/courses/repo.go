package courses

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

// Repository defines persistence operations for the courses module.
type Repository interface {
	ListActive(ctx context.Context) ([]Course, error)
	ListAll(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id string) (Course, error)
	Create(ctx context.Context, course Course) error
	Update(ctx context.Context, course Course) error
	Delete(ctx context.Context, id string) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const courseColumns = `id, name, description, duration, fee, is_active, image, created_at`

func scanCourse(row pgx.Row) (Course, error) {
	var (
		c         Course
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Duration, &c.Fee, &c.IsActive, &c.Image, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Course{}, shared.ErrNotFound
		}
		return Course{}, err
	}
	c.CreatedAt = createdAt.Time
	return c, nil
}

func (r *PGRepository) list(ctx context.Context, query string) ([]Course, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var courses []Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// ListActive returns active courses ordered by name.
func (r *PGRepository) ListActive(ctx context.Context) ([]Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses WHERE is_active ORDER BY name`)
}

// ListAll returns every course ordered by name.
func (r *PGRepository) ListAll(ctx context.Context) ([]Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY name`)
}

// Get fetches a course by id.
func (r *PGRepository) Get(ctx context.Context, id string) (Course, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
	return scanCourse(row)
}

// Create inserts a course. Duplicate names report shared.ErrDuplicate.
func (r *PGRepository) Create(ctx context.Context, course Course) error {
	createdAt := course.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO courses (id, name, description, duration, fee, is_active, image, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		course.ID, course.Name, course.Description, course.Duration, course.Fee,
		course.IsActive, course.Image, pgtype.Timestamptz{Time: createdAt, Valid: true})
	if db.IsUniqueViolation(err, "") {
		return shared.ErrDuplicate
	}
	return err
}

// Update rewrites a course row.
func (r *PGRepository) Update(ctx context.Context, course Course) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE courses SET name = $2, description = $3, duration = $4, fee = $5, is_active = $6, image = $7
		 WHERE id = $1`,
		course.ID, course.Name, course.Description, course.Duration, course.Fee,
		course.IsActive, course.Image)
	if db.IsUniqueViolation(err, "") {
		return shared.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a course by id.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
