package students

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

// Repository defines persistence operations for the students module.
type Repository interface {
	List(ctx context.Context) ([]Student, error)
	Get(ctx context.Context, id string) (Student, error)
	GetBySerialNo(ctx context.Context, serialNo string) (Student, error)
	Create(ctx context.Context, student Student) error
	Update(ctx context.Context, student Student) error
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

const studentColumns = `id, name, father_name, sr_no, reg_no, duration, issue_date, course, phone, email, status, certificate_url, registered_at`

func scanStudent(row pgx.Row) (Student, error) {
	var (
		s            Student
		registeredAt pgtype.Timestamptz
	)
	err := row.Scan(&s.ID, &s.Name, &s.FatherName, &s.SerialNo, &s.RegistrationNo, &s.Duration,
		&s.IssueDate, &s.Course, &s.Phone, &s.Email, &s.Status, &s.CertificateURL, &registeredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Student{}, shared.ErrNotFound
		}
		return Student{}, err
	}
	s.RegisteredAt = registeredAt.Time
	return s, nil
}

// List returns all student records, newest first.
func (r *PGRepository) List(ctx context.Context) ([]Student, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY registered_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var students []Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// Get fetches a student by id.
func (r *PGRepository) Get(ctx context.Context, id string) (Student, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	return scanStudent(row)
}

// GetBySerialNo fetches a student by certificate serial number.
func (r *PGRepository) GetBySerialNo(ctx context.Context, serialNo string) (Student, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE sr_no = $1`, serialNo)
	return scanStudent(row)
}

// Create inserts a student record. Duplicate serial numbers report
// shared.ErrDuplicate.
func (r *PGRepository) Create(ctx context.Context, student Student) error {
	registeredAt := student.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO students (id, name, father_name, sr_no, reg_no, duration, issue_date, course, phone, email, status, certificate_url, registered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		student.ID, student.Name, student.FatherName, student.SerialNo, student.RegistrationNo,
		student.Duration, student.IssueDate, student.Course, student.Phone, student.Email,
		student.Status, student.CertificateURL, pgtype.Timestamptz{Time: registeredAt, Valid: true})
	if db.IsUniqueViolation(err, "") {
		return shared.ErrDuplicate
	}
	return err
}

// Update rewrites a student row.
func (r *PGRepository) Update(ctx context.Context, student Student) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET name = $2, father_name = $3, sr_no = $4, reg_no = $5, duration = $6,
		 issue_date = $7, course = $8, phone = $9, email = $10, status = $11, certificate_url = $12
		 WHERE id = $1`,
		student.ID, student.Name, student.FatherName, student.SerialNo, student.RegistrationNo,
		student.Duration, student.IssueDate, student.Course, student.Phone, student.Email,
		student.Status, student.CertificateURL)
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

// Delete removes a student record by id.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
