package books

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

// Repository defines persistence operations for the books module.
type Repository interface {
	ListPublic(ctx context.Context) ([]Book, error)
	ListAll(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id string) (Book, error)
	Create(ctx context.Context, book Book) error
	Update(ctx context.Context, book Book) error
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

const bookColumns = `id, title, author, description, course, cover_image, pdf_url, uploaded_by, is_public, chapters, created_at`

func scanBook(row pgx.Row) (Book, error) {
	var (
		b         Book
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Course, &b.CoverImage,
		&b.PDFURL, &b.UploadedBy, &b.IsPublic, &b.Chapters, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, shared.ErrNotFound
		}
		return Book{}, err
	}
	b.CreatedAt = createdAt.Time
	return b, nil
}

func (r *PGRepository) list(ctx context.Context, query string) ([]Book, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var books []Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// ListPublic returns public books, newest first.
func (r *PGRepository) ListPublic(ctx context.Context) ([]Book, error) {
	return r.list(ctx, `SELECT `+bookColumns+` FROM books WHERE is_public ORDER BY created_at DESC`)
}

// ListAll returns every book, newest first.
func (r *PGRepository) ListAll(ctx context.Context) ([]Book, error) {
	return r.list(ctx, `SELECT `+bookColumns+` FROM books ORDER BY created_at DESC`)
}

// Get fetches a book by id.
func (r *PGRepository) Get(ctx context.Context, id string) (Book, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	return scanBook(row)
}

// Create inserts a book.
func (r *PGRepository) Create(ctx context.Context, book Book) error {
	createdAt := book.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO books (id, title, author, description, course, cover_image, pdf_url, uploaded_by, is_public, chapters, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		book.ID, book.Title, book.Author, book.Description, book.Course, book.CoverImage,
		book.PDFURL, book.UploadedBy, book.IsPublic, book.Chapters,
		pgtype.Timestamptz{Time: createdAt, Valid: true})
	return err
}

// Update rewrites a book row.
func (r *PGRepository) Update(ctx context.Context, book Book) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE books SET title = $2, author = $3, description = $4, course = $5, cover_image = $6,
		 pdf_url = $7, is_public = $8, chapters = $9 WHERE id = $1`,
		book.ID, book.Title, book.Author, book.Description, book.Course, book.CoverImage,
		book.PDFURL, book.IsPublic, book.Chapters)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a book by id.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
