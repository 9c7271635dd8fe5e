package contact

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

// Repository defines persistence operations for the contact module.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Inquiry, int, error)
	Get(ctx context.Context, id string) (Inquiry, error)
	Create(ctx context.Context, inquiry Inquiry) error
	UpdateStatus(ctx context.Context, id string, status Status) error
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

const inquiryColumns = `id, name, email, phone, subject, message, attachment, status, callback_request, preferred_callback_time, ip_address, user_agent, submitted_at`

func scanInquiry(row pgx.Row) (Inquiry, error) {
	var (
		inq           Inquiry
		attachment    pgtype.Text
		preferredTime pgtype.Text
		ipAddress     pgtype.Text
		userAgent     pgtype.Text
		submittedAt   pgtype.Timestamptz
	)
	err := row.Scan(&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Subject, &inq.Message,
		&attachment, &inq.Status, &inq.CallbackRequest, &preferredTime, &ipAddress, &userAgent, &submittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Inquiry{}, shared.ErrNotFound
		}
		return Inquiry{}, err
	}
	inq.Attachment = attachment.String
	inq.PreferredCallbackTime = preferredTime.String
	inq.IPAddress = ipAddress.String
	inq.UserAgent = userAgent.String
	inq.SubmittedAt = submittedAt.Time
	return inq, nil
}

// List returns a page of inquiries, newest first, with the total count for
// the filter.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Inquiry, int, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	var total int
	countQuery := `SELECT COUNT(*) FROM contact_inquiries`
	listQuery := `SELECT ` + inquiryColumns + ` FROM contact_inquiries`
	args := []any{}
	if filter.Status != "" {
		countQuery += ` WHERE status = $1`
		listQuery += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery += ` ORDER BY submitted_at DESC`
	args = append(args, perPage, offset)
	if filter.Status != "" {
		listQuery += ` LIMIT $2 OFFSET $3`
	} else {
		listQuery += ` LIMIT $1 OFFSET $2`
	}
	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var inquiries []Inquiry
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, 0, err
		}
		inquiries = append(inquiries, inquiry)
	}
	return inquiries, total, rows.Err()
}

// Get fetches an inquiry by id.
func (r *PGRepository) Get(ctx context.Context, id string) (Inquiry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+inquiryColumns+` FROM contact_inquiries WHERE id = $1`, id)
	return scanInquiry(row)
}

// Create inserts a new inquiry.
func (r *PGRepository) Create(ctx context.Context, inquiry Inquiry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_inquiries (id, name, email, phone, subject, message, attachment, status, callback_request, preferred_callback_time, ip_address, user_agent, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		inquiry.ID, inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Subject, inquiry.Message,
		textOrNull(inquiry.Attachment), inquiry.Status, inquiry.CallbackRequest,
		textOrNull(inquiry.PreferredCallbackTime), textOrNull(inquiry.IPAddress), textOrNull(inquiry.UserAgent),
		pgtype.Timestamptz{Time: inquiry.SubmittedAt, Valid: true})
	return err
}

// UpdateStatus moves an inquiry to a new workflow status.
func (r *PGRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE contact_inquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an inquiry by id.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_inquiries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

var _ Repository = (*PGRepository)(nil)
