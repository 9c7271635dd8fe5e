package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
	"github.com/markhoor-institute/markhoor-api/jobs"
)

// Notifier enqueues staff notifications for new inquiries. *jobs.Client
// satisfies it.
type Notifier interface {
	EnqueueContactNotify(ctx context.Context, payload jobs.ContactNotifyPayload) (*asynq.TaskInfo, error)
}

// Service wraps inquiry business rules.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	notifier Notifier
}

// NewService constructs a new Service. notifier may be nil when no queue is
// configured.
func NewService(logger *slog.Logger, repo Repository, notifier Notifier) *Service {
	return &Service{logger: logger, repo: repo, notifier: notifier}
}

// Submit records a public inquiry and queues a staff notification. The
// notification is best effort, a queue outage never loses the inquiry.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Inquiry, error) {
	inquiry := Inquiry{
		ID:                    uuid.NewString(),
		Name:                  input.Name,
		Email:                 input.Email,
		Phone:                 input.Phone,
		Subject:               input.Subject,
		Message:               input.Message,
		Attachment:            input.Attachment,
		Status:                StatusNew,
		CallbackRequest:       input.CallbackRequest,
		PreferredCallbackTime: input.PreferredCallbackTime,
		IPAddress:             input.IPAddress,
		UserAgent:             input.UserAgent,
		SubmittedAt:           time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return Inquiry{}, err
	}
	if s.notifier != nil {
		_, err := s.notifier.EnqueueContactNotify(ctx, jobs.ContactNotifyPayload{
			InquiryID:   inquiry.ID,
			Name:        inquiry.Name,
			Email:       inquiry.Email,
			Phone:       inquiry.Phone,
			Subject:     inquiry.Subject,
			Message:     inquiry.Message,
			SubmittedAt: inquiry.SubmittedAt,
		})
		if err != nil {
			s.logger.Warn("enqueue contact notify", slog.String("inquiry_id", inquiry.ID), slog.Any("error", err))
		}
	}
	return inquiry, nil
}

// List returns a page of inquiries plus pagination metadata.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Inquiry, shared.Pagination, error) {
	inquiries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return inquiries, shared.NewPagination(filter.Page, filter.PerPage, total), nil
}

// Get fetches a single inquiry.
func (s *Service) Get(ctx context.Context, id string) (Inquiry, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus moves an inquiry through the staff workflow.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Inquiry, error) {
	if !status.Valid() {
		return Inquiry{}, shared.ErrValidation
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Inquiry{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an inquiry.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
