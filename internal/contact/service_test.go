package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
	"github.com/markhoor-institute/markhoor-api/jobs"
)

type memoryRepo struct {
	records map[string]Inquiry
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[string]Inquiry)}
}

func (r *memoryRepo) List(ctx context.Context, filter ListFilter) ([]Inquiry, int, error) {
	var all []Inquiry
	for _, inq := range r.records {
		if filter.Status != "" && inq.Status != filter.Status {
			continue
		}
		all = append(all, inq)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].SubmittedAt.After(all[j].SubmittedAt) })
	total := len(all)

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	start := (page - 1) * perPage
	if start >= total {
		return nil, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Inquiry, error) {
	if inq, ok := r.records[id]; ok {
		return inq, nil
	}
	return Inquiry{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, inquiry Inquiry) error {
	r.records[inquiry.ID] = inquiry
	return nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	inq, ok := r.records[id]
	if !ok {
		return shared.ErrNotFound
	}
	inq.Status = status
	r.records[id] = inq
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

type fakeNotifier struct {
	payloads []jobs.ContactNotifyPayload
	err      error
}

func (n *fakeNotifier) EnqueueContactNotify(ctx context.Context, payload jobs.ContactNotifyPayload) (*asynq.TaskInfo, error) {
	if n.err != nil {
		return nil, n.err
	}
	n.payloads = append(n.payloads, payload)
	return &asynq.TaskInfo{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmitQueuesNotification(t *testing.T) {
	repo := newMemoryRepo()
	notifier := &fakeNotifier{}
	svc := NewService(discardLogger(), repo, notifier)

	inquiry, err := svc.Submit(context.Background(), SubmitInput{
		Name: "Fatima", Email: "fatima@example.com", Subject: "Admissions", Message: "Course timings?",
		IPAddress: "203.0.113.9", UserAgent: "test-agent",
	})
	require.NoError(t, err)
	require.Equal(t, StatusNew, inquiry.Status)
	require.NotEmpty(t, inquiry.ID)
	require.Equal(t, "203.0.113.9", inquiry.IPAddress)

	require.Len(t, notifier.payloads, 1)
	require.Equal(t, inquiry.ID, notifier.payloads[0].InquiryID)
	require.Equal(t, "Admissions", notifier.payloads[0].Subject)
}

func TestSubmitSurvivesQueueOutage(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(discardLogger(), repo, &fakeNotifier{err: errors.New("redis down")})

	inquiry, err := svc.Submit(context.Background(), SubmitInput{
		Name: "Fatima", Email: "fatima@example.com", Subject: "Admissions", Message: "Course timings?",
	})
	require.NoError(t, err)

	stored, err := svc.Get(context.Background(), inquiry.ID)
	require.NoError(t, err)
	require.Equal(t, StatusNew, stored.Status)
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(discardLogger(), repo, nil)
	ctx := context.Background()

	first, err := svc.Submit(ctx, SubmitInput{Name: "A", Email: "a@example.com", Subject: "One", Message: "m"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, SubmitInput{Name: "B", Email: "b@example.com", Subject: "Two", Message: "m"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, StatusArchived)
	require.NoError(t, err)

	archived, pagination, err := svc.List(ctx, ListFilter{Status: StatusArchived})
	require.NoError(t, err)
	require.Len(t, archived, 1)
	require.Equal(t, first.ID, archived[0].ID)
	require.Equal(t, 1, pagination.Total)

	fresh, pagination, err := svc.List(ctx, ListFilter{Status: StatusNew})
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	require.Equal(t, 1, pagination.Total)
}

func TestListPaginates(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(discardLogger(), repo, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Submit(ctx, SubmitInput{Name: "N", Email: "n@example.com", Subject: "S", Message: "m"})
		require.NoError(t, err)
	}

	pageOne, pagination, err := svc.List(ctx, ListFilter{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, pageOne, 2)
	require.Equal(t, 5, pagination.Total)
	require.Equal(t, 3, pagination.TotalPages)

	pageThree, _, err := svc.List(ctx, ListFilter{Page: 3, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, pageThree, 1)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := NewService(discardLogger(), newMemoryRepo(), nil)
	_, err := svc.UpdateStatus(context.Background(), "any", Status("bogus"))
	require.ErrorIs(t, err, shared.ErrValidation)
}
