package courses

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Service wraps course business rules and the public-listing cache.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
	group  singleflight.Group
}

// NewService constructs a new Service.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// ListActive returns the public course listing. Cache misses collapse into a
// single store query under concurrent load.
func (s *Service) ListActive(ctx context.Context) ([]Course, error) {
	if cached, ok := s.cache.GetActive(ctx); ok {
		return cached, nil
	}
	result, err, _ := s.group.Do(activeListKey, func() (any, error) {
		courses, err := s.repo.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetActive(ctx, courses); err != nil && s.logger != nil {
			s.logger.Warn("cache course listing", slog.Any("error", err))
		}
		return courses, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Course), nil
}

// ListAll returns every course, including inactive ones.
func (s *Service) ListAll(ctx context.Context) ([]Course, error) {
	return s.repo.ListAll(ctx)
}

// Get fetches a single course.
func (s *Service) Get(ctx context.Context, id string) (Course, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new course and invalidates the public listing.
func (s *Service) Create(ctx context.Context, input CourseInput) (Course, error) {
	course := Course{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		Fee:         input.Fee,
		IsActive:    true,
		Image:       input.Image,
		CreatedAt:   time.Now().UTC(),
	}
	if input.IsActive != nil {
		course.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return Course{}, err
	}
	s.invalidate(ctx)
	return course, nil
}

// Update applies non-empty input fields to an existing course.
func (s *Service) Update(ctx context.Context, id string, input CourseInput) (Course, error) {
	course, err := s.repo.Get(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if input.Name != "" {
		course.Name = input.Name
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Duration != "" {
		course.Duration = input.Duration
	}
	if input.FeeSet {
		course.Fee = input.Fee
	}
	if input.IsActive != nil {
		course.IsActive = *input.IsActive
	}
	if input.Image != "" {
		course.Image = input.Image
	}
	if err := s.repo.Update(ctx, course); err != nil {
		return Course{}, err
	}
	s.invalidate(ctx)
	return course, nil
}

// Delete removes a course.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil && s.logger != nil {
		s.logger.Warn("invalidate course cache", slog.Any("error", err))
	}
}
