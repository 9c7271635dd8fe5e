package books

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service wraps book business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListPublic returns the public library listing.
func (s *Service) ListPublic(ctx context.Context) ([]Book, error) {
	return s.repo.ListPublic(ctx)
}

// ListAll returns every book including private ones.
func (s *Service) ListAll(ctx context.Context) ([]Book, error) {
	return s.repo.ListAll(ctx)
}

// Get fetches a single book.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new book attributed to the uploading admin.
func (s *Service) Create(ctx context.Context, uploadedBy string, input BookInput) (Book, error) {
	book := Book{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		Course:      input.Course,
		CoverImage:  input.CoverImage,
		PDFURL:      input.PDFURL,
		UploadedBy:  uploadedBy,
		IsPublic:    true,
		Chapters:    input.Chapters,
		CreatedAt:   time.Now().UTC(),
	}
	if input.IsPublic != nil {
		book.IsPublic = *input.IsPublic
	}
	if book.Chapters == nil {
		book.Chapters = []string{}
	}
	if err := s.repo.Create(ctx, book); err != nil {
		return Book{}, err
	}
	return book, nil
}

// Update applies non-empty input fields to an existing book.
func (s *Service) Update(ctx context.Context, id string, input BookInput) (Book, error) {
	book, err := s.repo.Get(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if input.Title != "" {
		book.Title = input.Title
	}
	if input.Author != "" {
		book.Author = input.Author
	}
	if input.Description != "" {
		book.Description = input.Description
	}
	if input.Course != "" {
		book.Course = input.Course
	}
	if input.CoverImage != "" {
		book.CoverImage = input.CoverImage
	}
	if input.PDFURL != "" {
		book.PDFURL = input.PDFURL
	}
	if input.IsPublic != nil {
		book.IsPublic = *input.IsPublic
	}
	if input.Chapters != nil {
		book.Chapters = input.Chapters
	}
	if err := s.repo.Update(ctx, book); err != nil {
		return Book{}, err
	}
	return book, nil
}

// Delete removes a book.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
