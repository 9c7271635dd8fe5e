package students

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service wraps student record business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all student records.
func (s *Service) List(ctx context.Context) ([]Student, error) {
	return s.repo.List(ctx)
}

// Get fetches a student by id.
func (s *Service) Get(ctx context.Context, id string) (Student, error) {
	return s.repo.Get(ctx, id)
}

// VerifyCertificate looks up a record by serial number for the public
// verification page.
func (s *Service) VerifyCertificate(ctx context.Context, serialNo string) (Student, error) {
	return s.repo.GetBySerialNo(ctx, serialNo)
}

// Register creates a record from the public registration form. Records start
// out pending until staff review them.
func (s *Service) Register(ctx context.Context, input StudentInput) (Student, error) {
	input.Status = StatusPending
	input.CertificateURL = ""
	return s.create(ctx, input)
}

// Create stores a staff-entered record. Status defaults to pending.
func (s *Service) Create(ctx context.Context, input StudentInput) (Student, error) {
	if input.Status == "" {
		input.Status = StatusPending
	}
	return s.create(ctx, input)
}

func (s *Service) create(ctx context.Context, input StudentInput) (Student, error) {
	student := Student{
		ID:             uuid.NewString(),
		Name:           input.Name,
		FatherName:     input.FatherName,
		SerialNo:       input.SerialNo,
		RegistrationNo: input.RegistrationNo,
		Duration:       input.Duration,
		IssueDate:      input.IssueDate,
		Course:         input.Course,
		Phone:          input.Phone,
		Email:          input.Email,
		Status:         input.Status,
		CertificateURL: input.CertificateURL,
		RegisteredAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return Student{}, err
	}
	return student, nil
}

// Update applies non-empty input fields to an existing record.
func (s *Service) Update(ctx context.Context, id string, input StudentInput) (Student, error) {
	student, err := s.repo.Get(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if input.Name != "" {
		student.Name = input.Name
	}
	if input.FatherName != "" {
		student.FatherName = input.FatherName
	}
	if input.SerialNo != "" {
		student.SerialNo = input.SerialNo
	}
	if input.RegistrationNo != "" {
		student.RegistrationNo = input.RegistrationNo
	}
	if input.Duration != "" {
		student.Duration = input.Duration
	}
	if input.IssueDate != "" {
		student.IssueDate = input.IssueDate
	}
	if input.Course != "" {
		student.Course = input.Course
	}
	if input.Phone != "" {
		student.Phone = input.Phone
	}
	if input.Email != "" {
		student.Email = input.Email
	}
	if input.Status != "" {
		student.Status = input.Status
	}
	if input.CertificateURL != "" {
		student.CertificateURL = input.CertificateURL
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return Student{}, err
	}
	return student, nil
}

// Delete removes a student record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
