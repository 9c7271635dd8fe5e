package students

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

type memoryRepo struct {
	records map[string]Student
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[string]Student)}
}

func (r *memoryRepo) List(ctx context.Context) ([]Student, error) {
	var out []Student
	for _, s := range r.records {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Student, error) {
	if s, ok := r.records[id]; ok {
		return s, nil
	}
	return Student{}, shared.ErrNotFound
}

func (r *memoryRepo) GetBySerialNo(ctx context.Context, serialNo string) (Student, error) {
	for _, s := range r.records {
		if s.SerialNo == serialNo {
			return s, nil
		}
	}
	return Student{}, shared.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, student Student) error {
	for _, existing := range r.records {
		if existing.SerialNo == student.SerialNo {
			return shared.ErrDuplicate
		}
	}
	r.records[student.ID] = student
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, student Student) error {
	if _, ok := r.records[student.ID]; !ok {
		return shared.ErrNotFound
	}
	for id, existing := range r.records {
		if id != student.ID && existing.SerialNo == student.SerialNo {
			return shared.ErrDuplicate
		}
	}
	r.records[student.ID] = student
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func TestRegisterStartsPending(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	student, err := svc.Register(ctx, StudentInput{
		Name: "Ayesha Khan", FatherName: "Imran Khan", SerialNo: "MI-2024-001",
		Course: "Calligraphy", Phone: "03001234567",
		Status: StatusCompleted, CertificateURL: "/uploads/certificates/forged.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, student.Status)
	require.Empty(t, student.CertificateURL)
	require.NotEmpty(t, student.ID)
}

func TestVerifyCertificateBySerialNo(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, StudentInput{
		Name: "Bilal Ahmed", SerialNo: "MI-2024-002", Course: "Tajweed",
		Status: StatusCompleted, CertificateURL: "/uploads/certificates/b.pdf",
	})
	require.NoError(t, err)

	found, err := svc.VerifyCertificate(ctx, "MI-2024-002")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, StatusCompleted, found.Status)

	_, err = svc.VerifyCertificate(ctx, "MI-0000-000")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDuplicateSerialNoRejected(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, StudentInput{Name: "First", SerialNo: "MI-2024-003", Course: "Tajweed"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, StudentInput{Name: "Second", SerialNo: "MI-2024-003", Course: "Tajweed"})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, StudentInput{
		Name: "Ayesha Khan", FatherName: "Imran Khan", SerialNo: "MI-2024-004",
		Course: "Calligraphy", Phone: "03001234567",
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, created.Status)

	updated, err := svc.Update(ctx, created.ID, StudentInput{
		Status: StatusCompleted, CertificateURL: "/uploads/certificates/a.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, "Ayesha Khan", updated.Name)
	require.Equal(t, "MI-2024-004", updated.SerialNo)
	require.Equal(t, StatusCompleted, updated.Status)
	require.Equal(t, "/uploads/certificates/a.pdf", updated.CertificateURL)
}

func TestDeleteMissingStudent(t *testing.T) {
	svc := NewService(newMemoryRepo())
	require.ErrorIs(t, svc.Delete(context.Background(), "missing"), shared.ErrNotFound)
}
