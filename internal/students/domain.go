package students

import "time"

// Status tracks a student record through certificate issuance.
type Status string

const (
	StatusPending   Status = "pending"
	StatusVerified  Status = "verified"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusCompleted:
		return true
	}
	return false
}

// Student is a certificate record, looked up publicly by serial number.
type Student struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	FatherName     string    `json:"fatherName"`
	SerialNo       string    `json:"srNo"`
	RegistrationNo string    `json:"regNo"`
	Duration       string    `json:"duration"`
	IssueDate      string    `json:"issueDate"`
	Course         string    `json:"course"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Status         Status    `json:"status"`
	CertificateURL string    `json:"certificateUrl"`
	RegisteredAt   time.Time `json:"registeredAt"`
}

// StudentInput carries create/update fields. Empty strings on update keep the
// stored value.
type StudentInput struct {
	Name           string
	FatherName     string
	SerialNo       string
	RegistrationNo string
	Duration       string
	IssueDate      string
	Course         string
	Phone          string
	Email          string
	Status         Status
	CertificateURL string
}
