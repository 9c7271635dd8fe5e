package contact

import "time"

// Status tracks how far staff have taken an inquiry.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	}
	return false
}

// Inquiry is a contact form submission.
type Inquiry struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	Subject               string    `json:"subject"`
	Message               string    `json:"message"`
	Attachment            string    `json:"attachment,omitempty"`
	Status                Status    `json:"status"`
	CallbackRequest       bool      `json:"callbackRequest"`
	PreferredCallbackTime string    `json:"preferredCallbackTime,omitempty"`
	IPAddress             string    `json:"-"`
	UserAgent             string    `json:"-"`
	SubmittedAt           time.Time `json:"submittedAt"`
}

// SubmitInput carries a public form submission.
type SubmitInput struct {
	Name                  string
	Email                 string
	Phone                 string
	Subject               string
	Message               string
	Attachment            string
	CallbackRequest       bool
	PreferredCallbackTime string
	IPAddress             string
	UserAgent             string
}

// ListFilter narrows the admin inbox listing.
type ListFilter struct {
	Status  Status
	Page    int
	PerPage int
}
