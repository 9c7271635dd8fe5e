package books

import "time"

// Book is a library item, optionally backed by an uploaded PDF.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Course      string    `json:"course"`
	CoverImage  string    `json:"coverImage"`
	PDFURL      string    `json:"pdfUrl"`
	UploadedBy  string    `json:"uploadedBy"`
	IsPublic    bool      `json:"isPublic"`
	Chapters    []string  `json:"chapters"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookInput carries create/update fields. Empty strings on update keep the
// stored value.
type BookInput struct {
	Title       string
	Author      string
	Description string
	Course      string
	CoverImage  string
	PDFURL      string
	IsPublic    *bool
	Chapters    []string
}
