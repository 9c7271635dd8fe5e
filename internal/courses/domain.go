package courses

import "time"

// Course is a program offered by the institute.
type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Fee         float64   `json:"fee"`
	IsActive    bool      `json:"isActive"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CourseInput carries create/update fields. Empty strings on update keep the
// stored value.
type CourseInput struct {
	Name        string
	Description string
	Duration    string
	Fee         float64
	FeeSet      bool
	IsActive    *bool
	Image       string
}
