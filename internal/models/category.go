package models

import "time"

// Category groups questions. Categories are seeded by migrations.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRef is the category projection embedded in questions.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Ref returns the projection of c.
func (c Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name}
}
