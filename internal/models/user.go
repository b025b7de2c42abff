package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRef is the author projection embedded in questions and answers.
type UserRef struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
