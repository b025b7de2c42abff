package models

import "time"

type Answer struct {
	ID         int       `json:"id"`
	Content    string    `json:"content"`
	QuestionID int       `json:"question_id"`
	UserID     int       `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       UserRef   `json:"user"`
}

// NewAnswer is the create-answer request body.
type NewAnswer struct {
	Content    string `json:"content" validate:"required"`
	QuestionID int    `json:"questionId" validate:"required"`
}
