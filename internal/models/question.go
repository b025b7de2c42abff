package models

import "time"

// Question is a question row plus the author and category projections
// loaded by the same query. Title is nil when the author gave none.
type Question struct {
	ID          int         `json:"id"`
	Title       *string     `json:"title"`
	Content     string      `json:"content"`
	CategoryID  int         `json:"category_id"`
	UserID      int         `json:"user_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	User        UserRef     `json:"user"`
	Category    CategoryRef `json:"category"`
	AnswerCount int         `json:"answer_count"`
}

// QuestionDetail is a question with its answers in chronological order.
type QuestionDetail struct {
	Question
	Answers []Answer `json:"answers"`
}

// NewQuestion is the create-question request body.
type NewQuestion struct {
	Title      string `json:"title,omitempty" validate:"max=255"`
	Content    string `json:"content" validate:"required,endswith=?"`
	CategoryID int    `json:"categoryId" validate:"required"`
}
