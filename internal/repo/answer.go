package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/qa-forum/internal/models"
)

// AnswerRepo persists answers.
type AnswerRepo struct {
	DB *sql.DB
}

// NewAnswerRepo returns a new AnswerRepo.
func NewAnswerRepo(db *sql.DB) *AnswerRepo {
	return &AnswerRepo{DB: db}
}

// Create inserts an answer. The caller has already checked that the question exists.
func (r *AnswerRepo) Create(ctx context.Context, content string, questionID, userID int) (models.Answer, error) {
	a := models.Answer{
		Content:    content,
		QuestionID: questionID,
		UserID:     userID,
	}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO answers (content, question_id, user_id) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		content, questionID, userID,
	).Scan(&a.ID, ts(&a.CreatedAt), ts(&a.UpdatedAt))
	return a, err
}

// ListByQuestion returns the answers of a question with their authors, oldest first.
func (r *AnswerRepo) ListByQuestion(ctx context.Context, questionID int) ([]models.Answer, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.content, a.question_id, a.user_id, a.created_at, a.updated_at, u.username
		 FROM answers a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.question_id = $1
		 ORDER BY a.created_at ASC, a.id ASC`,
		questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.Content, &a.QuestionID, &a.UserID, ts(&a.CreatedAt), ts(&a.UpdatedAt), &a.User.Username); err != nil {
			return nil, err
		}
		a.User.ID = a.UserID
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
