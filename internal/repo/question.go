package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/qa-forum/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type QuestionRepo struct {
	DB *sql.DB
}

func NewQuestionRepo(db *sql.DB) *QuestionRepo {
	return &QuestionRepo{DB: db}
}

// questionSelect joins the author and category projections and counts answers
// in one round trip.
const questionSelect = `
	SELECT q.id, q.title, q.content, q.category_id, q.user_id, q.created_at, q.updated_at,
	       u.username, c.name,
	       (SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answer_count
	FROM questions q
	JOIN users u ON u.id = q.user_id
	JOIN categories c ON c.id = q.category_id
`

// ========================
// CREATE QUESTION
// ========================

// Create inserts a question. The caller has already checked that the category
// and user exist; the returned question carries only the foreign ids.
func (r *QuestionRepo) Create(ctx context.Context, title *string, content string, categoryID, userID int) (models.Question, error) {
	q := models.Question{
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
		UserID:     userID,
	}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO questions (title, content, category_id, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		title, content, categoryID, userID,
	).Scan(&q.ID, ts(&q.CreatedAt), ts(&q.UpdatedAt))
	return q, err
}

// ========================
// GET QUESTION BY ID
// ========================

func (r *QuestionRepo) GetByID(ctx context.Context, id int) (models.Question, error) {
	row := r.DB.QueryRowContext(ctx, questionSelect+` WHERE q.id = $1`, id)
	q, err := scanQuestion(row)
	if err != nil {
		return models.Question{}, notFound(err)
	}
	return q, nil
}

// Exists reports whether a question with id exists.
func (r *QuestionRepo) Exists(ctx context.Context, id int) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM questions WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ========================
// LIST QUESTIONS BY CATEGORY
// ========================

// ListByCategory returns the questions of a category, oldest first.
func (r *QuestionRepo) ListByCategory(ctx context.Context, categoryID int) ([]models.Question, error) {
	rows, err := r.DB.QueryContext(ctx,
		questionSelect+` WHERE q.category_id = $1 ORDER BY q.created_at ASC, q.id ASC`,
		categoryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func scanQuestion(s rowScanner) (models.Question, error) {
	var (
		q     models.Question
		title sql.NullString
	)
	err := s.Scan(
		&q.ID,
		&title,
		&q.Content,
		&q.CategoryID,
		&q.UserID,
		ts(&q.CreatedAt),
		ts(&q.UpdatedAt),
		&q.User.Username,
		&q.Category.Name,
		&q.AnswerCount,
	)
	if err != nil {
		return models.Question{}, err
	}
	q.Title = nullableString(title)
	q.User.ID = q.UserID
	q.Category.ID = q.CategoryID
	return q, nil
}
