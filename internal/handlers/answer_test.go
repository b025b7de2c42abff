package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/crucial707/qa-forum/internal/models"
	"github.com/crucial707/qa-forum/internal/repo"
)

func TestAnswerHandler_CreateAnswer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT 1 FROM questions WHERE id = \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO answers`).
		WithArgs("Because.", 10, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(5, now, now))

	h := &AnswerHandler{Answers: repo.NewAnswerRepo(db), Questions: repo.NewQuestionRepo(db)}
	rr := httptest.NewRecorder()
	h.CreateAnswer(rr, asUser(jsonRequest(t, "POST", "/api/answers",
		map[string]interface{}{"content": " Because. ", "questionId": 10}), 2, "bob"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	var out models.Answer
	decodeBody(t, rr, &out)
	if out.ID != 5 || out.QuestionID != 10 || out.User.Username != "bob" {
		t.Errorf("unexpected response: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAnswerHandler_CreateAnswer_UnknownQuestion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT 1 FROM questions WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	h := &AnswerHandler{Answers: repo.NewAnswerRepo(db), Questions: repo.NewQuestionRepo(db)}
	rr := httptest.NewRecorder()
	h.CreateAnswer(rr, asUser(jsonRequest(t, "POST", "/api/answers",
		map[string]interface{}{"content": "Because.", "questionId": 99}), 2, "bob"))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAnswerHandler_CreateAnswer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"blank content", map[string]interface{}{"content": "   ", "questionId": 10}},
		{"missing question", map[string]interface{}{"content": "Because."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			defer db.Close()

			h := &AnswerHandler{Answers: repo.NewAnswerRepo(db), Questions: repo.NewQuestionRepo(db)}
			rr := httptest.NewRecorder()
			h.CreateAnswer(rr, asUser(jsonRequest(t, "POST", "/api/answers", tt.body), 2, "bob"))

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rr.Code)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("expectations: %v", err)
			}
		})
	}
}
