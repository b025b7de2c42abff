package handlers

import (
	"net/http"
	"strings"

	"github.com/crucial707/qa-forum/internal/middleware"
	"github.com/crucial707/qa-forum/internal/models"
	"github.com/crucial707/qa-forum/internal/repo"
)

// ==========================
// Answer Handler
// ==========================

// AnswerHandler posts answers. Questions is used to check that the target
// question exists before the insert.
type AnswerHandler struct {
	Answers   *repo.AnswerRepo
	Questions *repo.QuestionRepo
}

// ==========================
// Create Answer
// ==========================

// CreateAnswer stores an answer by the authenticated user on an existing question.
func (h *AnswerHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		JSONError(w, middleware.MsgNoToken, http.StatusUnauthorized)
		return
	}

	var input models.NewAnswer
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Content = strings.TrimSpace(input.Content)
	if !validateInput(w, input) {
		return
	}

	exists, err := h.Questions.Exists(r.Context(), input.QuestionID)
	if err != nil {
		internalError(w, r, "create answer: check question", err)
		return
	}
	if !exists {
		JSONError(w, "question not found", http.StatusNotFound)
		return
	}

	a, err := h.Answers.Create(r.Context(), input.Content, input.QuestionID, identity.ID)
	if err != nil {
		internalError(w, r, "create answer", err)
		return
	}
	a.User = models.UserRef{ID: identity.ID, Username: identity.Username}

	writeJSON(w, http.StatusCreated, a)
}
