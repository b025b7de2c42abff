package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/qa-forum/internal/middleware"
	"github.com/crucial707/qa-forum/internal/models"
	"github.com/crucial707/qa-forum/internal/repo"
)

// ==========================
// Question Handler
// ==========================
type QuestionHandler struct {
	Questions  *repo.QuestionRepo
	Categories *repo.CategoryRepo
	Answers    *repo.AnswerRepo
}

// ==========================
// List Questions By Category
// ==========================

// ListByCategory returns the questions of a category, oldest first. An
// existing category without questions yields [].
func (h *QuestionHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(chi.URLParam(r, "categoryId"))
	if err != nil {
		JSONError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	if _, err := h.Categories.GetByID(r.Context(), categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "category not found", http.StatusNotFound)
			return
		}
		internalError(w, r, "list questions: get category", err)
		return
	}

	questions, err := h.Questions.ListByCategory(r.Context(), categoryID)
	if err != nil {
		internalError(w, r, "list questions", err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// ==========================
// Get Question
// ==========================

// GetQuestion returns a question with its answers in chronological order.
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid question id", http.StatusBadRequest)
		return
	}

	q, err := h.Questions.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "question not found", http.StatusNotFound)
			return
		}
		internalError(w, r, "get question", err)
		return
	}

	answers, err := h.Answers.ListByQuestion(r.Context(), id)
	if err != nil {
		internalError(w, r, "get question: list answers", err)
		return
	}

	writeJSON(w, http.StatusOK, models.QuestionDetail{Question: q, Answers: answers})
}

// ==========================
// Create Question
// ==========================

// CreateQuestion stores a question for the authenticated user. The content
// must end with "?" after trimming; a blank title is stored as NULL.
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		JSONError(w, middleware.MsgNoToken, http.StatusUnauthorized)
		return
	}

	var input models.NewQuestion
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Content = strings.TrimSpace(input.Content)
	input.Title = strings.TrimSpace(input.Title)
	if !validateInput(w, input) {
		return
	}

	category, err := h.Categories.GetByID(r.Context(), input.CategoryID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "invalid category", http.StatusBadRequest)
			return
		}
		internalError(w, r, "create question: get category", err)
		return
	}

	var title *string
	if input.Title != "" {
		title = &input.Title
	}

	q, err := h.Questions.Create(r.Context(), title, input.Content, category.ID, identity.ID)
	if err != nil {
		internalError(w, r, "create question", err)
		return
	}
	q.User = models.UserRef{ID: identity.ID, Username: identity.Username}
	q.Category = category.Ref()

	writeJSON(w, http.StatusCreated, q)
}
