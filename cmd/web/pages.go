package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/qa-forum/internal/client"
	"github.com/crucial707/qa-forum/internal/models"
)

// app holds what every page handler needs.
type app struct {
	api      *client.Client
	sessions SessionStore
	views    *renderer
}

type sessionKey struct{}

func sessionFrom(ctx context.Context) client.Session {
	s, _ := ctx.Value(sessionKey{}).(client.Session)
	return s
}

// requireSession sends visitors without a session to the login page.
func (a *app) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := a.sessions.Load(r)
		if !ok {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, s)))
	})
}

// apiFor returns a client authenticated as the request's session.
func (a *app) apiFor(r *http.Request) *client.Client {
	return a.api.WithToken(sessionFrom(r.Context()).Token)
}

// handleAPIError deals with a failed API call on a protected page. A 401
// clears the session and returns to login; anything else becomes a message.
func (a *app) handleAPIError(w http.ResponseWriter, r *http.Request, err error) (msg string, handled bool) {
	if client.IsUnauthorized(err) {
		a.sessions.Clear(w)
		http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
		return "", true
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, false
	}
	slog.Error("api call failed", "path", r.URL.Path, "error", err)
	return "The forum is unavailable right now. Please try again.", false
}

// safeNext keeps redirects on this site. Browsers read "\" as "/", so
// "/\host" is as offsite as "//host".
func safeNext(next string) string {
	const fallback = "/dashboard"
	if !strings.HasPrefix(next, "/") || strings.ContainsRune(next, '\\') {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(next, "//") {
		return fallback
	}
	return next
}

// ==========================
// Login / Register / Logout
// ==========================

func (a *app) loginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.sessions.Load(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	a.views.render(w, http.StatusOK, "login.html", pageData{Title: "Log in", Next: r.URL.Query().Get("next")})
}

func (a *app) loginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")
	data := pageData{Title: "Log in", Next: next, Form: map[string]string{"username": username}}

	if username == "" || password == "" {
		data.Error = "Please enter all fields."
		a.views.render(w, http.StatusBadRequest, "login.html", data)
		return
	}

	s, err := a.api.Login(r.Context(), username, password)
	if err != nil {
		data.Error = loginErrorMessage(err)
		a.views.render(w, http.StatusUnauthorized, "login.html", data)
		return
	}
	if err := a.sessions.Save(w, s); err != nil {
		data.Error = "Could not start a session."
		a.views.render(w, http.StatusInternalServerError, "login.html", data)
		return
	}
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

func loginErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	slog.Error("login call failed", "error", err)
	return "The forum is unavailable right now. Please try again."
}

func (a *app) registerForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.sessions.Load(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	a.views.render(w, http.StatusOK, "register.html", pageData{Title: "Register"})
}

func (a *app) registerSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")
	data := pageData{Title: "Register", Form: map[string]string{"username": username}}

	switch {
	case username == "" || password == "" || confirm == "":
		data.Error = "Please enter all fields."
	case password != confirm:
		data.Error = "Passwords do not match."
	case r.FormValue("terms") == "":
		data.Error = "You must accept the terms and conditions."
	}
	if data.Error != "" {
		a.views.render(w, http.StatusBadRequest, "register.html", data)
		return
	}

	s, err := a.api.Register(r.Context(), username, password)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			data.Error = apiErr.Message
			data.Fields = apiErr.Fields
		} else {
			data.Error = loginErrorMessage(err)
		}
		a.views.render(w, http.StatusBadRequest, "register.html", data)
		return
	}
	if err := a.sessions.Save(w, s); err != nil {
		data.Error = "Could not start a session."
		a.views.render(w, http.StatusInternalServerError, "register.html", data)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (a *app) logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ==========================
// Dashboard
// ==========================

// dashboard lists the categories and the questions of the selected one
// (?category=ID, default the first category).
func (a *app) dashboard(w http.ResponseWriter, r *http.Request) {
	api := a.apiFor(r)
	data := pageData{Title: "Dashboard", Session: sessionFrom(r.Context())}

	categories, err := api.Categories(r.Context())
	if err != nil {
		msg, handled := a.handleAPIError(w, r, err)
		if handled {
			return
		}
		data.Error = msg
		a.views.render(w, http.StatusBadGateway, "dashboard.html", data)
		return
	}
	data.Categories = categories
	if len(categories) == 0 {
		a.views.render(w, http.StatusOK, "dashboard.html", data)
		return
	}

	data.Selected = categories[0].ID
	if id, err := strconv.Atoi(r.URL.Query().Get("category")); err == nil {
		data.Selected = id
	}

	questions, err := api.QuestionsByCategory(r.Context(), data.Selected)
	if err != nil {
		msg, handled := a.handleAPIError(w, r, err)
		if handled {
			return
		}
		data.Error = msg
	}
	data.Questions = questions
	a.views.render(w, http.StatusOK, "dashboard.html", data)
}

// ==========================
// Questions
// ==========================

func (a *app) questionForm(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Ask a question", Session: sessionFrom(r.Context())}
	categories, err := a.apiFor(r).Categories(r.Context())
	if err != nil {
		msg, handled := a.handleAPIError(w, r, err)
		if handled {
			return
		}
		data.Error = msg
	}
	data.Categories = categories
	if id, err := strconv.Atoi(r.URL.Query().Get("category")); err == nil {
		data.Selected = id
	}
	a.views.render(w, http.StatusOK, "question_new.html", data)
}

func (a *app) questionSubmit(w http.ResponseWriter, r *http.Request) {
	api := a.apiFor(r)
	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	categoryID, _ := strconv.Atoi(r.FormValue("category"))

	data := pageData{
		Title:    "Ask a question",
		Session:  sessionFrom(r.Context()),
		Selected: categoryID,
		Form:     map[string]string{"title": title, "content": content},
	}

	switch {
	case content == "":
		data.Error = "Question content cannot be empty."
	case !strings.HasSuffix(content, "?"):
		data.Error = "Question content must end with a question mark."
	case categoryID == 0:
		data.Error = "Please choose a category."
	}
	if data.Error == "" {
		q, err := api.AskQuestion(r.Context(), models.NewQuestion{Title: title, Content: content, CategoryID: categoryID})
		if err == nil {
			http.Redirect(w, r, "/questions/"+strconv.Itoa(q.ID), http.StatusFound)
			return
		}
		msg, handled := a.handleAPIError(w, r, err)
		if handled {
			return
		}
		data.Error = msg
	}

	// Re-show the form with the category list.
	if categories, err := api.Categories(r.Context()); err == nil {
		data.Categories = categories
	}
	a.views.render(w, http.StatusBadRequest, "question_new.html", data)
}

func (a *app) questionDetail(w http.ResponseWriter, r *http.Request) {
	a.showQuestion(w, r, http.StatusOK, "", "")
}

func (a *app) showQuestion(w http.ResponseWriter, r *http.Request, status int, formError, draft string) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	data := pageData{
		Session: sessionFrom(r.Context()),
		Error:   formError,
		Form:    map[string]string{"content": draft},
	}

	q, err := a.apiFor(r).Question(r.Context(), id)
	if err != nil {
		msg, handled := a.handleAPIError(w, r, err)
		if handled {
			return
		}
		data.Title = "Question"
		data.Error = msg
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			status = http.StatusNotFound
		} else {
			status = http.StatusBadGateway
		}
		a.views.render(w, status, "question_detail.html", data)
		return
	}
	data.Title = client.QuestionHeading(q.Question)
	data.Question = q
	a.views.render(w, status, "question_detail.html", data)
}

func (a *app) answerSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		a.showQuestion(w, r, http.StatusBadRequest, "Answer content cannot be empty.", "")
		return
	}

	_, err = a.apiFor(r).PostAnswer(r.Context(), models.NewAnswer{Content: content, QuestionID: id})
	if err != nil {
		msg, handled := a.handleAPIError(w, r, err)
		if handled {
			return
		}
		a.showQuestion(w, r, http.StatusBadRequest, msg, content)
		return
	}
	http.Redirect(w, r, "/questions/"+strconv.Itoa(id), http.StatusFound)
}
