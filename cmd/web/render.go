package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/crucial707/qa-forum/internal/client"
	"github.com/crucial707/qa-forum/internal/models"
)

//go:embed templates
var templatesFS embed.FS

var pages = []string{
	"login.html",
	"register.html",
	"dashboard.html",
	"question_new.html",
	"question_detail.html",
}

var templateFuncs = template.FuncMap{
	"questionLabel":   client.QuestionLabel,
	"questionHeading": client.QuestionHeading,
	"formatTime": func(t time.Time) string {
		return t.Local().Format("Jan 2, 2006 15:04")
	},
}

// pageData is shared by all templates; each page reads the fields it needs.
type pageData struct {
	Title   string
	Session client.Session
	Error   string
	Fields  map[string]string
	Form    map[string]string
	Next    string

	Categories []models.Category
	Selected   int
	Questions  []models.Question
	Question   models.QuestionDetail
}

type renderer struct {
	pages map[string]*template.Template
}

// newRenderer parses every page together with the layout once at startup.
func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).Funcs(templateFuncs).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

func (rd *renderer) render(w http.ResponseWriter, status int, page string, data pageData) {
	t, ok := rd.pages[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template execute", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
