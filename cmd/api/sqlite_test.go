package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/qa-forum/internal/config"
	"github.com/crucial707/qa-forum/internal/db"
	"github.com/crucial707/qa-forum/internal/models"
)

// newSQLiteServer serves the router over a migrated temp-file SQLite database.
func newSQLiteServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := testConfig()
	cfg.DBDriver = config.DriverSQLite
	cfg.DBPath = filepath.Join(t.TempDir(), "forum.db")
	cfg.DBMaxOpenConns = 5
	cfg.DBMaxIdleConns = 2
	cfg.DBConnMaxIdleTime = 10 * time.Second
	cfg.DBConnectTimeout = 5 * time.Second

	if err := db.Migrate(cfg.DBDriver, cfg.MigrateURL()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	database, err := db.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	srv := httptest.NewServer(newRouter(database, cfg))
	t.Cleanup(func() {
		srv.Close()
		database.Close()
	})
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, dst interface{}) int {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	status := resp.StatusCode
	decode(t, resp, dst)
	return status
}

func categoryID(t *testing.T, srv *httptest.Server, name string) int {
	t.Helper()
	var categories []models.Category
	if status := getJSON(t, srv, "/api/categories", &categories); status != http.StatusOK {
		t.Fatalf("categories status: got %d", status)
	}
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not seeded: %+v", name, categories)
	return 0
}

// TestAPI_SQLite_QuestionAndAnswerFlow runs register, login, ask, fetch,
// answer and refetch against real SQL.
func TestAPI_SQLite_QuestionAndAnswerFlow(t *testing.T) {
	srv := newSQLiteServer(t)
	general := categoryID(t, srv, "General")

	resp := postJSON(t, srv, "/api/auth/register", "", map[string]string{"username": "alice", "password": "password1"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: got %d, want 201", resp.StatusCode)
	}
	var registered models.AuthResponse
	decode(t, resp, &registered)

	resp = postJSON(t, srv, "/api/auth/login", "", map[string]string{"username": "alice", "password": "password1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: got %d, want 200", resp.StatusCode)
	}
	var session models.AuthResponse
	decode(t, resp, &session)
	if session.ID != registered.ID || session.Token == "" {
		t.Fatalf("login: unexpected session %+v", session)
	}

	resp = postJSON(t, srv, "/api/questions", session.Token, map[string]interface{}{"content": "Why?", "categoryId": general})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("ask status: got %d, want 201", resp.StatusCode)
	}
	var asked models.Question
	decode(t, resp, &asked)
	if asked.ID == 0 || asked.Title != nil || asked.CreatedAt.IsZero() {
		t.Fatalf("ask: unexpected question %+v", asked)
	}
	if asked.User.Username != "alice" || asked.Category.ID != general {
		t.Fatalf("ask: unexpected projections %+v", asked)
	}

	detail := getQuestion(t, srv, asked.ID)
	if detail.Content != "Why?" || len(detail.Answers) != 0 {
		t.Fatalf("fetch: expected zero answers, got %+v", detail)
	}

	for _, content := range []string{"Because.", "Also this."} {
		resp = postJSON(t, srv, "/api/answers", session.Token, map[string]interface{}{"content": content, "questionId": asked.ID})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("answer status: got %d, want 201", resp.StatusCode)
		}
		var answered models.Answer
		decode(t, resp, &answered)
		if answered.QuestionID != asked.ID || answered.User.Username != "alice" || answered.CreatedAt.IsZero() {
			t.Fatalf("answer: unexpected %+v", answered)
		}
	}

	detail = getQuestion(t, srv, asked.ID)
	if len(detail.Answers) != 2 || detail.Answers[0].Content != "Because." || detail.Answers[1].Content != "Also this." {
		t.Fatalf("refetch: expected two answers oldest first, got %+v", detail.Answers)
	}
	if detail.Answers[0].User.Username != "alice" {
		t.Errorf("refetch: answer author %+v", detail.Answers[0].User)
	}

	var listed []models.Question
	if status := getJSON(t, srv, "/api/questions/category/"+strconv.Itoa(general), &listed); status != http.StatusOK {
		t.Fatalf("list status: got %d", status)
	}
	if len(listed) != 1 || listed[0].AnswerCount != 2 {
		t.Fatalf("list: unexpected %+v", listed)
	}
}

func TestAPI_SQLite_Rejections(t *testing.T) {
	srv := newSQLiteServer(t)
	devops := categoryID(t, srv, "DevOps")

	var empty []models.Question
	if status := getJSON(t, srv, "/api/questions/category/"+strconv.Itoa(devops), &empty); status != http.StatusOK || empty == nil || len(empty) != 0 {
		t.Fatalf("empty category: status %d, body %+v", status, empty)
	}

	var notFound map[string]string
	if status := getJSON(t, srv, "/api/questions/category/9999", &notFound); status != http.StatusNotFound {
		t.Fatalf("unknown category: got %d, want 404", status)
	}

	// 41 characters, 81 bytes.
	resp := postJSON(t, srv, "/api/auth/register", "", map[string]string{"username": "bob", "password": strings.Repeat("é", 40) + "1"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("multibyte password: got %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, srv, "/api/questions", "", map[string]interface{}{"content": "Why?", "categoryId": devops})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: got %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, srv, "/api/auth/register", "", map[string]string{"username": "bob", "password": "password1"})
	var session models.AuthResponse
	decode(t, resp, &session)

	resp = postJSON(t, srv, "/api/questions", session.Token, map[string]interface{}{"content": "No mark", "categoryId": devops})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing question mark: got %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}
