package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/qa-forum/internal/models"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in models.Credentials
		json.NewDecoder(r.Body).Decode(&in)
		if in.Username != "alice" || in.Password != "password1" {
			t.Errorf("unexpected body: %+v", in)
		}
		json.NewEncoder(w).Encode(models.AuthResponse{ID: 1, Username: "alice", Token: "tok"})
	}))
	defer srv.Close()

	sess, err := New(srv.URL, srv.Client()).Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess != (Session{ID: 1, Username: "alice", Token: "tok"}) {
		t.Errorf("session: got %+v", sess)
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization: got %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Answer{ID: 5, Content: "Because.", QuestionID: 10})
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client()).WithToken("tok")
	a, err := c.PostAnswer(context.Background(), models.NewAnswer{Content: "Because.", QuestionID: 10})
	if err != nil {
		t.Fatalf("PostAnswer: %v", err)
	}
	if a.ID != 5 {
		t.Errorf("answer: got %+v", a)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/questions":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"not authorized, token failed"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"validation failed","fields":{"content":"must end with \"?\""}}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())

	_, err := c.AskQuestion(context.Background(), models.NewQuestion{Content: "Why?", CategoryID: 1})
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, err = c.Register(context.Background(), "alice", "x")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest || apiErr.Fields["content"] == "" {
		t.Fatalf("expected validation APIError, got %v", err)
	}
	if IsUnauthorized(err) {
		t.Error("400 must not be unauthorized")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("Error(): %q", err.Error())
	}
}

func TestFileStore(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "nested", "session.json")}

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	want := Session{ID: 1, Username: "alice", Token: "tok"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := store.Load()
	if err != nil || !ok || got != want {
		t.Fatalf("Load: got %+v ok=%v err=%v", got, ok, err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("expected no session after Clear")
	}
}

func TestQuestionLabel(t *testing.T) {
	title := "Lenses"
	long := strings.Repeat("a", 80) + "?"

	tests := []struct {
		name string
		q    models.Question
		want string
	}{
		{"title wins", models.Question{Title: &title, Content: long}, "Lenses"},
		{"short content", models.Question{Content: "Why?"}, "Why?"},
		{"long content", models.Question{Content: long}, strings.Repeat("a", 70) + "..."},
	}
	for _, tt := range tests {
		if got := QuestionLabel(tt.q); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
	if got := QuestionHeading(models.Question{Content: "Why?"}); got != "No Title" {
		t.Errorf("QuestionHeading: got %q", got)
	}
}
