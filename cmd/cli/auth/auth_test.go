package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/crucial707/qa-forum/cmd/cli/config"
	"github.com/crucial707/qa-forum/internal/client"
	"github.com/crucial707/qa-forum/internal/models"
)

// setupEnv points the CLI at srv and a temp session file.
func setupEnv(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	t.Setenv("FORUM_SESSION_FILE", path)
	if srv != nil {
		t.Setenv("FORUM_API_URL", srv.URL)
	}
	return path
}

func runCmd(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/auth/register":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(models.AuthResponse{ID: 7, Username: creds.Username, Token: "tok-reg"})
		case "/api/auth/login":
			if creds.Password != "secret123" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid username or password"})
				return
			}
			_ = json.NewEncoder(w).Encode(models.AuthResponse{ID: 7, Username: creds.Username, Token: "tok-login"})
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
}

func TestLogin_StoresSession(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()
	path := setupEnv(t, srv)

	out, err := runCmd(t, loginCmd(), "", "--username", "alice", "--password", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Logged in as alice") {
		t.Fatalf("unexpected output: %s", out)
	}

	s, ok, err := client.FileStore{Path: path}.Load()
	if err != nil || !ok {
		t.Fatalf("expected stored session, ok=%v err=%v", ok, err)
	}
	if s.Token != "tok-login" || s.ID != 7 {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestLogin_PromptsForPassword(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()
	setupEnv(t, srv)

	out, err := runCmd(t, loginCmd(), "secret123\n", "--username", "alice")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Password: ") {
		t.Fatalf("expected password prompt, got: %s", out)
	}
}

func TestLogin_Rejected(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()
	path := setupEnv(t, srv)

	_, err := runCmd(t, loginCmd(), "", "--username", "alice", "--password", "wrong")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 API error, got %v", err)
	}
	if _, ok, _ := (client.FileStore{Path: path}).Load(); ok {
		t.Fatal("no session should be stored after a rejected login")
	}
}

func TestRegister_StoresSession(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()
	path := setupEnv(t, srv)

	if _, err := runCmd(t, registerCmd(), "", "--username", "bob", "--password", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	s, ok, _ := client.FileStore{Path: path}.Load()
	if !ok || s.Username != "bob" || s.Token != "tok-reg" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestWhoamiAndLogout(t *testing.T) {
	path := setupEnv(t, nil)

	if _, err := runCmd(t, whoamiCmd(), ""); !errors.Is(err, config.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}

	if err := (client.FileStore{Path: path}).Save(client.Session{ID: 3, Username: "carol", Token: "t"}); err != nil {
		t.Fatal(err)
	}
	out, err := runCmd(t, whoamiCmd(), "")
	if err != nil || !strings.Contains(out, "carol (id 3)") {
		t.Fatalf("whoami: out=%q err=%v", out, err)
	}

	if _, err := runCmd(t, logoutCmd(), ""); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := (client.FileStore{Path: path}).Load(); ok {
		t.Fatal("session should be cleared")
	}
}
