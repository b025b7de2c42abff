package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crucial707/qa-forum/internal/auth"
	"github.com/crucial707/qa-forum/internal/middleware"
)

var (
	userColumns     = []string{"id", "username", "password_hash", "created_at", "updated_at"}
	categoryColumns = []string{"id", "name", "description", "created_at", "updated_at"}
	questionColumns = []string{
		"id", "title", "content", "category_id", "user_id", "created_at", "updated_at",
		"username", "name", "answer_count",
	}
	answerColumns = []string{"id", "content", "question_id", "user_id", "created_at", "updated_at", "username"}
)

func testTokens() *auth.TokenService {
	return auth.NewTokenService([]byte("test-secret"), time.Hour, "test")
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, id int, username string) *http.Request {
	ctx := middleware.WithIdentity(req.Context(), middleware.Identity{ID: id, Username: username})
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
}
