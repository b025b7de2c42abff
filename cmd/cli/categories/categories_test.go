package categories

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/qa-forum/internal/models"
)

func TestListCategories_TableOutput(t *testing.T) {
	desc := "SQL and storage"
	cats := []models.Category{
		{ID: 1, Name: "General"},
		{ID: 3, Name: "Databases", Description: &desc},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/categories" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(cats)
	}))
	defer srv.Close()

	t.Setenv("FORUM_API_URL", srv.URL)
	t.Setenv("FORUM_SESSION_FILE", t.TempDir()+"/session.json")

	cmd := listCategoriesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("categories: %v", err)
	}

	for _, want := range []string{"General", "Databases", "SQL and storage"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output, got: %s", want, out.String())
		}
	}
}
