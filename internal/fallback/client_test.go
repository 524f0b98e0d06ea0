package fallback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/extract" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("document"); err != nil {
			t.Errorf("document part missing: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Jane Doe","email":"jane@mail.com","skills":["python"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	fields, err := c.ExtractAll(context.Background(), writeDoc(t, "raw bytes"))
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	if fields.Name != "Jane Doe" || fields.Email != "jane@mail.com" {
		t.Errorf("fields = %+v", fields)
	}
	if len(fields.Skills) != 1 || fields.Skills[0] != "python" {
		t.Errorf("skills = %v", fields.Skills)
	}
}

func TestExtractAll_serviceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.ExtractAll(context.Background(), writeDoc(t, "raw")); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestExtractAll_contextDeadline(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(srv.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.ExtractAll(ctx, writeDoc(t, "raw")); err == nil {
		t.Fatal("expected error when context deadline is exceeded")
	}
}

func TestExtractAll_missingFile(t *testing.T) {
	c := NewClient("http://localhost:1", time.Second)
	if _, err := c.ExtractAll(context.Background(), "/nonexistent/resume.pdf"); err == nil {
		t.Fatal("expected error for missing document")
	}
}
