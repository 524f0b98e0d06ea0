package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/campushire/parsume/internal/extract"
	"github.com/campushire/parsume/internal/mapper"
	"github.com/campushire/parsume/internal/parser"
	"github.com/campushire/parsume/internal/pipeline"
	"github.com/campushire/parsume/internal/resumeindex"
	"github.com/campushire/parsume/internal/storage"
)

func writeDocx(t *testing.T, name string, paragraphs ...string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	fmt.Fprint(w, `<?xml version="1.0"?><w:document><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(w, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	fmt.Fprint(w, `</w:body></w:document>`)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestService(t *testing.T) (*Service, storage.Storage, *resumeindex.Index) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	idx, err := resumeindex.New(filepath.Join(t.TempDir(), "resumes.bleve"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = idx.Close() })

	p := pipeline.New(extract.NewExtractor(), parser.NewParser(parser.DefaultVocabulary()))
	svc := NewService(p, mapper.New(mapper.Defaults{Department: "AI & ML"}), store, idx, nil)
	return svc, store, idx
}

func TestIngestStagesProposal(t *testing.T) {
	svc, store, idx := newTestService(t)
	ctx := context.Background()
	path := writeDocx(t, "22IT045_resume.docx",
		"Jane Doe",
		"jane.doe@mail.com",
		"Experienced with Python and TensorFlow",
	)

	res, err := svc.Ingest(ctx, "22IT045", path)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Parsed {
		t.Fatal("expected Parsed = true")
	}
	if res.Fields.Email != "jane.doe@mail.com" {
		t.Errorf("email = %q", res.Fields.Email)
	}
	if res.Profile["department"] == nil || *res.Profile["department"] != "AI & ML" {
		t.Errorf("profile department = %v", res.Profile["department"])
	}

	stored, err := store.ResumePath(ctx, "22IT045")
	if err != nil {
		t.Fatal(err)
	}
	if stored != path {
		t.Errorf("resume path = %q, want %q", stored, path)
	}

	proposal, err := store.GetProposal(ctx, "22IT045")
	if err != nil {
		t.Fatal(err)
	}
	if proposal == nil {
		t.Fatal("expected staged proposal")
	}
	if proposal.SourceFile != "22IT045_resume.docx" {
		t.Errorf("source file = %q", proposal.SourceFile)
	}

	hits, err := idx.Search(ctx, "tensorflow", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].StudentID != "22IT045" {
		t.Errorf("search hits = %+v", hits)
	}
}

func TestIngestUnparseableSkipsProposal(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	path := writeDocx(t, "22IT099_resume.docx",
		"a line with no contact information or recognized terms at all",
	)

	res, err := svc.Ingest(ctx, "22IT099", path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Parsed {
		t.Error("expected Parsed = false")
	}

	// The file itself is still recorded.
	stored, _ := store.ResumePath(ctx, "22IT099")
	if stored != path {
		t.Errorf("resume path = %q, want %q", stored, path)
	}
	proposal, _ := store.GetProposal(ctx, "22IT099")
	if proposal != nil {
		t.Errorf("no proposal should be staged, got %+v", proposal)
	}
}

func TestRemoveKeepsProposal(t *testing.T) {
	svc, store, idx := newTestService(t)
	ctx := context.Background()
	path := writeDocx(t, "22IT045_resume.docx", "Jane Doe", "jane.doe@mail.com")

	if _, err := svc.Ingest(ctx, "22IT045", path); err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove(ctx, "22IT045"); err != nil {
		t.Fatal(err)
	}

	stored, _ := store.ResumePath(ctx, "22IT045")
	if stored != "" {
		t.Errorf("resume path should be cleared, got %q", stored)
	}
	proposal, _ := store.GetProposal(ctx, "22IT045")
	if proposal == nil {
		t.Error("proposal should survive resume removal")
	}
	hits, _ := idx.Search(ctx, "jane", 10)
	if len(hits) != 0 {
		t.Errorf("index entry should be gone, got %+v", hits)
	}
}

func TestStudentIDFromFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/data/uploads/22IT045_a1b2c3d4_resume.pdf", "22IT045"},
		{"22IT045_resume.docx", "22IT045"},
		{"22IT045.pdf", "22IT045"},
		{"_leading.pdf", "_leading"},
	}
	for _, c := range cases {
		if got := StudentIDFromFilename(c.in); got != c.want {
			t.Errorf("StudentIDFromFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
