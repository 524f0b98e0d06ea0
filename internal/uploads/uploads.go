// Package uploads stores resume files on disk under a single managed root.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store saves and removes uploaded resume files under root.
type Store struct {
	root string
}

// NewStore creates the upload directory if needed and returns a store over it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute upload directory path.
func (s *Store) Root() string {
	return s.root
}

// Save writes the uploaded content to disk and returns the stored path.
// The stored name is "<studentID>_<token>_<filename>" with the filename
// sanitized and a short random token so repeated uploads never collide.
func (s *Store) Save(studentID, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s_%s",
		sanitizeComponent(studentID),
		uuid.NewString()[:8],
		sanitizeFilename(filename),
	)
	path := filepath.Join(s.root, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// Remove deletes a stored file. Paths outside the upload root are refused;
// a missing file is not an error.
func (s *Store) Remove(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove file outside upload root: %s", path)
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitizeFilename keeps the base name only and collapses anything outside
// a conservative character set. The extension survives sanitization, which
// the extractor depends on.
func sanitizeFilename(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	clean := unsafeFilenameChars.ReplaceAllString(base, "_")
	clean = strings.Trim(clean, "._")
	if clean == "" {
		return "resume"
	}
	return clean
}

func sanitizeComponent(s string) string {
	clean := unsafeFilenameChars.ReplaceAllString(s, "_")
	if clean == "" {
		return "unknown"
	}
	return clean
}
