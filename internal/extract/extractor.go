// Package extract provides best-effort text extraction from resume documents.
//
// Extraction never fails from a caller's point of view: for each supported
// format an ordered list of decoders is tried until one yields usable text,
// and total failure degrades to an empty string. Callers treat empty text as
// "nothing to parse", not as an error.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// decoder turns raw file bytes into text. A decoder either succeeds with
// text or fails; failures are never surfaced past the Extractor.
type decoder func(content []byte) (string, error)

// Extractor extracts plain text from uploaded documents.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content, or "" when
// the file cannot be read, the extension is unsupported, or every decoder
// for the format fails.
func (e *Extractor) Extract(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return e.ExtractBytes(content, strings.ToLower(filepath.Ext(path)))
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf"). Decoders are tried in
// order of reliability; the first one producing non-whitespace text wins.
func (e *Extractor) ExtractBytes(content []byte, ext string) string {
	for _, d := range decodersFor(ext) {
		text, err := decode(d, content)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func decodersFor(ext string) []decoder {
	switch ext {
	case ".pdf":
		return []decoder{pdfDocumentText, pdfPageText}
	case ".docx", ".doc":
		return []decoder{docxParagraphText}
	default:
		return nil
	}
}

// decode runs d, converting a decoder panic into a failure. The PDF reader
// panics on some malformed files.
func decode(d decoder, content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return d(content)
}
