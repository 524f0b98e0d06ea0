package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// pdfDocumentText extracts the whole document's text in one pass. This is
// the preferred PDF decoder; its output goes through sanitizePDFText (see
// sanitize.go) before being returned.
func pdfDocumentText(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	tr, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(tr); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return sanitizePDFText(buf.String()), nil
}

// pdfPageText extracts text page by page, substituting the empty string for
// any page that fails individually. Used when whole-document extraction
// fails or yields only whitespace. Output is not sanitized.
func pdfPageText(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	var buf bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A broken page contributes nothing; the rest still count.
			continue
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}
