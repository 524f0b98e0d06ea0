// Package resumeindex provides full-text search over parsed resume fields
// using Bleve.
package resumeindex

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/campushire/parsume/internal/models"
)

// Hit is one search result.
type Hit struct {
	StudentID string  `json:"student_id"`
	Score     float64 `json:"score"`
}

// resumeDoc is the flattened shape indexed per student. List fields are
// joined so Bleve tokenizes them as text.
type resumeDoc struct {
	StudentID      string `json:"student_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Skills         string `json:"skills"`
	Projects       string `json:"projects"`
	Certifications string `json:"certifications"`
}

// Index is a Bleve-backed search index over parsed resumes, keyed by
// student ID.
type Index struct {
	index bleve.Index
}

// New creates or opens a Bleve index at path.
// If the path already exists, the existing index is opened and reused.
// If you change the index mapping in code, remove the index directory to
// force a full re-index.
func New(path string) (*Index, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so a query for
	// "tensorflow" matches the exact token the parser emitted.
	textFieldMapping.Analyzer = standard.Name
	for _, field := range []string{"name", "email", "skills", "projects", "certifications"} {
		docMapping.AddFieldMappingsAt(field, textFieldMapping)
	}
	docMapping.AddFieldMappingsAt("student_id", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("resume", docMapping)
	im.DefaultType = "resume"
	im.DefaultMapping = docMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open resume index: %w", openErr)
		}
		return &Index{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume index: %w", err)
	}
	return &Index{index: index}, nil
}

// Index stores the parsed fields for a student, replacing any previous entry.
func (ix *Index) Index(ctx context.Context, studentID string, fields *models.Fields) error {
	doc := resumeDoc{
		StudentID:      studentID,
		Name:           fields.Name,
		Email:          fields.Email,
		Skills:         strings.Join(fields.Skills, " "),
		Projects:       strings.Join(fields.Projects, " "),
		Certifications: strings.Join(fields.Certifications, " "),
	}
	return ix.index.Index(studentID, doc)
}

// Delete removes a student's entry from the index.
func (ix *Index) Delete(ctx context.Context, studentID string) error {
	return ix.index.Delete(studentID)
}

// Search runs a match query over all indexed fields and returns up to limit
// hits ordered by score.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]*Hit, error) {
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit
	results, err := ix.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("resume search failed: %w", err)
	}
	out := make([]*Hit, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &Hit{StudentID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// DocCount returns the number of indexed resumes.
func (ix *Index) DocCount() (uint64, error) {
	return ix.index.DocCount()
}

// Close closes the underlying index.
func (ix *Index) Close() error {
	return ix.index.Close()
}
