// Package ingest runs the full resume intake flow: parse the document, map
// the fields onto the profile schema, stage the result as a proposal, and
// index it for search.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/campushire/parsume/internal/mapper"
	"github.com/campushire/parsume/internal/models"
	"github.com/campushire/parsume/internal/pipeline"
	"github.com/campushire/parsume/internal/resumeindex"
	"github.com/campushire/parsume/internal/storage"
)

// Result reports what one ingestion produced.
type Result struct {
	// Fields are the raw parsed fields, possibly all empty.
	Fields *models.Fields

	// Profile is the profile-schema projection of Fields.
	Profile models.Profile

	// Parsed is true when the parse found at least one contact, skill,
	// certification or project value. When false the upload was stored but
	// nothing was staged for the profile.
	Parsed bool
}

// Service orchestrates resume ingestion for students.
type Service struct {
	pipeline *pipeline.Pipeline
	mapper   *mapper.Mapper
	store    storage.Storage
	index    *resumeindex.Index
	logger   *zap.Logger
}

// NewService wires the ingestion flow. index may be nil to run without
// search indexing.
func NewService(p *pipeline.Pipeline, m *mapper.Mapper, store storage.Storage, index *resumeindex.Index, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{pipeline: p, mapper: m, store: store, index: index, logger: logger}
}

// Ingest parses the resume at path for the given student, records the file
// as the student's current resume, and — when the parse produced anything
// usable — stages the mapped fields as a proposal and indexes them.
// Indexing failures are logged, not returned; the proposal is the
// authoritative outcome.
func (s *Service) Ingest(ctx context.Context, studentID, path string) (*Result, error) {
	fields := s.pipeline.ParseDocument(ctx, path)
	profile := s.mapper.MapToProfile(fields)
	parsed := fields.HasHeadline()

	if err := s.store.SetResumePath(ctx, studentID, path); err != nil {
		return nil, fmt.Errorf("failed to record resume: %w", err)
	}

	if parsed {
		proposal := &storage.Proposal{
			StudentID:  studentID,
			Fields:     fields,
			SourceFile: filepath.Base(path),
		}
		if err := s.store.SaveProposal(ctx, proposal); err != nil {
			return nil, fmt.Errorf("failed to stage parsed fields: %w", err)
		}
		if s.index != nil {
			if err := s.index.Index(ctx, studentID, fields); err != nil {
				s.logger.Warn("failed to index resume",
					zap.String("student_id", studentID),
					zap.Error(err),
				)
			}
		}
	}

	s.logger.Info("resume ingested",
		zap.String("student_id", studentID),
		zap.String("file", filepath.Base(path)),
		zap.Bool("parsed", parsed),
	)
	return &Result{Fields: fields, Profile: profile, Parsed: parsed}, nil
}

// Remove forgets a student's resume: the stored file reference is cleared
// and the search entry dropped. The staged proposal is kept so fields
// already parsed remain available to the profile until the student saves.
func (s *Service) Remove(ctx context.Context, studentID string) error {
	if err := s.store.ClearResumePath(ctx, studentID); err != nil {
		return fmt.Errorf("failed to clear resume: %w", err)
	}
	if s.index != nil {
		if err := s.index.Delete(ctx, studentID); err != nil {
			s.logger.Warn("failed to remove resume from index",
				zap.String("student_id", studentID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// StudentIDFromFilename extracts the student ID from an upload-style
// filename of the form "<studentID>_rest". Files without an underscore use
// the whole base name minus extension.
func StudentIDFromFilename(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "_"); i > 0 {
		return base[:i]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
