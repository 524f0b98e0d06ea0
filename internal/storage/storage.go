// Package storage persists student records: profile fields, resume file
// references, and parse proposals awaiting student review.
package storage

import (
	"context"
	"time"

	"github.com/campushire/parsume/internal/models"
)

// StudentProfile is one student's stored profile row.
type StudentProfile struct {
	StudentID       string         `json:"student_id"`
	Profile         models.Profile `json:"profile"`
	EditedByStudent bool           `json:"edited_by_student"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Proposal holds parsed resume fields staged for a student, kept separate
// from the stored profile until merged at read time.
type Proposal struct {
	StudentID  string         `json:"student_id"`
	Fields     *models.Fields `json:"fields"`
	SourceFile string         `json:"source_file"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Storage defines persistence operations for student records.
type Storage interface {
	// SetResumePath records the on-disk path of a student's current resume,
	// replacing any previous one.
	SetResumePath(ctx context.Context, studentID, path string) error

	// ResumePath returns the stored resume path, or "" when none is on file.
	ResumePath(ctx context.Context, studentID string) (string, error)

	// ClearResumePath removes the resume reference for a student.
	ClearResumePath(ctx context.Context, studentID string) error

	// SaveProfile stores the student's profile fields, replacing any
	// existing row. editedByStudent records whether the write came from the
	// student rather than the parser.
	SaveProfile(ctx context.Context, studentID string, profile models.Profile, editedByStudent bool) error

	// GetProfile returns the stored profile, or nil when the student has
	// never saved one.
	GetProfile(ctx context.Context, studentID string) (models.Profile, error)

	// SaveProposal stages parsed fields for a student, replacing any
	// earlier proposal.
	SaveProposal(ctx context.Context, p *Proposal) error

	// GetProposal returns the staged proposal, or nil when none exists.
	GetProposal(ctx context.Context, studentID string) (*Proposal, error)

	// DeleteProposal discards the staged proposal for a student.
	DeleteProposal(ctx context.Context, studentID string) error

	// ListProfiles returns all stored profiles ordered by student ID.
	ListProfiles(ctx context.Context) ([]*StudentProfile, error)

	// CountProfiles returns the number of stored profiles.
	CountProfiles(ctx context.Context) (int64, error)

	// Close releases the underlying store.
	Close() error
}
