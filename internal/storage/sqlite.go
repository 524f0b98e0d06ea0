// Package storage provides the SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/campushire/parsume/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS student_resumes (
		student_id TEXT PRIMARY KEY,
		resume_path TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS student_profiles (
		student_id TEXT PRIMARY KEY,
		profile TEXT NOT NULL,
		edited_by_student INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS parse_proposals (
		student_id TEXT PRIMARY KEY,
		fields TEXT NOT NULL,
		source_file TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// SetResumePath records the current resume file for a student.
func (s *SQLiteStorage) SetResumePath(ctx context.Context, studentID, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO student_resumes (student_id, resume_path, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(student_id) DO UPDATE SET resume_path = excluded.resume_path, updated_at = excluded.updated_at`,
		studentID, path, time.Now(),
	)
	return err
}

// ResumePath returns the stored resume path, or "" if the student has none.
func (s *SQLiteStorage) ResumePath(ctx context.Context, studentID string) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx,
		`SELECT resume_path FROM student_resumes WHERE student_id = ?`, studentID,
	).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// ClearResumePath removes the resume reference for a student.
func (s *SQLiteStorage) ClearResumePath(ctx context.Context, studentID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM student_resumes WHERE student_id = ?`, studentID)
	return err
}

// SaveProfile stores or replaces the profile row for a student.
func (s *SQLiteStorage) SaveProfile(ctx context.Context, studentID string, profile models.Profile, editedByStudent bool) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO student_profiles (student_id, profile, edited_by_student, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(student_id) DO UPDATE SET
			profile = excluded.profile,
			edited_by_student = excluded.edited_by_student,
			updated_at = excluded.updated_at`,
		studentID, string(profileJSON), editedByStudent, time.Now(),
	)
	return err
}

// GetProfile returns the stored profile, or nil when the student has never saved one.
func (s *SQLiteStorage) GetProfile(ctx context.Context, studentID string) (models.Profile, error) {
	var profileJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile FROM student_profiles WHERE student_id = ?`, studentID,
	).Scan(&profileJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(profileJSON), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return profile, nil
}

// SaveProposal stages parsed fields for a student, replacing any earlier proposal.
func (s *SQLiteStorage) SaveProposal(ctx context.Context, p *Proposal) error {
	fieldsJSON, err := json.Marshal(p.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal fields: %w", err)
	}

	p.CreatedAt = time.Now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO parse_proposals (student_id, fields, source_file, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(student_id) DO UPDATE SET
			fields = excluded.fields,
			source_file = excluded.source_file,
			created_at = excluded.created_at`,
		p.StudentID, string(fieldsJSON), p.SourceFile, p.CreatedAt,
	)
	return err
}

// GetProposal returns the staged proposal, or nil when none exists.
func (s *SQLiteStorage) GetProposal(ctx context.Context, studentID string) (*Proposal, error) {
	p := Proposal{StudentID: studentID}
	var fieldsJSON string
	var sourceFile sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT fields, source_file, created_at FROM parse_proposals WHERE student_id = ?`,
		studentID,
	).Scan(&fieldsJSON, &sourceFile, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fieldsJSON), &p.Fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fields: %w", err)
	}
	p.SourceFile = sourceFile.String
	return &p, nil
}

// DeleteProposal discards the staged proposal for a student.
func (s *SQLiteStorage) DeleteProposal(ctx context.Context, studentID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM parse_proposals WHERE student_id = ?`, studentID)
	return err
}

// ListProfiles returns all stored profiles ordered by student ID.
func (s *SQLiteStorage) ListProfiles(ctx context.Context) ([]*StudentProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT student_id, profile, edited_by_student, updated_at
		 FROM student_profiles ORDER BY student_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*StudentProfile
	for rows.Next() {
		var sp StudentProfile
		var profileJSON string
		if err := rows.Scan(&sp.StudentID, &profileJSON, &sp.EditedByStudent, &sp.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(profileJSON), &sp.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile for %s: %w", sp.StudentID, err)
		}
		profiles = append(profiles, &sp)
	}
	return profiles, rows.Err()
}

// CountProfiles returns the number of stored profiles.
func (s *SQLiteStorage) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM student_profiles`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
