package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/campushire/parsume/internal/export"
	"github.com/campushire/parsume/internal/models"
	"github.com/campushire/parsume/internal/storage"
)

// uploadResponse is returned after a resume upload. Status is "parsed" when
// the parser found usable fields and "limited" when the student must fill
// the profile manually.
type uploadResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Fields  *models.Fields `json:"fields"`
	Profile models.Profile `json:"profile"`
}

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedResumeExtensions[ext] {
		s.respondError(w, http.StatusUnsupportedMediaType,
			fmt.Sprintf("unsupported file type %q; upload a .pdf, .docx or .doc resume", ext))
		return
	}

	oldPath, err := s.storage.ResumePath(r.Context(), studentID)
	if err != nil {
		s.logger.Error("resume lookup failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	path, err := s.uploads.Save(studentID, header.Filename, file)
	if err != nil {
		s.logger.Error("upload save failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to store resume")
		return
	}

	result, err := s.ingest.Ingest(r.Context(), studentID, path)
	if err != nil {
		s.logger.Error("ingest failed", zap.String("student_id", studentID), zap.Error(err))
		_ = s.uploads.Remove(path)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Uploading a new resume replaces the old file on disk.
	if oldPath != "" && oldPath != path {
		if err := s.uploads.Remove(oldPath); err != nil {
			s.logger.Warn("failed to remove replaced resume", zap.String("path", oldPath), zap.Error(err))
		}
	}

	resp := uploadResponse{Fields: result.Fields, Profile: result.Profile}
	if result.Parsed {
		resp.Status = "parsed"
		resp.Message = "Resume uploaded and parsed. Review the extracted details on your profile."
	} else {
		resp.Status = "limited"
		resp.Message = "Resume uploaded, but automatic parsing found little. Please fill in your profile manually."
	}
	s.respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	path, err := s.storage.ResumePath(r.Context(), studentID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if path == "" {
		s.respondError(w, http.StatusNotFound, "no resume on file")
		return
	}

	if err := s.ingest.Remove(r.Context(), studentID); err != nil {
		s.logger.Error("resume removal failed", zap.String("student_id", studentID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.uploads.Remove(path); err != nil {
		s.logger.Warn("failed to delete resume file", zap.String("path", path), zap.Error(err))
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// handleGetProfile returns the student's profile with any staged parse
// proposal merged in. Stored non-empty values always win over parsed ones.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")
	ctx := r.Context()

	stored, err := s.storage.GetProfile(ctx, studentID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	proposal, err := s.storage.GetProposal(ctx, studentID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stored == nil && proposal == nil {
		s.respondError(w, http.StatusNotFound, "profile not found")
		return
	}

	profile := stored
	if proposal != nil {
		profile = models.Merge(stored, s.mapper.MapToProfile(proposal.Fields))
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"student_id":   studentID,
		"profile":      profile,
		"has_proposal": proposal != nil,
	})
}

type saveProfileRequest struct {
	Profile models.Profile `json:"profile"`
}

// handleSaveProfile stores the profile exactly as submitted. Empty strings
// normalize to null so a cleared field does not shadow future parses.
// Saving also discards the staged proposal; the reviewed values are now the
// student's own.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	var req saveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Profile == nil {
		s.respondError(w, http.StatusBadRequest, "profile is required")
		return
	}

	profile := make(models.Profile, len(req.Profile))
	for k, v := range req.Profile {
		if v != nil && *v == "" {
			v = nil
		}
		profile[k] = v
	}

	if err := s.storage.SaveProfile(r.Context(), studentID, profile, true); err != nil {
		s.logger.Error("profile save failed", zap.String("student_id", studentID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.storage.DeleteProposal(r.Context(), studentID); err != nil {
		s.logger.Warn("failed to discard proposal", zap.String("student_id", studentID), zap.Error(err))
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > 100 {
		limit = 100
	}

	hits, err := s.index.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query": query,
		"hits":  hits,
		"total": len(hits),
	})
}

// handleExport streams all profiles as a spreadsheet. Staged proposals are
// merged per student so placement staff see parsed data the student has not
// confirmed yet.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profiles, err := s.storage.ListProfiles(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, sp := range profiles {
		proposal, err := s.storage.GetProposal(ctx, sp.StudentID)
		if err != nil || proposal == nil {
			continue
		}
		sp.Profile = models.Merge(sp.Profile, s.mapper.MapToProfile(proposal.Fields))
	}

	filename := fmt.Sprintf("profiles_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteProfiles(w, profiles); err != nil {
		s.logger.Error("export failed", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := map[string]interface{}{"status": "ok"}

	if n, err := s.storage.CountProfiles(ctx); err == nil {
		resp["profiles"] = n
	}
	if s.index != nil {
		if n, err := s.index.DocCount(); err == nil {
			resp["indexed_resumes"] = n
		}
	}
	diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.UploadDir,
		s.config.Storage.ResumeIndexPath,
	)
	if err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
