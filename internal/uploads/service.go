package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"resume-profile/internal/extract"
	"resume-profile/internal/profile"
	"resume-profile/internal/resumes"
	"resume-profile/internal/shared/storage/object"
	"resume-profile/internal/shared/telemetry"
	"resume-profile/internal/usernames"
)

// MaxUploadBytes caps accepted résumé files.
const MaxUploadBytes = extract.DefaultMaxBytes

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedType = errors.New("only PDF and DOCX files are supported")
	ErrTooLarge        = errors.New("file exceeds the 10MB limit")
)

// Service stores uploaded résumé files and resets the owner's record.
type Service struct {
	Store     object.ObjectStore
	Resumes   resumes.Repo
	Usernames usernames.Repo
}

// Status summarises how far a user's résumé has been processed.
type Status struct {
	HasFile       bool   `json:"hasFile"`
	HasContent    bool   `json:"hasContent"`
	HasResumeData bool   `json:"hasResumeData"`
	FileName      string `json:"fileName,omitempty"`
	Username      string `json:"username,omitempty"`
	ProfileURL    string `json:"profileUrl,omitempty"`
}

// Upload saves the file and replaces the user's record with one that only
// references it, so the next preview run extracts and processes it afresh.
func (s *Service) Upload(ctx context.Context, userID, fileName, declaredType string, r io.Reader) (resumes.Record, error) {
	fileName = strings.TrimSpace(fileName)
	if userID == "" || fileName == "" {
		return resumes.Record{}, ErrInvalidInput
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return resumes.Record{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return resumes.Record{}, ErrInvalidInput
	}
	if len(data) > MaxUploadBytes {
		return resumes.Record{}, ErrTooLarge
	}

	mimeType := extract.NormalizeMimeType(declaredType, fileName, data)
	if mimeType != extract.MimePDF && mimeType != extract.MimeDOCX {
		return resumes.Record{}, ErrUnsupportedType
	}

	previous, err := s.Resumes.Get(ctx, userID)
	if err != nil && !errors.Is(err, resumes.ErrNotFound) {
		return resumes.Record{}, fmt.Errorf("load resume: %w", err)
	}

	key, size, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return resumes.Record{}, fmt.Errorf("save upload: %w", err)
	}

	rec := resumes.Record{File: &resumes.File{
		URL:      object.KeyURL(key),
		Key:      key,
		Name:     fileName,
		Size:     size,
		MimeType: mimeType,
	}}
	if err := s.Resumes.Store(ctx, userID, rec); err != nil {
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			telemetry.Warn("uploads.cleanup_failed", map[string]any{"user_id": userID, "key": key, "error": delErr})
		}
		return resumes.Record{}, fmt.Errorf("store resume: %w", err)
	}

	if previous.File != nil && previous.File.Key != "" && previous.File.Key != key {
		if err := s.Store.Delete(ctx, previous.File.Key); err != nil {
			telemetry.Warn("uploads.previous_delete_failed", map[string]any{
				"user_id": userID,
				"key":     previous.File.Key,
				"error":   err,
			})
		}
	}

	telemetry.Info("uploads.stored", map[string]any{
		"user_id":    userID,
		"size_bytes": size,
		"mime_type":  mimeType,
	})
	return rec, nil
}

// Status reports the user's processing progress.
func (s *Service) Status(ctx context.Context, userID string) (Status, error) {
	var st Status
	rec, err := s.Resumes.Get(ctx, userID)
	switch {
	case errors.Is(err, resumes.ErrNotFound):
	case err != nil:
		return Status{}, fmt.Errorf("load resume: %w", err)
	default:
		st.HasFile = rec.HasFile()
		st.HasContent = rec.FileContent != nil
		st.HasResumeData = rec.ResumeData != nil
		if rec.File != nil {
			st.FileName = rec.File.Name
		}
	}

	name, err := s.Usernames.Lookup(ctx, userID)
	switch {
	case errors.Is(err, usernames.ErrNotFound):
	case err != nil:
		return Status{}, fmt.Errorf("lookup username: %w", err)
	default:
		st.Username = name
		st.ProfileURL = profile.ProfilePath(name)
	}
	return st, nil
}
