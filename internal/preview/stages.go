package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-profile/internal/resumes"
	"resume-profile/internal/shared/metrics"
	"resume-profile/internal/shared/telemetry"
	"resume-profile/internal/usernames"
)

// ingest makes sure the record carries extracted text.
func (s *Sequencer) ingest(ctx context.Context, userID string, onLoading func(LoadingState)) (resumes.Record, Outcome, error) {
	rec, err := s.Resumes.Get(ctx, userID)
	if errors.Is(err, resumes.ErrNotFound) {
		logRedirect(userID, StageIngest, RedirectResume, "no_record")
		return resumes.Record{}, redirectTo(RedirectResume), nil
	}
	if err != nil {
		return resumes.Record{}, Outcome{}, fmt.Errorf("load resume: %w", err)
	}
	if !rec.HasFile() {
		logRedirect(userID, StageIngest, RedirectResume, "no_file")
		return resumes.Record{}, redirectTo(RedirectResume), nil
	}
	if strings.TrimSpace(rec.Text()) != "" {
		return rec, Outcome{}, nil
	}

	onLoading(LoadingState{Stage: StageIngest, Message: MessageScraping})
	text, err := s.Extractor.ExtractText(ctx, rec.FileURL())
	if err != nil {
		return resumes.Record{}, Outcome{}, err
	}
	rec = rec.WithContent(text)
	if err := s.Resumes.Store(ctx, userID, rec); err != nil {
		return resumes.Record{}, Outcome{}, fmt.Errorf("store extracted text: %w", err)
	}
	return rec, Outcome{}, nil
}

// process makes sure the record carries structured data and the user owns a
// public username.
func (s *Sequencer) process(ctx context.Context, userID string, rec resumes.Record, onLoading func(LoadingState)) (Outcome, error) {
	if strings.TrimSpace(rec.Text()) == "" {
		logRedirect(userID, StageProcess, RedirectUpload, "no_content")
		return redirectTo(RedirectUpload), nil
	}

	if rec.ResumeData == nil {
		onLoading(LoadingState{Stage: StageProcess, Message: MessageProcessing})
		data, err := s.Generator.GenerateResumeObject(ctx, rec.Text())
		if err != nil {
			return Outcome{}, err
		}
		rec = rec.WithResumeData(data)
		if err := s.Resumes.Store(ctx, userID, rec); err != nil {
			return Outcome{}, fmt.Errorf("store resume data: %w", err)
		}
	}

	username, ok := s.ensureUsername(ctx, userID, rec.ResumeData.Header.Name, onLoading)
	if !ok {
		return redirectTo(RedirectUsernameFailed), nil
	}
	return Outcome{Record: rec, Username: username}, nil
}

func (s *Sequencer) ensureUsername(ctx context.Context, userID, name string, onLoading func(LoadingState)) (string, bool) {
	existing, err := s.Usernames.Lookup(ctx, userID)
	if err == nil {
		return existing, true
	}
	if !errors.Is(err, usernames.ErrNotFound) {
		usernameFailed(userID, "", err)
		return "", false
	}

	pick := s.Candidate
	if pick == nil {
		pick = usernames.Candidate
	}
	candidate := pick(name)

	onLoading(LoadingState{Stage: StageUsername, Message: MessageReserving})
	username, created, err := s.Usernames.CreateIfAbsent(ctx, userID, candidate)
	if err != nil {
		usernameFailed(userID, candidate, err)
		return "", false
	}
	if created {
		metrics.IncUsernameCreated()
		telemetry.Info("preview.username_created", map[string]any{
			"user_id":  userID,
			"username": username,
		})
	}
	return username, true
}

func usernameFailed(userID, candidate string, err error) {
	metrics.IncUsernameFailure()
	telemetry.Error("preview.username_failed", map[string]any{
		"user_id":   userID,
		"candidate": candidate,
		"error":     err,
	})
	logRedirect(userID, StageUsername, RedirectUsernameFailed, "username_failed")
}

func logRedirect(userID string, stage Stage, location, reason string) {
	telemetry.Info("preview.redirect", map[string]any{
		"user_id":  userID,
		"stage":    string(stage),
		"location": location,
		"reason":   reason,
	})
}
