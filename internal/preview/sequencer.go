package preview

import (
	"context"

	"resume-profile/internal/resumes"
	"resume-profile/internal/usernames"
)

// Stage identifies a step of preview preparation.
type Stage string

const (
	StageIngest   Stage = "ingest"
	StageProcess  Stage = "process"
	StageUsername Stage = "username"
)

// Loading messages shown while an external call is outstanding.
const (
	MessageScraping   = "Scraping and reading your resume carefully..."
	MessageProcessing = "Processing content with AI to tailor your profile..."
	MessageReserving  = "Reserving your public profile link..."
)

// Redirect targets.
const (
	RedirectResume         = "/resume"
	RedirectUpload         = "/upload"
	RedirectUsernameFailed = "/resume?error=usernameCreationFailed"
	defaultSignInURL       = "/sign-in"
)

// Session is the caller's resolved identity. An empty UserID means anonymous.
type Session struct {
	UserID    string
	SignInURL string
}

// LoadingState is reported right before a slow step starts.
type LoadingState struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

// Outcome is either a redirect or a fully processed record with its username.
type Outcome struct {
	Redirect string
	Record   resumes.Record
	Username string
}

// IsRedirect reports whether the caller should be sent elsewhere.
func (o Outcome) IsRedirect() bool {
	return o.Redirect != ""
}

func redirectTo(location string) Outcome {
	return Outcome{Redirect: location}
}

// TextExtractor returns the plain text of the document behind a file URL.
type TextExtractor interface {
	ExtractText(ctx context.Context, fileURL string) (string, error)
}

// Generator produces a structured résumé from plain text.
type Generator interface {
	GenerateResumeObject(ctx context.Context, text string) (resumes.ResumeData, error)
}

// Sequencer drives a user's résumé from uploaded file to published profile.
// Steps whose results are already stored are skipped, so repeated runs are
// cheap and resume where a previous run stopped.
type Sequencer struct {
	Resumes   resumes.Repo
	Usernames usernames.Repo
	Extractor TextExtractor
	Generator Generator

	// Candidate picks the username to reserve; defaults to usernames.Candidate.
	Candidate func(name string) string
}

// Run prepares the preview for sess. onLoading may be nil.
func (s *Sequencer) Run(ctx context.Context, sess Session, onLoading func(LoadingState)) (Outcome, error) {
	if onLoading == nil {
		onLoading = func(LoadingState) {}
	}
	if sess.UserID == "" {
		signIn := sess.SignInURL
		if signIn == "" {
			signIn = defaultSignInURL
		}
		return redirectTo(signIn), nil
	}

	rec, out, err := s.ingest(ctx, sess.UserID, onLoading)
	if err != nil || out.IsRedirect() {
		return out, err
	}
	return s.process(ctx, sess.UserID, rec, onLoading)
}
