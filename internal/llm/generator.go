package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-profile/internal/resumes"
	"resume-profile/internal/shared/metrics"
	"resume-profile/internal/shared/telemetry"
)

// ResumeGenerator turns extracted résumé text into validated ResumeData.
type ResumeGenerator struct {
	Client        Client
	PromptVersion string
	Now           func() time.Time
}

// NewResumeGenerator wraps client with schema validation.
func NewResumeGenerator(client Client) *ResumeGenerator {
	return &ResumeGenerator{Client: client, PromptVersion: DefaultPromptVersion}
}

// GenerateResumeObject asks the model for a structured résumé. Output that
// fails schema validation gets exactly one repair attempt.
func (g *ResumeGenerator) GenerateResumeObject(ctx context.Context, text string) (resumes.ResumeData, error) {
	if strings.TrimSpace(text) == "" {
		return resumes.ResumeData{}, errors.New("resume text is empty")
	}
	now := g.Now
	if now == nil {
		now = time.Now
	}
	input := ExtractInput{ResumeText: text, PromptVersion: g.promptVersion()}

	start := now()
	data, err := g.generate(ctx, input)
	elapsed := now().Sub(start)
	metrics.ObserveLLMDurationMs(float64(elapsed.Milliseconds()))

	if err != nil {
		metrics.IncExtractionFailure()
		telemetry.Error("llm.resume_failed", map[string]any{
			"prompt_version": input.PromptVersion,
			"duration_ms":    elapsed.Milliseconds(),
			"error":          err,
		})
		return resumes.ResumeData{}, err
	}
	metrics.IncStructuredExtraction()
	telemetry.Info("llm.resume_generated", map[string]any{
		"prompt_version":  input.PromptVersion,
		"duration_ms":     elapsed.Milliseconds(),
		"work_experience": len(data.WorkExperience),
		"education":       len(data.Education),
	})
	return data, nil
}

func (g *ResumeGenerator) generate(ctx context.Context, input ExtractInput) (resumes.ResumeData, error) {
	raw, err := g.Client.ExtractResume(ctx, input)
	if err != nil {
		return resumes.ResumeData{}, fmt.Errorf("extract resume: %w", err)
	}
	data, err := resumes.DecodeResumeData(raw)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, resumes.ErrInvalidResume) {
		return resumes.ResumeData{}, err
	}

	telemetry.Warn("llm.resume_invalid", map[string]any{
		"prompt_version": input.PromptVersion,
		"error":          err,
	})
	raw, err = g.Client.ExtractResume(WithFixJSON(ctx, string(raw)), input)
	if err != nil {
		return resumes.ResumeData{}, fmt.Errorf("repair resume json: %w", err)
	}
	return resumes.DecodeResumeData(raw)
}

func (g *ResumeGenerator) promptVersion() string {
	if v := strings.TrimSpace(g.PromptVersion); v != "" {
		return v
	}
	return DefaultPromptVersion
}
