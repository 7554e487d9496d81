package openai

import (
	"fmt"
	"strings"

	"resume-profile/internal/llm"
	"resume-profile/internal/shared/telemetry"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const (
	systemPrompt        = "You are a résumé parsing engine. Respond with JSON only. No markdown. Never omit keys. Output must match the schema exactly."
	systemPromptFixJSON = "You are a JSON repair tool. Return only valid JSON that matches the schema exactly."
)

// BuildPrompt creates the chat messages for a résumé extraction request.
func BuildPrompt(promptVersion string, resumeText string) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "developer", Content: resolvePromptTemplate(promptVersion)},
		{Role: "user", Content: fmt.Sprintf("Resume Text:\n%s", resumeText)},
	}
}

func buildFixPrompt(promptVersion string, raw []byte) []Message {
	return []Message{
		{Role: "system", Content: systemPromptFixJSON},
		{Role: "developer", Content: resolvePromptTemplate(promptVersion)},
		{Role: "user", Content: fmt.Sprintf("Fix this JSON to match the schema exactly. Output JSON only:\n%s", string(raw))},
	}
}

func resolvePromptTemplate(promptVersion string) string {
	version := strings.TrimSpace(promptVersion)
	template, ok := llm.PromptTemplate(version)
	if !ok {
		telemetry.Warn("llm.unknown_prompt_version", map[string]any{
			"requested": version,
			"used":      llm.DefaultPromptVersion,
		})
	}
	return template
}
