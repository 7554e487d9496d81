package llm

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed prompts/resume_extract_v1.txt
var resumeExtractV1 string

const maxSkills = 15

// PromptTemplate returns the rendered instructions for version and whether
// the version was recognized. Unknown versions fall back to v1.
func PromptTemplate(version string) (string, bool) {
	tmpl, ok := resumeExtractV1, version == "v1"
	used := version
	if !ok {
		used = DefaultPromptVersion
	}
	return strings.NewReplacer(
		"{{PROMPT_VERSION}}", used,
		"{{MAX_SKILLS}}", strconv.Itoa(maxSkills),
	).Replace(tmpl), ok
}
