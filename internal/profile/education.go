package profile

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"resume-profile/internal/resumes"
)

const educationTitle = "Education"

// Unicode space separators count as whitespace too, so "of\u00a0Oxford" splits.
var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// EducationItem is one rendered education card.
type EducationItem struct {
	School      string
	Degree      string
	Period      string
	PeriodLabel string
	AnchorID    string
}

// EducationSection is the view model for the education list.
type EducationSection struct {
	Title string
	Items []EducationItem
}

// ValidEducations keeps entries with a school, a degree and a start date, in
// input order. Duplicates are kept.
func ValidEducations(entries []resumes.Education) []resumes.Education {
	out := make([]resumes.Education, 0, len(entries))
	for _, e := range entries {
		if e.School == "" || e.Degree == "" || e.Start == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// BuildEducationSection returns false when no entry is valid.
func BuildEducationSection(entries []resumes.Education) (EducationSection, bool) {
	valid := ValidEducations(entries)
	if len(valid) == 0 {
		return EducationSection{}, false
	}
	items := make([]EducationItem, 0, len(valid))
	for _, e := range valid {
		items = append(items, EducationItem{
			School:      e.School,
			Degree:      e.Degree,
			Period:      e.Start + " - " + e.End,
			PeriodLabel: "Period: " + e.Start + " to " + e.End,
			AnchorID:    educationAnchor(e.School),
		})
	}
	return EducationSection{Title: educationTitle, Items: items}, true
}

// RenderEducation renders the education section, or nothing when no entry is valid.
func RenderEducation(entries []resumes.Education) (template.HTML, error) {
	section, ok := BuildEducationSection(entries)
	if !ok {
		return "", nil
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "education", section); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func educationAnchor(school string) string {
	return "education-" + whitespaceRun.ReplaceAllString(strings.ToLower(school), "-")
}
