package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-profile/internal/resumes"
)

func TestBuildEducationSectionFiltersInvalidEntries(t *testing.T) {
	entries := []resumes.Education{
		{School: "A", Degree: "B", Start: "2020", End: "2024"},
		{School: "", Degree: "X", Start: "2019", End: "2020"},
	}

	section, ok := BuildEducationSection(entries)
	require.True(t, ok)
	assert.Equal(t, "Education", section.Title)
	require.Len(t, section.Items, 1)
	assert.Equal(t, EducationItem{
		School:      "A",
		Degree:      "B",
		Period:      "2020 - 2024",
		PeriodLabel: "Period: 2020 to 2024",
		AnchorID:    "education-a",
	}, section.Items[0])
}

func TestBuildEducationSectionEmpty(t *testing.T) {
	_, ok := BuildEducationSection(nil)
	assert.False(t, ok)

	_, ok = BuildEducationSection([]resumes.Education{{School: "A", Degree: "B"}})
	assert.False(t, ok, "entry without start must be dropped")

	html, err := RenderEducation([]resumes.Education{})
	require.NoError(t, err)
	assert.Empty(t, string(html))
}

func TestBuildEducationSectionKeepsOrderAndDuplicates(t *testing.T) {
	entry := resumes.Education{School: "MIT", Degree: "BSc", Start: "2010"}
	section, ok := BuildEducationSection([]resumes.Education{
		{School: "Stanford", Degree: "MSc", Start: "2015", End: "2017"},
		entry,
		entry,
	})
	require.True(t, ok)
	require.Len(t, section.Items, 3)
	assert.Equal(t, "Stanford", section.Items[0].School)
	assert.Equal(t, "MIT", section.Items[2].School)
	assert.Equal(t, "2010 - ", section.Items[1].Period, "end is rendered verbatim even when empty")
}

func TestEducationAnchorCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "education-university-of-oxford", educationAnchor("University   of\u00a0Oxford"))
	assert.Equal(t, "education-école-polytechnique", educationAnchor("École\tPolytechnique"))
}

func TestRenderEducationMarkup(t *testing.T) {
	html, err := RenderEducation([]resumes.Education{
		{School: "Trinity College", Degree: "BA <Maths>", Start: "2020", End: "2024"},
	})
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, `<h2 class="section-title" id="education-section">Education</h2>`)
	assert.Contains(t, out, `id="education-trinity-college"`)
	assert.Contains(t, out, `aria-label="Period: 2020 to 2024"`)
	assert.Contains(t, out, ">2020 - 2024<")
	assert.Contains(t, out, "BA &lt;Maths&gt;")
	assert.Equal(t, 1, strings.Count(out, "<article"))
}
