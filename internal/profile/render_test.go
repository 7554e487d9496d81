package profile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-profile/internal/resumes"
)

func sampleResume() resumes.ResumeData {
	return resumes.ResumeData{
		Header: resumes.Header{
			Name:       "Ada Lovelace",
			ShortAbout: "Mathematician",
			Location:   "London, UK",
			Contacts: resumes.Contacts{
				Website:  "ada.dev",
				Email:    "ada@example.com",
				Phone:    "+44 (0) 20 1234",
				GitHub:   "https://github.com/ada/",
				LinkedIn: "@ada",
			},
			Skills: []string{"Analysis"},
		},
		Summary: "First programmer.",
		WorkExperience: []resumes.WorkExperience{
			{Company: "Engine Co", Link: "javascript:alert(1)", Title: "Programmer", Start: "1842", End: "1843"},
		},
		Education: []resumes.Education{{School: "Home", Degree: "Tutoring", Start: "1830", End: "1835"}},
	}
}

func TestNewViewBuildsLinks(t *testing.T) {
	v, err := NewView("Ada Lovelace", sampleResume(), "https://profiles.example.com/")
	require.NoError(t, err)

	assert.Equal(t, "https://profiles.example.com/u/Ada%20Lovelace", v.PublicURL)
	assert.Equal(t, "/u/Ada%20Lovelace/pdf", v.PDFURL)

	hrefs := map[string]string{}
	for _, c := range v.Contacts {
		hrefs[c.Label] = string(c.Href)
	}
	assert.Equal(t, "https://ada.dev", hrefs["Website"])
	assert.Equal(t, "mailto:ada@example.com", hrefs["Email"])
	assert.Equal(t, "tel:+440201234", hrefs["Phone"])
	assert.Equal(t, "https://github.com/ada", hrefs["GitHub"])
	assert.Equal(t, "https://www.linkedin.com/in/ada", hrefs["LinkedIn"])
	assert.NotContains(t, hrefs, "Twitter")
}

func TestWritePageEscapesUntrustedLinks(t *testing.T) {
	v, err := NewView("ada", sampleResume(), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, v))
	out := buf.String()

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<h1 class=\"name\">Ada Lovelace</h1>")
	assert.Contains(t, out, "Work Experience")
	assert.Contains(t, out, `id="education-home"`)
	assert.NotContains(t, out, "javascript:alert")
	assert.Contains(t, out, ".profile{")
}

func TestNewViewFallsBackToUsername(t *testing.T) {
	v, err := NewView("user-abc123", resumes.ResumeData{}, "")
	require.NoError(t, err)
	assert.Equal(t, "user-abc123", v.Name)
	assert.Empty(t, string(v.Education))
}
