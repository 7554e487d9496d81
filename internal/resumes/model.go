package resumes

import "strings"

// File references the uploaded résumé document.
type File struct {
	URL      string `json:"url"`
	Key      string `json:"key,omitempty"`
	Name     string `json:"name,omitempty"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// Record is everything stored about a user's résumé. Later fields are only
// meaningful once the earlier ones are present: text needs a file, structured
// data needs text.
type Record struct {
	File        *File       `json:"file,omitempty"`
	FileContent *string     `json:"fileContent,omitempty"`
	ResumeData  *ResumeData `json:"resumeData,omitempty"`
}

// ResumeData is the structured résumé produced from the document text.
type ResumeData struct {
	Header         Header           `json:"header"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
}

type Header struct {
	Name       string   `json:"name"`
	ShortAbout string   `json:"shortAbout"`
	Location   string   `json:"location"`
	Contacts   Contacts `json:"contacts"`
	Skills     []string `json:"skills"`
}

type Contacts struct {
	Website  string `json:"website"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

type WorkExperience struct {
	Company     string `json:"company"`
	Link        string `json:"link"`
	Location    string `json:"location"`
	Contract    string `json:"contract"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

// Education is one education entry. Every field may be empty.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// FileURL returns the file reference, or "" when there is none.
func (r Record) FileURL() string {
	if r.File == nil {
		return ""
	}
	return strings.TrimSpace(r.File.URL)
}

// HasFile reports whether the record references an uploaded document.
func (r Record) HasFile() bool {
	return r.FileURL() != ""
}

// Text returns the extracted text, or "" when absent.
func (r Record) Text() string {
	if r.FileContent == nil {
		return ""
	}
	return *r.FileContent
}

// WithContent returns a copy carrying the extracted text. Structured data is
// cleared because it was derived from the previous text.
func (r Record) WithContent(text string) Record {
	r.FileContent = &text
	r.ResumeData = nil
	return r
}

// WithResumeData returns a copy carrying the structured résumé.
func (r Record) WithResumeData(data ResumeData) Record {
	r.ResumeData = &data
	return r
}
