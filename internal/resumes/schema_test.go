package resumes

import (
	"errors"
	"testing"
)

const validResume = `{
  "header": {
    "name": "Ada Lovelace",
    "shortAbout": "Analyst",
    "location": "London",
    "contacts": {"website": "", "email": "ada@example.com", "phone": "", "twitter": "", "linkedin": "", "github": "ada"},
    "skills": ["math"]
  },
  "summary": "First programmer.",
  "workExperience": [],
  "education": [{"school": "A", "degree": "B", "start": "2020", "end": "2024"}]
}`

func TestDecodeResumeDataValid(t *testing.T) {
	data, err := DecodeResumeData([]byte(validResume))
	if err != nil {
		t.Fatalf("DecodeResumeData: %v", err)
	}
	if data.Header.Name != "Ada Lovelace" || data.Header.Contacts.GitHub != "ada" {
		t.Fatalf("unexpected header %+v", data.Header)
	}
	if len(data.Education) != 1 || data.Education[0].School != "A" {
		t.Fatalf("unexpected education %+v", data.Education)
	}
}

func TestValidateJSONRejectsWrongShape(t *testing.T) {
	cases := []string{
		`{}`,
		`{"header": "Ada", "summary": "", "workExperience": [], "education": []}`,
		`not json`,
	}
	for _, raw := range cases {
		if err := ValidateJSON([]byte(raw)); !errors.Is(err, ErrInvalidResume) {
			t.Fatalf("ValidateJSON(%q): expected ErrInvalidResume, got %v", raw, err)
		}
	}
}

func TestSchemaIsCopy(t *testing.T) {
	s := Schema()
	s[0] = 'X'
	if Schema()[0] == 'X' {
		t.Fatal("Schema must return a copy")
	}
}
