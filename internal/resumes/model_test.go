package resumes

import "testing"

func TestWithContentClearsResumeData(t *testing.T) {
	rec := Record{
		File:       &File{URL: "store:///k"},
		ResumeData: &ResumeData{Summary: "stale"},
	}
	next := rec.WithContent("fresh text")

	if next.Text() != "fresh text" {
		t.Fatalf("expected text, got %q", next.Text())
	}
	if next.ResumeData != nil {
		t.Fatalf("expected resume data cleared")
	}
	if rec.ResumeData == nil || rec.FileContent != nil {
		t.Fatalf("original record must be untouched")
	}
}

func TestHasFile(t *testing.T) {
	cases := []struct {
		rec  Record
		want bool
	}{
		{Record{}, false},
		{Record{File: &File{}}, false},
		{Record{File: &File{URL: "  "}}, false},
		{Record{File: &File{URL: "x"}}, true},
	}
	for i, tc := range cases {
		if got := tc.rec.HasFile(); got != tc.want {
			t.Fatalf("case %d: HasFile=%v want %v", i, got, tc.want)
		}
	}
}
