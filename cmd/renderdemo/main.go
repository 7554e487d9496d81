package main

// Render a profile page without running the server:
//   go run ./cmd/renderdemo [-in ./resume.json] [-out ./out/profile.html] [-pdf]

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-profile/internal/profile"
	"resume-profile/internal/resumes"
	"resume-profile/internal/usernames"
)

func main() {
	inPath := flag.String("in", "", "ResumeData JSON to render (defaults to a built-in sample)")
	outPath := flag.String("out", "./out/profile.html", "output path for the rendered HTML")
	withPDF := flag.Bool("pdf", false, "also export a PDF next to the HTML (needs Chrome)")
	chromePath := flag.String("chrome", os.Getenv("CHROME_PATH"), "Chrome executable")
	flag.Parse()

	data, err := loadResume(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	view, err := profile.NewView(usernames.Candidate(data.Header.Name), data, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "view failed: %v\n", err)
		os.Exit(1)
	}

	var page bytes.Buffer
	if err := profile.WritePage(&page, view); err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}
	if pos := strings.Index(page.String(), "{{"); pos != -1 {
		fmt.Fprintf(os.Stderr, "unresolved template tokens near offset %d\n", pos)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, page.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", *outPath)

	if !*withPDF {
		return
	}
	pdf, err := profile.NewChromePDF(*chromePath).RenderPDF(context.Background(), page.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdf failed: %v\n", err)
		os.Exit(1)
	}
	pdfPath := strings.TrimSuffix(*outPath, filepath.Ext(*outPath)) + ".pdf"
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", pdfPath)
}

func loadResume(path string) (resumes.ResumeData, error) {
	if path == "" {
		return sampleResume(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return resumes.ResumeData{}, err
	}
	return resumes.DecodeResumeData(raw)
}

func sampleResume() resumes.ResumeData {
	data := resumes.ResumeData{
		Header: resumes.Header{
			Name:       "Jordan Lee",
			ShortAbout: "Senior Backend Engineer",
			Location:   "Austin, TX",
			Contacts: resumes.Contacts{
				Email:    "jordan.lee@example.com",
				Phone:    "+1-555-0102",
				LinkedIn: "https://www.linkedin.com/in/jordanlee",
				GitHub:   "https://github.com/jordanlee",
			},
			Skills: []string{"Go", "PostgreSQL", "Redis", "AWS", "Kubernetes"},
		},
		Summary: "Backend engineer with 8+ years of experience building resilient APIs and data services.",
		WorkExperience: []resumes.WorkExperience{
			{
				Company:     "Acme Logistics",
				Location:    "Austin, TX",
				Contract:    "Full-time",
				Title:       "Senior Backend Engineer",
				Start:       "2021",
				End:         "Present",
				Description: "Designed a routing service that reduced shipment latency by 18%.",
			},
			{
				Company:     "Blue Harbor Systems",
				Location:    "Seattle, WA",
				Contract:    "Full-time",
				Title:       "Backend Engineer",
				Start:       "2018",
				End:         "2021",
				Description: "Built event-driven ingestion pipelines for compliance data feeds.",
			},
		},
		Education: []resumes.Education{
			{School: "University of Texas", Degree: "BSc Computer Science", Start: "2012", End: "2016"},
			{School: "Bootcamp", Degree: "", Start: "2017"},
		},
	}
	// Round-trip through the schema so the sample cannot drift from it.
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	if err := resumes.ValidateJSON(raw); err != nil {
		panic(fmt.Sprintf("sample resume violates schema: %v", err))
	}
	return data
}
