package profile

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"resume-profile/internal/resumes"
)

//go:embed templates/*.html templates/style.css
var templateFS embed.FS

var (
	stylesheet = mustReadStyles()
	templates  = template.Must(template.New("profile-templates").Funcs(template.FuncMap{
		"styles": Styles,
	}).ParseFS(templateFS, "templates/*.html"))
)

func mustReadStyles() template.CSS {
	raw, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		panic(err)
	}
	return template.CSS(raw)
}

// Styles returns the stylesheet shared by every profile page.
func Styles() template.CSS {
	return stylesheet
}

// ContactLink is one rendered contact.
type ContactLink struct {
	Label string
	Href  template.URL
	Text  string
}

// View is the template model for a public profile.
type View struct {
	Username   string
	Name       string
	ShortAbout string
	Location   string
	Summary    string
	Contacts   []ContactLink
	Skills     []string
	Work       []resumes.WorkExperience
	Education  template.HTML
	PublicURL  string
	PDFURL     string
}

// NewView builds the view for username's résumé. baseURL may be empty, in
// which case links are relative.
func NewView(username string, data resumes.ResumeData, baseURL string) (View, error) {
	education, err := RenderEducation(data.Education)
	if err != nil {
		return View{}, fmt.Errorf("render education: %w", err)
	}
	path := ProfilePath(username)
	name := strings.TrimSpace(data.Header.Name)
	if name == "" {
		name = username
	}
	v := View{
		Username:   username,
		Name:       name,
		ShortAbout: data.Header.ShortAbout,
		Location:   data.Header.Location,
		Summary:    data.Summary,
		Contacts:   contactLinks(data.Header.Contacts),
		Skills:     data.Header.Skills,
		Work:       data.WorkExperience,
		Education:  education,
		PDFURL:     path + "/pdf",
	}
	if baseURL != "" {
		v.PublicURL = strings.TrimRight(baseURL, "/") + path
	}
	return v, nil
}

// ProfilePath is the public path of username's profile.
func ProfilePath(username string) string {
	return "/u/" + url.PathEscape(username)
}

// RenderProfile renders the profile body without the surrounding document.
func RenderProfile(v View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "profile", v); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// WritePage writes the full HTML document for v.
func WritePage(w io.Writer, v View) error {
	return templates.ExecuteTemplate(w, "page", v)
}

// WriteNotFound writes the not-found document for username.
func WriteNotFound(w io.Writer, username string) error {
	return templates.ExecuteTemplate(w, "notfound", username)
}

func contactLinks(c resumes.Contacts) []ContactLink {
	var out []ContactLink
	add := func(label, href, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		out = append(out, ContactLink{Label: label, Href: template.URL(href), Text: text})
	}
	if c.Website != "" {
		add("Website", websiteURL(c.Website), c.Website)
	}
	add("Email", "mailto:"+url.PathEscape(c.Email), c.Email)
	add("Phone", "tel:"+strings.Map(phoneRune, c.Phone), c.Phone)
	add("Twitter", "https://x.com/"+url.PathEscape(handle(c.Twitter)), c.Twitter)
	add("LinkedIn", "https://www.linkedin.com/in/"+url.PathEscape(handle(c.LinkedIn)), c.LinkedIn)
	add("GitHub", "https://github.com/"+url.PathEscape(handle(c.GitHub)), c.GitHub)
	return out
}

func websiteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}
	switch u.Scheme {
	case "http", "https":
		return u.String()
	case "":
		return "https://" + strings.TrimPrefix(raw, "//")
	default:
		return "#"
	}
}

func handle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	if i := strings.LastIndex(strings.TrimRight(s, "/"), "/"); i >= 0 {
		s = strings.TrimRight(s, "/")[i+1:]
	}
	return s
}

func phoneRune(r rune) rune {
	if (r >= '0' && r <= '9') || r == '+' {
		return r
	}
	return -1
}
