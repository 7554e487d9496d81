package profile

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-profile/internal/resumes"
	"resume-profile/internal/shared/server/respond"
	"resume-profile/internal/shared/telemetry"
	"resume-profile/internal/usernames"
)

// Handler serves public profile pages.
type Handler struct {
	Resumes       resumes.Repo
	Usernames     usernames.Repo
	PDF           PDFRenderer
	PublicBaseURL string
}

// RegisterRoutes attaches the public profile routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/u/:username", h.page)
	r.GET("/u/:username/pdf", h.pdf)
}

func (h *Handler) page(c *gin.Context) {
	view, ok := h.load(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "public, max-age=60")
	c.Status(http.StatusOK)
	if err := WritePage(c.Writer, view); err != nil {
		telemetry.Error("profile.render_failed", map[string]any{"username": view.Username, "error": err})
	}
}

func (h *Handler) pdf(c *gin.Context) {
	if h.PDF == nil {
		respond.Error(c, http.StatusServiceUnavailable, "pdf_unavailable", "PDF export is not configured", nil)
		return
	}
	view, ok := h.load(c)
	if !ok {
		return
	}
	view.PDFURL = ""

	var doc bytes.Buffer
	if err := WritePage(&doc, view); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to render profile", nil)
		return
	}
	pdf, err := h.PDF.RenderPDF(c.Request.Context(), doc.String())
	if err != nil {
		telemetry.Error("profile.pdf_failed", map[string]any{"username": view.Username, "error": err})
		respond.Error(c, http.StatusBadGateway, "pdf_failed", "Failed to export profile as PDF", nil)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+safeFileName(view.Username)+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// load resolves the username to a rendered view, writing the error response
// itself when it returns false.
func (h *Handler) load(c *gin.Context) (View, bool) {
	username := c.Param("username")
	userID, err := h.Usernames.UserIDFor(c.Request.Context(), username)
	if errors.Is(err, usernames.ErrNotFound) {
		h.notFound(c, username)
		return View{}, false
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to load profile", nil)
		return View{}, false
	}

	rec, err := h.Resumes.Get(c.Request.Context(), userID)
	if errors.Is(err, resumes.ErrNotFound) || (err == nil && rec.ResumeData == nil) {
		h.notFound(c, username)
		return View{}, false
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to load profile", nil)
		return View{}, false
	}

	view, err := NewView(username, *rec.ResumeData, h.PublicBaseURL)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to render profile", nil)
		return View{}, false
	}
	return view, true
}

func (h *Handler) notFound(c *gin.Context, username string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusNotFound)
	_ = WriteNotFound(c.Writer, username)
	c.Abort()
}

func safeFileName(username string) string {
	out := make([]rune, 0, len(username))
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "profile"
	}
	return string(out)
}
