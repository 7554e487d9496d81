package preview

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-profile/internal/profile"
	"resume-profile/internal/resumes"
	"resume-profile/internal/shared/server/middleware"
	"resume-profile/internal/shared/server/respond"
	"resume-profile/internal/shared/telemetry"
)

const previewPath = "/preview"

// Handler exposes the sequencer as a streamed HTML page and as an SSE feed.
type Handler struct {
	Sequencer     *Sequencer
	PublicBaseURL string
}

// RegisterRoutes attaches the preview routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET(previewPath, h.page)
	r.GET("/api/v1/preview/stream", h.stream)
}

func (h *Handler) session(c *gin.Context) Session {
	return Session{
		UserID:    middleware.UserIDFromContext(c),
		SignInURL: middleware.SignInURL(previewPath),
	}
}

func (h *Handler) page(c *gin.Context) {
	pw := &pageWriter{c: c}
	out, err := h.Sequencer.Run(c.Request.Context(), h.session(c), pw.loading)
	switch {
	case err != nil:
		pw.fail(err)
	case out.IsRedirect():
		pw.redirect(out.Redirect)
	default:
		pw.ready(out, h.PublicBaseURL)
	}
}

// pageWriter streams the preview document. Nothing is written until the
// first loading state, so early redirects remain real HTTP redirects.
type pageWriter struct {
	c       *gin.Context
	started bool
	prev    string
}

func (p *pageWriter) begin() {
	if p.started {
		return
	}
	p.started = true
	h := p.c.Writer.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	h.Set("X-Accel-Buffering", "no")
	p.c.Status(http.StatusOK)
	p.exec("start", nil)
}

func (p *pageWriter) loading(ls LoadingState) {
	p.c.Set(middleware.StageKey, string(ls.Stage))
	p.begin()
	id := "loading-" + string(ls.Stage)
	p.exec("loading", loadingData{ID: id, Prev: p.prev, Message: ls.Message})
	p.prev = id
	p.c.Writer.Flush()
}

func (p *pageWriter) redirect(location string) {
	if !p.started {
		p.c.Redirect(http.StatusFound, location)
		return
	}
	p.exec("redirect", redirectData{Prev: p.prev, Location: location})
	p.finish()
}

func (p *pageWriter) fail(err error) {
	_ = p.c.Error(err)
	telemetry.Error("preview.failed", map[string]any{
		"request_id": middleware.RequestIDFromContext(p.c),
		"user_id":    middleware.UserIDFromContext(p.c),
		"stage":      p.c.GetString(middleware.StageKey),
		"error":      err,
	})
	if !p.started {
		respond.Error(p.c, http.StatusInternalServerError, "internal", "Failed to prepare your profile", nil)
		return
	}
	p.exec("error", errorData{Prev: p.prev})
	p.finish()
}

func (p *pageWriter) ready(out Outcome, baseURL string) {
	view, err := profile.NewView(out.Username, *out.Record.ResumeData, baseURL)
	if err != nil {
		p.fail(err)
		return
	}
	body, err := profile.RenderProfile(view)
	if err != nil {
		p.fail(err)
		return
	}
	p.begin()
	p.exec("ready", readyData{Prev: p.prev, Profile: body})
	p.finish()
}

func (p *pageWriter) finish() {
	p.exec("end", nil)
	p.c.Writer.Flush()
}

func (p *pageWriter) exec(name string, data any) {
	if err := pageTemplates.ExecuteTemplate(p.c.Writer, name, data); err != nil {
		_ = p.c.Error(err)
	}
}

type readyEvent struct {
	Username   string              `json:"username"`
	ProfileURL string              `json:"profileUrl"`
	Resume     *resumes.ResumeData `json:"resume"`
}

func (h *Handler) stream(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	emit := func(event string, data any) {
		c.SSEvent(event, data)
		c.Writer.Flush()
	}

	out, err := h.Sequencer.Run(c.Request.Context(), h.session(c), func(ls LoadingState) {
		c.Set(middleware.StageKey, string(ls.Stage))
		emit("loading", ls)
	})
	switch {
	case err != nil:
		_ = c.Error(err)
		telemetry.Error("preview.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    middleware.UserIDFromContext(c),
			"stage":      c.GetString(middleware.StageKey),
			"error":      err,
		})
		emit("error", gin.H{"message": "Failed to prepare your profile"})
	case out.IsRedirect():
		emit("redirect", gin.H{"location": out.Redirect})
	default:
		emit("ready", readyEvent{
			Username:   out.Username,
			ProfileURL: profile.ProfilePath(out.Username),
			Resume:     out.Record.ResumeData,
		})
	}
}
