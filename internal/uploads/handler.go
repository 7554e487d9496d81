package uploads

import (
	"embed"
	"errors"
	"html/template"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-profile/internal/profile"
	"resume-profile/internal/shared/server/middleware"
	"resume-profile/internal/shared/server/respond"
)

// multipart overhead allowed on top of the file itself.
const formOverheadBytes = 1 << 20

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("uploads").Funcs(template.FuncMap{
	"styles": profile.Styles,
}).ParseFS(templateFS, "templates/*.html"))

var pageMessages = map[string]string{
	"usernameCreationFailed": "We could not reserve your public profile link. Please try again.",
}

// Handler wires upload routes to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the JSON API routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.uploadJSON)
	rg.GET("/resume", h.status)
}

// RegisterPages attaches the HTML upload pages.
func (h *Handler) RegisterPages(r gin.IRoutes) {
	r.GET("/resume", h.page)
	r.GET("/upload", h.page)
	r.POST("/resume", h.uploadForm)
}

type pageData struct {
	Error  string
	Status Status
}

func (h *Handler) uploadJSON(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	fileHeader, ok := h.formFile(c)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	if err := h.save(c, userID, fileHeader); err != nil {
		status, code := uploadErrorStatus(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			message = "failed to upload resume"
		}
		respond.Error(c, status, code, message, nil)
		return
	}

	st, err := h.Svc.Status(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load resume status", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, st)
}

func (h *Handler) status(c *gin.Context) {
	st, err := h.Svc.Status(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load resume status", nil)
		return
	}
	respond.OK(c, st)
}

func (h *Handler) page(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		c.Redirect(http.StatusFound, middleware.SignInURL(c.Request.URL.Path))
		return
	}
	st, err := h.Svc.Status(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load resume status", nil)
		return
	}
	respond.HTML(c, http.StatusOK, pageTemplate.Lookup("upload"), pageData{
		Error:  pageMessages[c.Query("error")],
		Status: st,
	})
}

func (h *Handler) uploadForm(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		c.Redirect(http.StatusSeeOther, middleware.SignInURL("/resume"))
		return
	}

	fileHeader, ok := h.formFile(c)
	var err error
	if !ok {
		err = ErrInvalidInput
	} else {
		err = h.save(c, userID, fileHeader)
	}
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/preview")
		return
	}

	status, _ := uploadErrorStatus(err)
	message := "Please choose a PDF or DOCX file."
	switch {
	case errors.Is(err, ErrUnsupportedType), errors.Is(err, ErrTooLarge):
		message = err.Error()
	case status == http.StatusInternalServerError:
		message = "Upload failed. Please try again."
	}
	st, _ := h.Svc.Status(c.Request.Context(), userID)
	respond.HTML(c, status, pageTemplate.Lookup("upload"), pageData{Error: message, Status: st})
}

func (h *Handler) formFile(c *gin.Context) (*multipart.FileHeader, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+formOverheadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, false
	}
	return fileHeader, true
}

func (h *Handler) save(c *gin.Context, userID string, fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxUploadBytes {
		return ErrTooLarge
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ErrInvalidInput
	}
	defer file.Close()

	_, err = h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		_ = c.Error(err)
	}
	return err
}

func uploadErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, "unsupported_type"
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
