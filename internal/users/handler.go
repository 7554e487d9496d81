package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-profile/internal/shared/server/middleware"
	"resume-profile/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

// me answers from the stored account, falling back to the token claims when
// the account has not been persisted yet.
func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	response := gin.H{"userId": userID}
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	switch {
	case err == nil:
		response["email"] = user.Email
		response["name"] = user.FullName
		response["picture"] = user.PictureURL
	case errors.Is(err, ErrNotFound):
		if email := middleware.UserEmailFromContext(c); email != "" {
			response["email"] = email
		}
		if name := middleware.UserNameFromContext(c); name != "" {
			response["name"] = name
		}
		if picture := middleware.UserPictureFromContext(c); picture != "" {
			response["picture"] = picture
		}
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load user", nil)
		return
	}

	respond.JSON(c, http.StatusOK, response)
}
