package export

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Handler wires export routes.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/:id/export.pdf", h.pdf)
	rg.GET("/resumes/:id/share", h.share)
}

func (h *Handler) pdf(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	out, err := h.Svc.ExportPDF(c.Request.Context(), middleware.UserIDFromContext(c), resumeID)
	if err != nil {
		if errors.Is(err, ErrInvalidProfileImage) {
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_profile_image", err.Error(), nil)
			return
		}
		resumes.WriteError(c, err, "failed to export resume")
		return
	}
	respond.Binary(c, "application/pdf", out.FileName, out.Data)
}

func (h *Handler) share(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	out, err := h.Svc.Share(c.Request.Context(), middleware.UserIDFromContext(c), resumeID)
	if err != nil {
		resumes.WriteError(c, err, "failed to build share text")
		return
	}
	respond.OK(c, out)
}
