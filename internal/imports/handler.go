package imports

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

// Handler wires import routes.
type Handler struct {
	Importer *Importer
	Resumes  *resumes.Service
}

// NewHandler constructs a Handler.
func NewHandler(importer *Importer, resumeSvc *resumes.Service) *Handler {
	return &Handler{Importer: importer, Resumes: resumeSvc}
}

// RegisterRoutes attaches import routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/imports", h.preview)
	rg.POST("/resumes/:id/import", h.apply)
}

type importRequest struct {
	URL string `json:"url"`
}

func (h *Handler) preview(c *gin.Context) {
	data, ok := h.fetch(c)
	if !ok {
		return
	}
	respond.OK(c, data)
}

func (h *Handler) apply(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	// fail fast before the simulated fetch
	if _, err := h.Resumes.Get(c.Request.Context(), userID, resumeID); err != nil {
		resumes.WriteError(c, err, "failed to fetch resume")
		return
	}

	data, ok := h.fetch(c)
	if !ok {
		return
	}
	res, err := h.Resumes.ApplyImport(c.Request.Context(), userID, resumeID, data.Patch())
	if err != nil {
		resumes.WriteError(c, err, "failed to apply import")
		return
	}
	telemetry.Info("import.applied", map[string]any{"resume_id": resumeID, "source": string(data.Source)})
	respond.OK(c, gin.H{"imported": data, "resume": resumes.ToResponse(res)})
}

func (h *Handler) fetch(c *gin.Context) (ImportedData, bool) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return ImportedData{}, false
	}
	data, err := h.Importer.Import(c.Request.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, ErrURLRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "import_cancelled", "import was cancelled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "import_failed", "failed to import data", nil)
		}
		return ImportedData{}, false
	}
	return data, true
}
