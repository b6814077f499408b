package crops

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/crop"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const maxUploadSize = 15 << 20 // 15MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches crop routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/crops", h.open)
	rg.GET("/crops/:id", h.state)
	rg.PUT("/crops/:id/zoom", h.zoom)
	rg.POST("/crops/:id/pointer", h.pointer)
	rg.GET("/crops/:id/preview", h.preview)
	rg.POST("/crops/:id/confirm", h.confirm)
	rg.DELETE("/crops/:id", h.cancel)
}

// IsPointerRoute reports whether the request belongs to high-frequency
// drag or preview traffic.
func IsPointerRoute(c *gin.Context) bool {
	full := c.FullPath()
	return strings.HasSuffix(full, "/crops/:id/pointer") || strings.HasSuffix(full, "/crops/:id/preview")
}

func (h *Handler) open(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "upload exceeds 15MB", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	aspect := 1.0
	if raw := strings.TrimSpace(c.PostForm("aspectRatio")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "aspectRatio must be a number", nil)
			return
		}
		aspect = parsed
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	resumeID := strings.TrimSpace(c.PostForm("resumeId"))
	c.Set(middleware.ResumeIDKey, resumeID)

	st, err := h.Svc.Open(c.Request.Context(), OpenInput{
		OwnerID:     userID,
		ResumeID:    resumeID,
		FileName:    fileHeader.Filename,
		AspectRatio: aspect,
		Body:        file,
	})
	if err != nil {
		writeError(c, err, "failed to open crop session")
		return
	}
	c.Set(middleware.CropSessionIDKey, st.ID)
	respond.JSON(c, http.StatusCreated, st)
}

func (h *Handler) state(c *gin.Context) {
	id := h.bind(c)
	st, err := h.Svc.State(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch crop session")
		return
	}
	respond.OK(c, st)
}

func (h *Handler) zoom(c *gin.Context) {
	id := h.bind(c)
	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Zoom == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "zoom is required", nil)
		return
	}
	st, err := h.Svc.SetZoom(c.Request.Context(), middleware.UserIDFromContext(c), id, *req.Zoom)
	if err != nil {
		writeError(c, err, "failed to set zoom")
		return
	}
	respond.OK(c, st)
}

func (h *Handler) pointer(c *gin.Context) {
	id := h.bind(c)
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	st, changed, err := h.Svc.Pointer(c.Request.Context(), middleware.UserIDFromContext(c), id,
		PointerKind(strings.ToLower(strings.TrimSpace(req.Type))), crop.Point{X: req.X, Y: req.Y})
	if err != nil {
		writeError(c, err, "failed to apply pointer event")
		return
	}
	respond.OK(c, pointerResponse{State: st, Changed: changed})
}

func (h *Handler) preview(c *gin.Context) {
	id := h.bind(c)
	img, err := h.Svc.Preview(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to render preview")
		return
	}
	respond.Binary(c, "image/jpeg", "", img)
}

func (h *Handler) confirm(c *gin.Context) {
	id := h.bind(c)
	out, err := h.Svc.Confirm(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to confirm crop")
		return
	}
	respond.OK(c, confirmResponse{ProfileImage: out.ProfileImage, ResumeID: out.ResumeID, SizeBytes: out.SizeBytes})
}

func (h *Handler) cancel(c *gin.Context) {
	id := h.bind(c)
	if err := h.Svc.Cancel(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to cancel crop")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bind(c *gin.Context) string {
	id := c.Param("id")
	c.Set(middleware.CropSessionIDKey, id)
	return id
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "crop session not found", nil)
	case errors.Is(err, crop.ErrImageTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "image_too_large", "image has too many pixels", nil)
	case errors.Is(err, ErrInvalidImage):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_image", "unable to decode image", nil)
	case errors.Is(err, ErrNothingToConfirm):
		respond.Error(c, http.StatusConflict, "nothing_to_confirm", "no image loaded", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
