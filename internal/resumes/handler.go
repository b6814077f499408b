package resumes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const maxBodySize = 2 << 20 // 2MB, room for a data URI profile image

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.replace)
	rg.DELETE("/resumes/:id", h.delete)
	rg.PATCH("/resumes/:id/fields", h.updateField)
	rg.POST("/resumes/:id/sections/:section", h.addEntry)
	rg.PATCH("/resumes/:id/sections/:section/:entryId", h.updateEntry)
	rg.DELETE("/resumes/:id/sections/:section/:entryId", h.removeEntry)
	rg.POST("/resumes/:id/skills", h.addSkill)
	rg.DELETE("/resumes/:id/skills/:index", h.removeSkill)
	rg.PUT("/resumes/:id/profile-image", h.setProfileImage)
	rg.DELETE("/resumes/:id/profile-image", h.clearProfileImage)
	rg.PUT("/resumes/:id/template", h.setTemplate)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	raw, ok := readBody(c)
	if !ok {
		return
	}
	var seed *Data
	if len(strings.TrimSpace(string(raw))) > 0 {
		data, ok := decodeDocument(c, raw)
		if !ok {
			return
		}
		seed = &data
	}

	res, err := h.Svc.Create(c.Request.Context(), userID, seed)
	if err != nil {
		WriteError(c, err, "failed to create resume")
		return
	}
	respond.JSON(c, http.StatusCreated, ToResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		WriteError(c, err, "failed to list resumes")
		return
	}
	out := make([]ResumeSummary, 0, len(items))
	for _, r := range items {
		out = append(out, toSummary(r))
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	res, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		WriteError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, ToResponse(res))
}

func (h *Handler) replace(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}
	data, ok := decodeDocument(c, raw)
	if !ok {
		return
	}
	res, err := h.Svc.Replace(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), data)
	if err != nil {
		WriteError(c, err, "failed to replace resume")
		return
	}
	respond.OK(c, ToResponse(res))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		WriteError(c, err, "failed to delete resume")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) updateField(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.UpdateField(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Field(req.Field), req.Value)
	if err != nil {
		WriteError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, ToResponse(res))
}

func (h *Handler) addEntry(c *gin.Context) {
	fields := map[string]string{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&fields); err != nil && !errors.Is(err, io.EOF) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	res, entryID, err := h.Svc.AddEntry(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), Section(c.Param("section")), fields)
	if err != nil {
		WriteError(c, err, "failed to add entry")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"entryId": entryID, "resume": ToResponse(res)})
}

func (h *Handler) updateEntry(c *gin.Context) {
	var req entryFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.UpdateEntry(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"),
		Section(c.Param("section")), c.Param("entryId"), req.Field, req.Value)
	if err != nil {
		WriteError(c, err, "failed to update entry")
		return
	}
	respond.OK(c, ToResponse(res))
}

func (h *Handler) removeEntry(c *gin.Context) {
	res, err := h.Svc.RemoveEntry(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"),
		Section(c.Param("section")), c.Param("entryId"))
	if err != nil {
		WriteError(c, err, "failed to remove entry")
		return
	}
	respond.OK(c, ToResponse(res))
}

func (h *Handler) addSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.AddSkill(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Skill)
	if err != nil {
		WriteError(c, err, "failed to add skill")
		return
	}
	respond.OK(c, ToResponse(res))
}

func (h *Handler) removeSkill(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "index must be an integer", nil)
		return
	}
	res, err := h.Svc.RemoveSkill(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), index)
	if err != nil {
		WriteError(c, err, "failed to remove skill")
		return
	}
	respond.OK(c, ToResponse(res))
}

func (h *Handler) setProfileImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	var req profileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.SetProfileImage(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.ProfileImage)
	if err != nil {
		WriteError(c, err, "failed to set profile image")
		return
	}
	respond.OK(c, ToResponse(res))
}

func (h *Handler) clearProfileImage(c *gin.Context) {
	res, err := h.Svc.ClearProfileImage(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		WriteError(c, err, "failed to clear profile image")
		return
	}
	respond.OK(c, ToResponse(res))
}

func (h *Handler) setTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.SetTemplate(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Template, req.CustomTemplateName)
	if err != nil {
		WriteError(c, err, "failed to set template")
		return
	}
	respond.OK(c, ToResponse(res))
}

func readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", nil)
		return nil, false
	}
	return raw, true
}

func decodeDocument(c *gin.Context, raw []byte) (Data, bool) {
	if err := ValidateDocument(raw); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return Data{}, false
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return Data{}, false
	}
	return data, true
}

// WriteError maps service errors onto the standard error envelope.
func WriteError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrEntryNotFound):
		respond.Error(c, http.StatusNotFound, "entry_not_found", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
