package suggestions

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Handler wires suggestion routes.
type Handler struct {
	Engine  *Engine
	Resumes *resumes.Service
}

// NewHandler constructs a Handler.
func NewHandler(engine *Engine, resumeSvc *resumes.Service) *Handler {
	return &Handler{Engine: engine, Resumes: resumeSvc}
}

// RegisterRoutes attaches suggestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/:id/suggestions", h.generate)
	rg.POST("/resumes/:id/suggestions/:sid/apply", h.apply)
}

type suggestionView struct {
	Suggestion
	Applied bool `json:"applied"`
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	res, err := h.Resumes.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		resumes.WriteError(c, err, "failed to fetch resume")
		return
	}
	list, err := h.Engine.Generate(c.Request.Context(), res)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			respond.Error(c, http.StatusRequestTimeout, "analysis_cancelled", "analysis was cancelled", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate suggestions", nil)
		return
	}

	applied := map[string]bool{}
	for _, a := range h.Engine.AppliedFor(userID, resumeID) {
		applied[a.SuggestionID] = true
	}
	out := make([]suggestionView, 0, len(list))
	for _, s := range list {
		out = append(out, suggestionView{Suggestion: s, Applied: applied[s.ID]})
	}
	respond.OK(c, gin.H{"suggestions": out})
}

func (h *Handler) apply(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	if _, err := h.Resumes.Get(c.Request.Context(), userID, resumeID); err != nil {
		resumes.WriteError(c, err, "failed to fetch resume")
		return
	}
	rec, err := h.Engine.Apply(c.Request.Context(), userID, resumeID, c.Param("sid"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "suggestion not found", nil)
		case errors.Is(err, ErrAlreadyApplied):
			respond.Error(c, http.StatusConflict, "already_applied", "suggestion already applied", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to apply suggestion", nil)
		}
		return
	}
	respond.OK(c, gin.H{"applied": rec, "history": h.Engine.AppliedFor(userID, resumeID)})
}
