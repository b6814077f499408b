package templates

import (
	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

// Handler serves the template catalog.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches template routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.list)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{"templates": All(), "default": Default})
}
