package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Binary writes raw bytes with a content type, optionally as a download.
func Binary(c *gin.Context, contentType, fileName string, data []byte) {
	if fileName != "" {
		c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}
