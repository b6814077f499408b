package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorAbortsWithEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reached := false
	router.GET("/crops/:id", func(c *gin.Context) {
		Error(c, http.StatusNotFound, "not_found", "crop session not found", nil)
	}, func(c *gin.Context) {
		reached = true
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crops/x", nil))

	if rec.Code != http.StatusNotFound || reached {
		t.Fatalf("status %d, next handler reached=%v", rec.Code, reached)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "not_found" || body.Error.Message != "crop session not found" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestBinaryDownloadHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/pdf", func(c *gin.Context) {
		Binary(c, "application/pdf", "Alex_Johnson_Resume.pdf", []byte("%PDF-1.4"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pdf", nil))

	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="Alex_Johnson_Resume.pdf"` {
		t.Fatalf("content disposition %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("cache control %q", got)
	}
	if rec.Body.String() != "%PDF-1.4" {
		t.Fatalf("body %q", rec.Body.String())
	}
}
