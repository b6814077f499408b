package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/shared/config"
)

const guest = "browser-123"

func newApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Env:            "dev",
		LocalStoreDir:  t.TempDir(),
		CropSessionTTL: time.Minute,
		RateLimit: config.RateLimit{
			DefaultRate:  1000,
			DefaultBurst: 1000,
			PointerRate:  1000,
			PointerBurst: 1000,
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return app
}

func do(t *testing.T, app *bootstrap.App, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Guest-Id", guest)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

type resumeBody struct {
	ResumeID string `json:"resumeId"`
	Template string `json:"template"`
	Data     struct {
		FullName     string `json:"fullName"`
		ProfileImage string `json:"profileImage"`
	} `json:"data"`
}

func createResume(t *testing.T, app *bootstrap.App) resumeBody {
	t.Helper()
	rec := do(t, app, http.MethodPost, "/api/v1/resumes", "application/json", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}
	var out resumeBody
	decode(t, rec, &out)
	return out
}

func upload(t *testing.T, app *bootstrap.App, resumeID string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "me.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.WriteField("resumeId", resumeID); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return do(t, app, http.MethodPost, "/api/v1/crops", mw.FormDataContentType(), buf.Bytes())
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 120, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 2), G: uint8(y * 2), B: 140, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestMissingGuestIDIsRejected(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPublicRoutes(t *testing.T) {
	app := newApp(t)
	for _, path := range []string{"/api/v1/health", "/api/v1/templates", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestResumeCRUD(t *testing.T) {
	app := newApp(t)
	created := createResume(t, app)
	if created.Data.FullName != "Alex Johnson" || created.Template != "modern" {
		t.Fatalf("unexpected seed %+v", created)
	}
	base := "/api/v1/resumes/" + created.ResumeID

	rec := do(t, app, http.MethodPatch, base+"/fields", "application/json", []byte(`{"field":"fullName","value":"Sam Lee"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status %d: %s", rec.Code, rec.Body.String())
	}
	var patched resumeBody
	decode(t, rec, &patched)
	if patched.Data.FullName != "Sam Lee" {
		t.Fatalf("field not updated: %+v", patched)
	}

	rec = do(t, app, http.MethodPut, base, "application/json", []byte(`{"fullName":"Sam Lee","unknown":true}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected schema rejection, got %d", rec.Code)
	}

	rec = do(t, app, http.MethodDelete, base, "", nil)
	if rec.Code != http.StatusNoContent && rec.Code != http.StatusOK {
		t.Fatalf("delete status %d", rec.Code)
	}
	rec = do(t, app, http.MethodGet, base, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCropUploadConfirmSetsProfileImage(t *testing.T) {
	app := newApp(t)
	res := createResume(t, app)

	rec := upload(t, app, res.ResumeID, pngBytes(t))
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status %d: %s", rec.Code, rec.Body.String())
	}
	var st struct {
		ID         string `json:"cropSessionId"`
		OutputSize int    `json:"outputSize"`
	}
	decode(t, rec, &st)
	if st.ID == "" || st.OutputSize != 300 {
		t.Fatalf("unexpected state %+v", st)
	}
	base := "/api/v1/crops/" + st.ID

	rec = do(t, app, http.MethodPut, base+"/zoom", "application/json", []byte(`{"zoom":2}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("zoom status %d", rec.Code)
	}
	for _, ev := range []string{`{"type":"down","x":0,"y":0}`, `{"type":"move","x":-20,"y":10}`, `{"type":"up"}`} {
		if rec := do(t, app, http.MethodPost, base+"/pointer", "application/json", []byte(ev)); rec.Code != http.StatusOK {
			t.Fatalf("pointer %s status %d: %s", ev, rec.Code, rec.Body.String())
		}
	}

	rec = do(t, app, http.MethodGet, base+"/preview", "", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/jpeg" {
		t.Fatalf("preview status %d type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = do(t, app, http.MethodPost, base+"/confirm", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm status %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, app, http.MethodGet, "/api/v1/resumes/"+res.ResumeID, "", nil)
	var got resumeBody
	decode(t, rec, &got)
	if !strings.HasPrefix(got.Data.ProfileImage, "data:image/jpeg;base64,") {
		t.Fatalf("profile image not stored: %.40q", got.Data.ProfileImage)
	}

	rec = do(t, app, http.MethodGet, base, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("confirmed session should be gone, got %d", rec.Code)
	}
}

func TestCropUploadRejectsNonImage(t *testing.T) {
	app := newApp(t)
	res := createResume(t, app)

	rec := upload(t, app, res.ResumeID, []byte("this is not a picture"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if n := app.CropsRepo.Len(); n != 0 {
		t.Fatalf("expected no open sessions, got %d", n)
	}
}

func TestExportPDF(t *testing.T) {
	app := newApp(t)
	res := createResume(t, app)

	rec := do(t, app, http.MethodGet, "/api/v1/resumes/"+res.ResumeID+"/export.pdf", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Alex_Johnson_Resume.pdf") {
		t.Fatalf("content disposition %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body is not a pdf")
	}
}

func TestCropUploadTooLarge(t *testing.T) {
	app := newApp(t)
	res := createResume(t, app)

	rec := upload(t, app, res.ResumeID, bytes.Repeat([]byte{0xff}, 16<<20))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "payload_too_large") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if n := app.CropsRepo.Len(); n != 0 {
		t.Fatalf("expected no open sessions, got %d", n)
	}
}

func TestReadResumeCanBeWrittenBack(t *testing.T) {
	app := newApp(t)
	created := createResume(t, app)
	base := "/api/v1/resumes/" + created.ResumeID

	rec := do(t, app, http.MethodGet, base, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status %d", rec.Code)
	}
	var got struct {
		Data json.RawMessage `json:"data"`
	}
	decode(t, rec, &got)
	if bytes.Contains(got.Data, []byte("null")) {
		t.Fatalf("read-back document carries null collections: %s", got.Data)
	}

	rec = do(t, app, http.MethodPut, base, "application/json", got.Data)
	if rec.Code != http.StatusOK {
		t.Fatalf("put of read-back document: status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteResumeForgetsAppliedSuggestions(t *testing.T) {
	app := newApp(t)
	res := createResume(t, app)
	base := "/api/v1/resumes/" + res.ResumeID

	rec := do(t, app, http.MethodPost, base+"/suggestions/1/apply", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("apply status %d: %s", rec.Code, rec.Body.String())
	}
	if n := len(app.SuggestionEngine.AppliedFor("guest:"+guest, res.ResumeID)); n != 1 {
		t.Fatalf("expected 1 applied suggestion, got %d", n)
	}

	if rec := do(t, app, http.MethodDelete, base, "", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", rec.Code)
	}
	if n := len(app.SuggestionEngine.AppliedFor("guest:"+guest, res.ResumeID)); n != 0 {
		t.Fatalf("applied suggestions survived delete: %d", n)
	}
}
