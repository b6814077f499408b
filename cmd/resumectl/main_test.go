package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-builder/internal/resumes"
)

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 80, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 3), G: 90, B: uint8(y * 4), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestCropCommandWritesJPEG(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir)
	out := filepath.Join(dir, "out.jpg")

	rootCmd.SetArgs([]string{"crop", src, "-o", out, "--zoom", "2", "--x", "-40", "--y", "15"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != 300 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestCropCommandRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rootCmd.SetArgs([]string{"crop", src, "-o", filepath.Join(dir, "out.jpg")})
	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "failed to decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestExportCommandWritesPDF(t *testing.T) {
	dir := t.TempDir()
	doc, err := json.Marshal(resumes.SampleData())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	src := filepath.Join(dir, "resume.json")
	if err := os.WriteFile(src, doc, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rootCmd.SetArgs([]string{"export", src, "--dir", dir, "--template", "executive", "--photo", writePNG(t, dir)})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Alex_Johnson_Resume.pdf"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a pdf")
	}
}
