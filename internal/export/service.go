package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
)

// Result is one rendered export.
type Result struct {
	FileName   string
	Data       []byte
	StorageKey string
}

// Service renders resumes to PDF and keeps a copy in the object store.
type Service struct {
	Resumes *resumes.Service
	Store   object.ObjectStore
}

// NewService constructs a Service. store may be nil to skip keeping copies.
func NewService(resumeSvc *resumes.Service, store object.ObjectStore) *Service {
	return &Service{Resumes: resumeSvc, Store: store}
}

// ExportPDF renders the caller's resume.
func (s *Service) ExportPDF(ctx context.Context, ownerID, resumeID string) (Result, error) {
	res, err := s.Resumes.Get(ctx, ownerID, resumeID)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	data, err := RenderPDF(res)
	if err != nil {
		return Result{}, fmt.Errorf("render pdf: %w", err)
	}
	metrics.ObserveExport(time.Since(start))
	metrics.IncExport()

	out := Result{FileName: FileName(res.Data.FullName), Data: data}
	if s.Store != nil {
		key := util.ObjectKey("exports", ownerID, resumeID+".pdf")
		if _, err := s.Store.SaveWithKey(ctx, key, "application/pdf", bytes.NewReader(data)); err != nil {
			return Result{}, fmt.Errorf("store export: %w", err)
		}
		out.StorageKey = key
	}

	telemetry.Info("export.pdf", map[string]any{
		"resume_id":  resumeID,
		"template":   res.Template,
		"size_bytes": len(data),
	})
	return out, nil
}

// Share builds the share payloads for the caller's resume.
func (s *Service) Share(ctx context.Context, ownerID, resumeID string) (Share, error) {
	res, err := s.Resumes.Get(ctx, ownerID, resumeID)
	if err != nil {
		return Share{}, err
	}
	return ShareFor(res.Data), nil
}
