package crops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/crop"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
)

// DefaultTTL is how long an untouched session survives.
const DefaultTTL = 15 * time.Minute

// Service owns open crop dialogs. Each session is driven by the same
// operations a modal cropper exposes: zoom, drag, preview, confirm, cancel.
type Service struct {
	Repo    *MemoryRepo
	Store   object.ObjectStore
	Resumes *resumes.Service
	TTL     time.Duration
	Now     func() time.Time
}

// NewService constructs a Service.
func NewService(repo *MemoryRepo, store object.ObjectStore, resumeSvc *resumes.Service, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		Repo:    repo,
		Store:   store,
		Resumes: resumeSvc,
		TTL:     ttl,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// OpenInput describes an upload that starts a crop dialog.
type OpenInput struct {
	OwnerID     string
	ResumeID    string
	FileName    string
	AspectRatio float64
	Body        io.Reader
}

// Open stores the upload, decodes it and opens a session. An undecodable
// upload never opens a session.
func (s *Service) Open(ctx context.Context, in OpenInput) (State, error) {
	if strings.TrimSpace(in.FileName) == "" || in.Body == nil {
		return State{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if in.ResumeID != "" {
		if _, err := s.Resumes.Get(ctx, in.OwnerID, in.ResumeID); err != nil {
			return State{}, err
		}
	}

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return State{}, fmt.Errorf("read upload: %w", err)
	}

	key := ""
	if s.Store != nil {
		key, _, _, err = s.Store.Save(ctx, in.OwnerID, in.FileName, bytes.NewReader(data))
		if err != nil {
			return State{}, fmt.Errorf("store upload: %w", err)
		}
	}

	img, err := crop.Decode(data)
	if err != nil {
		s.removeSource(key)
		telemetry.Info("crop.decode_failed", map[string]any{"file_name": in.FileName, "error": err})
		return State{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	now := s.Now()
	rec := &record{
		ID:        uuid.NewString(),
		OwnerID:   in.OwnerID,
		ResumeID:  in.ResumeID,
		FileName:  in.FileName,
		SourceKey: key,
		CreatedAt: now,
		LastSeen:  now,
		session:   crop.Open(img, crop.WithAspectRatio(in.AspectRatio)),
	}
	// the record is private until put, so no lock is needed for the snapshot
	st := s.snapshot(rec)
	s.Repo.put(rec)
	metrics.IncCropOpened()

	telemetry.Info("crop.opened", map[string]any{
		"crop_session_id": rec.ID,
		"resume_id":       rec.ResumeID,
		"width":           st.Source.Width,
		"height":          st.Source.Height,
	})
	return st, nil
}

// State returns the current transform of a session.
func (s *Service) State(ctx context.Context, ownerID, id string) (State, error) {
	var out State
	err := s.with(ctx, ownerID, id, func(rec *record) error {
		out = s.snapshot(rec)
		return nil
	})
	return out, err
}

// SetZoom applies a zoom request. The stored value is clamped to the allowed range.
func (s *Service) SetZoom(ctx context.Context, ownerID, id string, zoom float64) (State, error) {
	var out State
	err := s.with(ctx, ownerID, id, func(rec *record) error {
		rec.session.SetZoom(zoom)
		out = s.snapshot(rec)
		return nil
	})
	return out, err
}

// Pointer applies a pointer transition. changed reports whether the image moved.
func (s *Service) Pointer(ctx context.Context, ownerID, id string, kind PointerKind, at crop.Point) (State, bool, error) {
	var (
		out     State
		changed bool
	)
	err := s.with(ctx, ownerID, id, func(rec *record) error {
		switch kind {
		case PointerDown:
			rec.session.BeginDrag(at)
		case PointerMove:
			changed = rec.session.ContinueDrag(at)
		case PointerUp, PointerLeave:
			rec.session.EndDrag()
		default:
			return fmt.Errorf("%w: unknown pointer type %q", ErrInvalidInput, kind)
		}
		out = s.snapshot(rec)
		return nil
	})
	return out, changed, err
}

// Preview encodes the live render. It is byte-identical to what Confirm
// would produce for the same state.
func (s *Service) Preview(ctx context.Context, ownerID, id string) ([]byte, error) {
	var out []byte
	err := s.with(ctx, ownerID, id, func(rec *record) error {
		encoded, err := s.render(rec)
		if err != nil {
			return err
		}
		out = encoded
		return nil
	})
	return out, err
}

// Confirm produces the final image, applies it to the bound resume and
// discards the session. A failure leaves the session open for a retry.
func (s *Service) Confirm(ctx context.Context, ownerID, id string) (ConfirmResult, error) {
	var out ConfirmResult
	err := s.with(ctx, ownerID, id, func(rec *record) error {
		encoded, err := s.render(rec)
		if err != nil {
			return err
		}
		uri := crop.DataURI(encoded)
		if rec.ResumeID != "" {
			if _, err := s.Resumes.SetProfileImage(ctx, ownerID, rec.ResumeID, uri); err != nil {
				return err
			}
		}
		out = ConfirmResult{ProfileImage: uri, ResumeID: rec.ResumeID, SizeBytes: len(encoded)}
		s.discardLocked(rec)
		metrics.IncCropConfirmed()
		telemetry.Info("crop.confirmed", map[string]any{
			"crop_session_id": rec.ID,
			"resume_id":       rec.ResumeID,
			"size_bytes":      len(encoded),
		})
		return nil
	})
	return out, err
}

// Cancel discards a session without producing output.
func (s *Service) Cancel(ctx context.Context, ownerID, id string) error {
	return s.with(ctx, ownerID, id, func(rec *record) error {
		s.discardLocked(rec)
		metrics.IncCropCancelled()
		telemetry.Info("crop.cancelled", map[string]any{"crop_session_id": rec.ID})
		return nil
	})
}

// Sweep discards sessions idle for longer than the TTL and reports how many.
func (s *Service) Sweep(now time.Time) int {
	cutoff := now.Add(-s.TTL)
	swept := 0
	for _, rec := range s.Repo.all() {
		rec.mu.Lock()
		if rec.session != nil && rec.LastSeen.Before(cutoff) {
			s.discardLocked(rec)
			metrics.IncCropExpired()
			swept++
		}
		rec.mu.Unlock()
	}
	if swept > 0 {
		telemetry.Info("crop.swept", map[string]any{"count": swept})
	}
	return swept
}

// StartSweeper runs Sweep periodically until ctx is done.
func (s *Service) StartSweeper(ctx context.Context) {
	interval := s.TTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(s.Now())
			}
		}
	}()
}

func (s *Service) with(ctx context.Context, ownerID, id string, fn func(rec *record) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := s.Repo.get(ownerID, id)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	// lost a race with confirm, cancel or the sweeper
	if rec.session == nil {
		return ErrNotFound
	}
	rec.LastSeen = s.Now()
	return fn(rec)
}

func (s *Service) render(rec *record) ([]byte, error) {
	start := time.Now()
	encoded, err := rec.session.Confirm()
	if err != nil {
		if errors.Is(err, crop.ErrNoImage) {
			return nil, ErrNothingToConfirm
		}
		return nil, fmt.Errorf("encode crop: %w", err)
	}
	metrics.ObserveRender(time.Since(start))
	return encoded, nil
}

func (s *Service) discardLocked(rec *record) {
	rec.session.Cancel()
	rec.session = nil
	s.Repo.take(rec.ID)
	s.removeSource(rec.SourceKey)
}

func (s *Service) removeSource(key string) {
	if s.Store == nil || key == "" {
		return
	}
	if err := s.Store.Delete(context.Background(), key); err != nil {
		telemetry.Error("crop.source_cleanup_failed", map[string]any{"storage_key": key, "error": err})
	}
}

func (s *Service) snapshot(rec *record) State {
	sess := rec.session
	w, h := sess.SourceSize()
	return State{
		ID:          rec.ID,
		ResumeID:    rec.ResumeID,
		FileName:    rec.FileName,
		Zoom:        sess.Zoom(),
		ZoomPercent: sess.ZoomPercent(),
		MinZoom:     crop.MinZoom,
		MaxZoom:     crop.MaxZoom,
		ZoomStep:    crop.ZoomStep,
		Position:    sess.Position(),
		Dragging:    sess.Dragging(),
		AspectRatio: sess.AspectRatio(),
		Source:      Size{Width: w, Height: h},
		OutputSize:  crop.OutputSize,
		ExpiresAt:   rec.LastSeen.Add(s.TTL),
	}
}
