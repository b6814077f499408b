package crop

import (
	"image"
	"image/color"
	"math"
)

const (
	// MinZoom and MaxZoom bound the user-adjustable scale factor.
	MinZoom = 1.0
	MaxZoom = 3.0
	// ZoomStep is the slider increment used by interactive front ends.
	ZoomStep = 0.1
	// OutputSize is the side length in pixels of both preview and output.
	OutputSize = 300
	// JPEGQuality matches a 0.95 quality factor.
	JPEGQuality = 95
)

var (
	defaultBackdrop = color.NRGBA{R: 0, G: 0, B: 0, A: 128}
	defaultOutline  = color.NRGBA{R: 255, G: 255, B: 255, A: 128}
)

// Point is a 2D offset in surface pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Session holds the state of one crop interaction. It is not safe for
// concurrent use; owners serialise calls.
type Session struct {
	source     image.Image
	zoom       float64
	position   Point
	dragAnchor Point
	dragging   bool

	aspect   float64
	side     int
	backdrop color.Color
	outline  color.Color
	stroke   bool

	clip *image.Alpha
	ring *image.Alpha
}

// Option customises a Session at Open time.
type Option func(*Session)

// WithAspectRatio records the requested aspect ratio. Non-positive values fall back to 1.
func WithAspectRatio(ratio float64) Option {
	return func(s *Session) {
		if ratio > 0 && !math.IsInf(ratio, 0) {
			s.aspect = ratio
		}
	}
}

// WithOutline toggles the cosmetic circle stroke.
func WithOutline(enabled bool) Option {
	return func(s *Session) { s.stroke = enabled }
}

// WithBackdrop overrides the letterbox colour.
func WithBackdrop(c color.Color) Option {
	return func(s *Session) {
		if c != nil {
			s.backdrop = c
		}
	}
}

// Open starts a session over src. A nil src yields a session that never renders.
func Open(src image.Image, opts ...Option) *Session {
	s := &Session{
		source:   src,
		zoom:     MinZoom,
		aspect:   1,
		side:     OutputSize,
		backdrop: defaultBackdrop,
		outline:  defaultOutline,
		stroke:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.clip, s.ring = circleMasks(s.side)
	return s
}

// Ready reports whether the session has a renderable source.
func (s *Session) Ready() bool { return s != nil && s.source != nil }

// Zoom returns the effective zoom.
func (s *Session) Zoom() float64 { return s.zoom }

// ZoomPercent returns the zoom rounded to a whole percentage.
func (s *Session) ZoomPercent() int { return int(math.Round(s.zoom * 100)) }

// Position returns the current offset of the scaled image's top-left corner.
func (s *Session) Position() Point { return s.position }

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool { return s.dragging }

// AspectRatio returns the requested aspect ratio.
func (s *Session) AspectRatio() float64 { return s.aspect }

// SourceSize returns the source dimensions, or zero when there is no source.
func (s *Session) SourceSize() (int, int) {
	if s.source == nil {
		return 0, 0
	}
	b := s.source.Bounds()
	return b.Dx(), b.Dy()
}

// SetZoom clamps v to [MinZoom, MaxZoom] and returns the effective zoom.
func (s *Session) SetZoom(v float64) float64 {
	s.zoom = ClampZoom(v)
	return s.zoom
}

// ClampZoom maps any requested zoom onto the allowed range. NaN maps to MinZoom.
func ClampZoom(v float64) float64 {
	switch {
	case math.IsNaN(v), v < MinZoom:
		return MinZoom
	case v > MaxZoom:
		return MaxZoom
	default:
		return v
	}
}

// BeginDrag anchors a drag gesture at pointer p.
func (s *Session) BeginDrag(p Point) {
	s.dragAnchor = p.Sub(s.position)
	s.dragging = true
}

// ContinueDrag moves the image with the pointer. It is a no-op unless a drag
// is active and reports whether the position changed.
func (s *Session) ContinueDrag(p Point) bool {
	if !s.dragging {
		return false
	}
	next := p.Sub(s.dragAnchor)
	if next == s.position {
		return false
	}
	s.position = next
	return true
}

// EndDrag finishes a drag gesture. Call it on pointer-up and pointer-leave.
func (s *Session) EndDrag() {
	s.dragging = false
	s.dragAnchor = Point{}
}

// Cancel releases the source and resets every field.
func (s *Session) Cancel() {
	s.source = nil
	s.zoom = MinZoom
	s.position = Point{}
	s.dragAnchor = Point{}
	s.dragging = false
}
