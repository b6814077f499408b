package crop

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math"
	"testing"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestSetZoomClamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "below range", in: 0.2, want: 1},
		{name: "negative", in: -5, want: 1},
		{name: "lower bound", in: 1, want: 1},
		{name: "inside", in: 1.7, want: 1.7},
		{name: "upper bound", in: 3, want: 3},
		{name: "above range", in: 12, want: 3},
		{name: "positive infinity", in: math.Inf(1), want: 3},
		{name: "negative infinity", in: math.Inf(-1), want: 1},
		{name: "nan", in: math.NaN(), want: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Open(solid(10, 10, color.White))
			got := s.SetZoom(tt.in)
			if got != tt.want || s.Zoom() != tt.want {
				t.Fatalf("SetZoom(%v) = %v (session %v), want %v", tt.in, got, s.Zoom(), tt.want)
			}
			if got < MinZoom || got > MaxZoom {
				t.Fatalf("zoom %v escaped [%v, %v]", got, MinZoom, MaxZoom)
			}
		})
	}
}

func TestBeginEndDragWithoutMoveKeepsPosition(t *testing.T) {
	s := Open(solid(10, 10, color.White))
	s.BeginDrag(Point{X: 40, Y: 40})
	s.ContinueDrag(Point{X: 55, Y: 70})
	s.EndDrag()
	before := s.Position()

	s.BeginDrag(Point{X: 200, Y: -30})
	s.EndDrag()

	if s.Position() != before {
		t.Fatalf("position changed from %+v to %+v", before, s.Position())
	}
	if s.Dragging() {
		t.Fatalf("expected drag to be finished")
	}
}

func TestDragMovesByPointerDelta(t *testing.T) {
	s := Open(solid(10, 10, color.White))
	s.BeginDrag(Point{X: 0, Y: 0})
	s.ContinueDrag(Point{X: -12, Y: 8})
	s.EndDrag()
	before := s.Position()

	p0 := Point{X: 100, Y: 150}
	p1 := Point{X: 137.5, Y: 90}
	s.BeginDrag(p0)
	if !s.ContinueDrag(p1) {
		t.Fatalf("expected move to change position")
	}

	want := before.Add(p1.Sub(p0))
	if s.Position() != want {
		t.Fatalf("position = %+v, want %+v", s.Position(), want)
	}
}

func TestPointerLeaveStopsDrag(t *testing.T) {
	s := Open(solid(10, 10, color.White))
	s.BeginDrag(Point{X: 10, Y: 10})
	s.ContinueDrag(Point{X: 20, Y: 20})

	// pointer-leave is routed to EndDrag just like pointer-up
	s.EndDrag()
	if s.Dragging() {
		t.Fatalf("expected dragging=false after pointer leave")
	}
	pos := s.Position()
	if s.ContinueDrag(Point{X: 300, Y: 300}) {
		t.Fatalf("move after leave must be a no-op")
	}
	if s.Position() != pos {
		t.Fatalf("position moved after leave: %+v -> %+v", pos, s.Position())
	}

	s.BeginDrag(Point{X: 0, Y: 0})
	if !s.ContinueDrag(Point{X: 5, Y: 0}) {
		t.Fatalf("new drag should move again")
	}
}

func TestCancelThenOpenStartsFresh(t *testing.T) {
	s := Open(solid(20, 20, color.White))
	s.SetZoom(2.4)
	s.BeginDrag(Point{})
	s.ContinueDrag(Point{X: 33, Y: -7})
	s.Cancel()

	if s.Ready() {
		t.Fatalf("cancelled session must release its source")
	}
	if _, ok := s.Render(); ok {
		t.Fatalf("cancelled session must not render")
	}

	next := Open(solid(20, 20, color.White))
	if next.Zoom() != 1.0 {
		t.Fatalf("zoom = %v, want 1", next.Zoom())
	}
	if next.Position() != (Point{}) {
		t.Fatalf("position = %+v, want origin", next.Position())
	}
	if next.Dragging() {
		t.Fatalf("fresh session must not be dragging")
	}
}

func TestConfirmIsDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 5), B: 90, A: 255})
		}
	}

	build := func() *Session {
		s := Open(src)
		s.SetZoom(2.25)
		s.BeginDrag(Point{X: 10, Y: 10})
		s.ContinueDrag(Point{X: 31, Y: -4})
		s.EndDrag()
		return s
	}

	a := build()
	first, err := a.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	again, err := a.Confirm()
	if err != nil {
		t.Fatalf("confirm again: %v", err)
	}
	other, err := build().Confirm()
	if err != nil {
		t.Fatalf("confirm other: %v", err)
	}
	if !bytes.Equal(first, again) || !bytes.Equal(first, other) {
		t.Fatalf("expected byte-identical output")
	}
}

func TestConfirmOutputIsAlways300(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{name: "small", w: 50, h: 50},
		{name: "large", w: 4000, h: 3000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Open(solid(tc.w, tc.h, color.NRGBA{R: 20, G: 120, B: 200, A: 255}))
			s.SetZoom(1.5)
			out, err := s.Confirm()
			if err != nil {
				t.Fatalf("confirm: %v", err)
			}
			cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if cfg.Width != OutputSize || cfg.Height != OutputSize {
				t.Fatalf("output %dx%d, want %dx%d", cfg.Width, cfg.Height, OutputSize, OutputSize)
			}
		})
	}
}

func TestConfirmWithoutSource(t *testing.T) {
	s := Open(nil)
	if s.Ready() {
		t.Fatalf("nil source must not be ready")
	}
	if _, err := s.Confirm(); err != ErrNoImage {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}

func TestRenderClipsToCircle(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	s := Open(solid(100, 100, red), WithOutline(false))

	img, ok := s.Render()
	if !ok {
		t.Fatalf("expected render")
	}
	if got := img.RGBAAt(50, 50); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("inside image and circle: got %+v", got)
	}
	if got := img.RGBAAt(150, 150); got != (color.RGBA{A: 128}) {
		t.Fatalf("uncovered centre should show backdrop, got %+v", got)
	}

	s.SetZoom(3)
	img, _ = s.Render()
	if got := img.RGBAAt(150, 150); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("zoomed centre: got %+v", got)
	}
	if got := img.RGBAAt(2, 2); got != (color.RGBA{A: 128}) {
		t.Fatalf("corner outside circle must stay backdrop, got %+v", got)
	}
}

func TestRenderFarOffscreenShowsBackdrop(t *testing.T) {
	s := Open(solid(100, 100, color.White), WithOutline(false))
	s.BeginDrag(Point{})
	s.ContinueDrag(Point{X: -5000, Y: 9000})
	s.EndDrag()

	img, ok := s.Render()
	if !ok {
		t.Fatalf("expected render")
	}
	for _, pt := range []image.Point{{150, 150}, {40, 150}, {150, 260}} {
		if got := img.RGBAAt(pt.X, pt.Y); got != (color.RGBA{A: 128}) {
			t.Fatalf("pixel %v = %+v, want backdrop", pt, got)
		}
	}
}

func TestRenderDrawsOutline(t *testing.T) {
	s := Open(solid(300, 300, color.Black))
	img, _ := s.Render()
	// top of the circle sits on the stroke
	edge := img.RGBAAt(150, 0)
	if edge.R == 0 {
		t.Fatalf("expected outline on circle edge, got %+v", edge)
	}
}

func TestAspectRatioOption(t *testing.T) {
	if got := Open(nil).AspectRatio(); got != 1 {
		t.Fatalf("default aspect = %v", got)
	}
	if got := Open(nil, WithAspectRatio(-2)).AspectRatio(); got != 1 {
		t.Fatalf("negative aspect should fall back, got %v", got)
	}
	if got := Open(nil, WithAspectRatio(1.5)).AspectRatio(); got != 1.5 {
		t.Fatalf("aspect = %v", got)
	}
}

func TestCircleMasksAreAntiAliased(t *testing.T) {
	clip, ring := circleMasks(OutputSize)

	if got := clip.AlphaAt(150, 150).A; got != 0xff {
		t.Fatalf("clip centre alpha = %d", got)
	}
	if got := clip.AlphaAt(1, 1).A; got != 0 {
		t.Fatalf("clip corner alpha = %d", got)
	}
	partial := 0
	for _, a := range clip.Pix {
		if a > 0 && a < 0xff {
			partial++
		}
	}
	if partial == 0 {
		t.Fatalf("expected soft edge pixels on the clip disc")
	}

	at := func(x, y int) uint8 { return ring.AlphaAt(x+ringPad, y+ringPad).A }
	if got := at(150, 0); got < 0x80 {
		t.Fatalf("ring should cover the top edge, alpha = %d", got)
	}
	if got := at(150, 150); got != 0 {
		t.Fatalf("ring centre alpha = %d", got)
	}
	if got := at(150, 6); got != 0 {
		t.Fatalf("ring leaks inward, alpha = %d", got)
	}
}
