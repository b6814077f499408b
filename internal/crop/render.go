package crop

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// ErrNoImage is returned when there is nothing to render. Callers treat it as
// "nothing to apply" and keep their prior state.
var ErrNoImage = errors.New("crop: no source image")

const strokeWidth = 2.0

// Render composes the circular crop at output resolution. The second return
// value is false when the session has no source.
func (s *Session) Render() (*image.RGBA, bool) {
	if !s.Ready() {
		return nil, false
	}
	bounds := image.Rect(0, 0, s.side, s.side)
	dst := image.NewRGBA(bounds)

	draw.Draw(dst, bounds, image.NewUniform(s.backdrop), image.Point{}, draw.Src)

	sr := s.source.Bounds()
	z := s.zoom
	s2d := f64.Aff3{
		z, 0, s.position.X - z*float64(sr.Min.X),
		0, z, s.position.Y - z*float64(sr.Min.Y),
	}
	draw.BiLinear.Transform(dst, s2d, s.source, sr, draw.Over, &draw.Options{
		DstMask:  s.clip,
		DstMaskP: image.Point{},
	})

	if s.stroke {
		draw.DrawMask(dst, bounds, image.NewUniform(s.outline), image.Point{}, s.ring, image.Point{X: ringPad, Y: ringPad}, draw.Over)
	}
	return dst, true
}

// Confirm renders and encodes the final composition as JPEG. It may be
// called repeatedly; identical state yields identical bytes.
func (s *Session) Confirm() ([]byte, error) {
	img, ok := s.Render()
	if !ok {
		return nil, ErrNoImage
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURI wraps encoded JPEG bytes for storage as an opaque string.
func DataURI(encoded []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded)
}

// ringPad keeps the outline stroke, which straddles the surface edge, inside
// the rasterizer bounds.
const ringPad = 2

// bezierArc is the cubic control offset that approximates a quarter circle.
const bezierArc = 0.5522847498

// circleMasks builds the anti-aliased clip disc and the outline ring for a
// square surface. The ring mask is padded by ringPad on every side.
func circleMasks(side int) (*image.Alpha, *image.Alpha) {
	c := float32(side) / 2

	clip := image.NewAlpha(image.Rect(0, 0, side, side))
	z := vector.NewRasterizer(side, side)
	z.DrawOp = draw.Src
	addCircle(z, c, c, c, false)
	z.Draw(clip, clip.Bounds(), image.Opaque, image.Point{})

	padded := side + 2*ringPad
	ring := image.NewAlpha(image.Rect(0, 0, padded, padded))
	z = vector.NewRasterizer(padded, padded)
	z.DrawOp = draw.Src
	pc := c + ringPad
	// the inner circle winds the other way so its area is subtracted
	addCircle(z, pc, pc, c+strokeWidth/2, false)
	addCircle(z, pc, pc, c-strokeWidth/2, true)
	z.Draw(ring, ring.Bounds(), image.Opaque, image.Point{})

	return clip, ring
}

// addCircle appends a closed circle of four cubic arcs, starting at the
// rightmost point.
func addCircle(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	k := r * bezierArc
	z.MoveTo(cx+r, cy)
	if reverse {
		z.CubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		z.CubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		z.CubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		z.CubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	} else {
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	}
	z.ClosePath()
}
