package crop

import (
	"context"
	"errors"
)

// Status is the terminal state of a crop dialog.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Outcome is the result of a modal crop interaction.
type Outcome struct {
	Status Status
	Image  []byte
}

// Confirmed reports whether the dialog produced an image.
func (o Outcome) Confirmed() bool { return o.Status == StatusConfirmed && len(o.Image) > 0 }

// Event is a user input delivered to a running dialog.
type Event interface {
	event()
}

type (
	// Zoom requests a new zoom value.
	Zoom struct{ Value float64 }
	// PointerDown starts a drag.
	PointerDown struct{ At Point }
	// PointerMove continues a drag.
	PointerMove struct{ At Point }
	// PointerUp ends a drag.
	PointerUp struct{}
	// PointerLeave ends a drag when the pointer exits the crop surface.
	PointerLeave struct{}
	// Confirm asks for the final image.
	Confirm struct{}
	// Cancel closes the dialog without output.
	Cancel struct{}
)

func (Zoom) event()         {}
func (PointerDown) event()  {}
func (PointerMove) event()  {}
func (PointerUp) event()    {}
func (PointerLeave) event() {}
func (Confirm) event()      {}
func (Cancel) event()       {}

// Observer is notified after every event that changed the render.
type Observer func(s *Session)

// Run drives s with events until the user confirms or cancels. A confirm
// without a renderable source keeps the dialog open. Closing the channel or
// cancelling ctx ends the dialog as cancelled. The session is discarded on
// return either way.
func Run(ctx context.Context, s *Session, events <-chan Event, onChange Observer) (Outcome, error) {
	defer s.Cancel()
	for {
		select {
		case <-ctx.Done():
			return Outcome{Status: StatusCancelled}, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return Outcome{Status: StatusCancelled}, nil
			}
			changed := false
			switch e := ev.(type) {
			case Zoom:
				before := s.Zoom()
				changed = s.SetZoom(e.Value) != before
			case PointerDown:
				s.BeginDrag(e.At)
			case PointerMove:
				changed = s.ContinueDrag(e.At)
			case PointerUp, PointerLeave:
				s.EndDrag()
			case Confirm:
				out, err := s.Confirm()
				if errors.Is(err, ErrNoImage) {
					continue
				}
				if err != nil {
					return Outcome{Status: StatusCancelled}, err
				}
				return Outcome{Status: StatusConfirmed, Image: out}, nil
			case Cancel:
				return Outcome{Status: StatusCancelled}, nil
			}
			if changed && onChange != nil {
				onChange(s)
			}
		}
	}
}
