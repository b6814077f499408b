package crops

import (
	"sync"
	"time"

	"resume-builder/internal/crop"
)

// PointerKind names a pointer transition on the crop surface.
type PointerKind string

const (
	PointerDown  PointerKind = "down"
	PointerMove  PointerKind = "move"
	PointerUp    PointerKind = "up"
	PointerLeave PointerKind = "leave"
)

// record is one open crop dialog. mu serialises every operation on session.
type record struct {
	mu sync.Mutex

	ID        string
	OwnerID   string
	ResumeID  string
	FileName  string
	SourceKey string
	CreatedAt time.Time
	LastSeen  time.Time

	session *crop.Session
}

// State is a snapshot of a crop session.
type State struct {
	ID          string     `json:"cropSessionId"`
	ResumeID    string     `json:"resumeId,omitempty"`
	FileName    string     `json:"fileName"`
	Zoom        float64    `json:"zoom"`
	ZoomPercent int        `json:"zoomPercent"`
	MinZoom     float64    `json:"minZoom"`
	MaxZoom     float64    `json:"maxZoom"`
	ZoomStep    float64    `json:"zoomStep"`
	Position    crop.Point `json:"position"`
	Dragging    bool       `json:"dragging"`
	AspectRatio float64    `json:"aspectRatio"`
	Source      Size       `json:"source"`
	OutputSize  int        `json:"outputSize"`
	ExpiresAt   time.Time  `json:"expiresAt"`
}

// Size is a pixel extent.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ConfirmResult is returned when a session produces its final image.
type ConfirmResult struct {
	ProfileImage string
	ResumeID     string
	SizeBytes    int
}
