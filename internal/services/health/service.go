package health

import "time"

// SessionCounter reports how many crop dialogs are open.
type SessionCounter interface {
	Len() int
}

// Service encapsulates health-related checks.
type Service struct {
	started  time.Time
	sessions SessionCounter
}

// NewService constructs a new health service.
func NewService(sessions SessionCounter) *Service {
	return &Service{started: time.Now(), sessions: sessions}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]any {
	out := map[string]any{
		"ok":            true,
		"uptimeSeconds": int64(time.Since(s.started).Seconds()),
	}
	if s.sessions != nil {
		out["openCropSessions"] = s.sessions.Len()
	}
	return out
}
