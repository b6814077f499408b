package crops

type zoomRequest struct {
	Zoom *float64 `json:"zoom"`
}

type pointerRequest struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type pointerResponse struct {
	State
	Changed bool `json:"changed"`
}

type confirmResponse struct {
	ProfileImage string `json:"profileImage"`
	ResumeID     string `json:"resumeId,omitempty"`
	SizeBytes    int    `json:"sizeBytes"`
}
