package resumes

import "time"

// ResumeResponse is the outward-facing representation of a draft.
type ResumeResponse struct {
	ResumeID           string    `json:"resumeId"`
	Template           string    `json:"template"`
	CustomTemplateName string    `json:"customTemplateName,omitempty"`
	Data               Data      `json:"data"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ResumeSummary is the list-view representation.
type ResumeSummary struct {
	ResumeID  string    `json:"resumeId"`
	FullName  string    `json:"fullName"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type entryFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type skillRequest struct {
	Skill string `json:"skill"`
}

type profileImageRequest struct {
	ProfileImage string `json:"profileImage"`
}

type templateRequest struct {
	Template           string `json:"template"`
	CustomTemplateName string `json:"customTemplateName"`
}

// ToResponse converts a draft for JSON output.
func ToResponse(r Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:           r.ID,
		Template:           r.Template,
		CustomTemplateName: r.CustomTemplateName,
		Data:               r.Data,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toSummary(r Resume) ResumeSummary {
	return ResumeSummary{
		ResumeID:  r.ID,
		FullName:  r.Data.FullName,
		Title:     r.Data.Title,
		Template:  r.Template,
		UpdatedAt: r.UpdatedAt,
	}
}
