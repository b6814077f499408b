package suggestions

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"resume-builder/internal/resumes"
)

// Impact ranks how much a suggestion matters.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

func (i Impact) rank() int {
	switch i {
	case ImpactHigh:
		return 0
	case ImpactMedium:
		return 1
	default:
		return 2
	}
}

// Category groups suggestions.
type Category string

const (
	CategoryContent    Category = "content"
	CategoryFormatting Category = "formatting"
	CategorySkills     Category = "skills"
	CategoryExperience Category = "experience"
)

var (
	// ErrNotFound is returned for unknown suggestion ids.
	ErrNotFound = errors.New("suggestion not found")
	// ErrAlreadyApplied is returned when a suggestion was applied before.
	ErrAlreadyApplied = errors.New("suggestion already applied")
)

// Suggestion is one improvement hint.
type Suggestion struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      Impact   `json:"impact"`
	Category    Category `json:"category"`
	Suggestion  string   `json:"suggestion"`
}

// Applied records that a suggestion was accepted for a resume.
type Applied struct {
	SuggestionID string    `json:"suggestionId"`
	Title        string    `json:"title"`
	AppliedAt    time.Time `json:"appliedAt"`
}

var catalog = []Suggestion{
	{
		ID:          "1",
		Title:       "Add Quantifiable Metrics",
		Description: "Your experience descriptions lack specific metrics and achievements",
		Impact:      ImpactHigh,
		Category:    CategoryContent,
		Suggestion:  "Add numbers to your achievements: 'Improved performance by 40%', 'Led team of 5 engineers', 'Reduced costs by $50K'",
	},
	{
		ID:          "2",
		Title:       "Enhance Summary",
		Description: "Your professional summary could be more compelling",
		Impact:      ImpactHigh,
		Category:    CategoryContent,
		Suggestion:  "Include specific technologies and years of experience. Example: 'Full-stack developer with 8+ years specializing in React and Node.js'",
	},
	{
		ID:          "3",
		Title:       "Add More Skills",
		Description: "Consider adding more technical skills to improve ATS compatibility",
		Impact:      ImpactMedium,
		Category:    CategorySkills,
		Suggestion:  "Add: Cloud platforms (AWS, GCP), CI/CD tools, Testing frameworks",
	},
	{
		ID:          "4",
		Title:       "Improve Formatting",
		Description: "Use consistent date formats and bullet point structure",
		Impact:      ImpactMedium,
		Category:    CategoryFormatting,
		Suggestion:  "Standardize dates to 'Month Year - Month Year' format throughout",
	},
	{
		ID:          "5",
		Title:       "Add Certifications",
		Description: "Include relevant professional certifications",
		Impact:      ImpactLow,
		Category:    CategoryExperience,
		Suggestion:  "Add AWS, Google Cloud, or industry-specific certifications",
	},
}

// Engine produces canned suggestions after a simulated analysis delay and
// remembers which ones were applied per resume.
type Engine struct {
	Delay time.Duration
	Now   func() time.Time

	mu      sync.Mutex
	applied map[string][]Applied // ownerID|resumeID -> applied
}

// NewEngine constructs an Engine.
func NewEngine(delay time.Duration) *Engine {
	return &Engine{
		Delay:   delay,
		Now:     func() time.Time { return time.Now().UTC() },
		applied: make(map[string][]Applied),
	}
}

// Generate returns the suggestions for a resume ordered by impact. The content
// of the resume does not influence the result.
func (e *Engine) Generate(ctx context.Context, res resumes.Resume) ([]Suggestion, error) {
	_ = res
	if e.Delay > 0 {
		timer := time.NewTimer(e.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	out := append([]Suggestion(nil), catalog...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Impact.rank() < out[j].Impact.rank()
	})
	return out, nil
}

// Apply marks a suggestion as applied for a resume.
func (e *Engine) Apply(ctx context.Context, ownerID, resumeID, suggestionID string) (Applied, error) {
	if err := ctx.Err(); err != nil {
		return Applied{}, err
	}
	var found *Suggestion
	for i := range catalog {
		if catalog[i].ID == suggestionID {
			found = &catalog[i]
			break
		}
	}
	if found == nil {
		return Applied{}, ErrNotFound
	}

	key := ownerID + "|" + resumeID
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range e.applied[key] {
		if a.SuggestionID == suggestionID {
			return Applied{}, ErrAlreadyApplied
		}
	}
	rec := Applied{
		SuggestionID: suggestionID,
		Title:        "Applied: " + found.Title,
		AppliedAt:    e.Now(),
	}
	e.applied[key] = append(e.applied[key], rec)
	return rec, nil
}

// AppliedFor lists the applied suggestions for a resume in application order.
func (e *Engine) AppliedFor(ownerID, resumeID string) []Applied {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Applied(nil), e.applied[ownerID+"|"+resumeID]...)
}

// Forget drops the applied state of a resume.
func (e *Engine) Forget(ownerID, resumeID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.applied, ownerID+"|"+resumeID)
}
