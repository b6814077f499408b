package imports

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"resume-builder/internal/resumes"
)

// Source classifies where an import URL points.
type Source string

const (
	SourceLinkedIn Source = "linkedin"
	SourceGitHub   Source = "github"
	SourceFile     Source = "file"
)

// ErrURLRequired is returned when the import URL is blank.
var ErrURLRequired = errors.New("import url is required")

// ImportedExperience is a work entry as delivered by an import source.
type ImportedExperience struct {
	Company     string `mapstructure:"company" json:"company"`
	Position    string `mapstructure:"position" json:"position"`
	Duration    string `mapstructure:"duration" json:"duration"`
	Description string `mapstructure:"description" json:"description"`
}

// ImportedEducation is a school entry as delivered by an import source.
type ImportedEducation struct {
	School string `mapstructure:"school" json:"school"`
	Degree string `mapstructure:"degree" json:"degree"`
	Year   string `mapstructure:"year" json:"year"`
}

// ImportedData is the extracted profile. Every field is optional.
type ImportedData struct {
	Source     Source               `mapstructure:"-" json:"source"`
	FullName   string               `mapstructure:"fullName" json:"fullName,omitempty"`
	Title      string               `mapstructure:"title" json:"title,omitempty"`
	Email      string               `mapstructure:"email" json:"email,omitempty"`
	Phone      string               `mapstructure:"phone" json:"phone,omitempty"`
	Location   string               `mapstructure:"location" json:"location,omitempty"`
	Summary    string               `mapstructure:"summary" json:"summary,omitempty"`
	Experience []ImportedExperience `mapstructure:"experience" json:"experience,omitempty"`
	Education  []ImportedEducation  `mapstructure:"education" json:"education,omitempty"`
	Skills     []string             `mapstructure:"skills" json:"skills,omitempty"`
}

// Patch converts the import into a resume merge.
func (d ImportedData) Patch() resumes.ImportPatch {
	patch := resumes.ImportPatch{
		FullName: d.FullName,
		Title:    d.Title,
		Email:    d.Email,
		Phone:    d.Phone,
		Location: d.Location,
		Summary:  d.Summary,
		Skills:   d.Skills,
	}
	if d.Experience != nil {
		patch.Experience = make([]resumes.Experience, 0, len(d.Experience))
		for _, e := range d.Experience {
			patch.Experience = append(patch.Experience, resumes.Experience{
				Company:     e.Company,
				Position:    e.Position,
				Duration:    e.Duration,
				Description: e.Description,
			})
		}
	}
	if d.Education != nil {
		patch.Education = make([]resumes.Education, 0, len(d.Education))
		for _, e := range d.Education {
			patch.Education = append(patch.Education, resumes.Education{
				School: e.School,
				Degree: e.Degree,
				Year:   e.Year,
			})
		}
	}
	return patch
}

// Importer simulates fetching profile data from an external URL.
type Importer struct {
	Delay time.Duration
}

// NewImporter constructs an Importer with the given simulated latency.
func NewImporter(delay time.Duration) *Importer {
	return &Importer{Delay: delay}
}

// Import waits the simulated delay and returns the example profile. No network
// request is made.
func (i *Importer) Import(ctx context.Context, rawURL string) (ImportedData, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ImportedData{}, ErrURLRequired
	}
	source := DetectSource(rawURL)

	if i.Delay > 0 {
		timer := time.NewTimer(i.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ImportedData{}, ctx.Err()
		case <-timer.C:
		}
	}

	var out ImportedData
	if err := mapstructure.Decode(examplePayload(), &out); err != nil {
		return ImportedData{}, fmt.Errorf("decode import payload: %w", err)
	}
	out.Source = source
	return out, nil
}

// DetectSource classifies an import URL by host.
func DetectSource(rawURL string) Source {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = strings.ToLower(u.Hostname())
	}
	if host == "" {
		// bare "linkedin.com/in/x" style input
		host = strings.ToLower(strings.SplitN(rawURL, "/", 2)[0])
	}
	switch {
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return SourceLinkedIn
	case host == "github.com" || strings.HasSuffix(host, ".github.com"):
		return SourceGitHub
	default:
		return SourceFile
	}
}

func examplePayload() map[string]any {
	return map[string]any{
		"fullName": "John Doe",
		"title":    "Senior Software Engineer",
		"email":    "john@example.com",
		"phone":    "+1 (555) 987-6543",
		"location": "San Francisco, CA",
		"summary":  "Experienced software engineer with 8+ years in full-stack development. Specialized in cloud architecture and team leadership.",
		"experience": []map[string]any{
			{
				"company":     "Tech Corp",
				"position":    "Senior Engineer",
				"duration":    "2021 - Present",
				"description": "Led team of 5 engineers, architected microservices platform",
			},
			{
				"company":     "StartUp Inc",
				"position":    "Full Stack Developer",
				"duration":    "2018 - 2021",
				"description": "Built and maintained 15+ production applications",
			},
		},
		"education": []map[string]any{
			{"school": "State University", "degree": "B.S. Computer Science", "year": "2016"},
		},
		"skills": []string{"React", "Node.js", "TypeScript", "AWS", "Docker", "PostgreSQL", "GraphQL", "Python"},
	}
}
