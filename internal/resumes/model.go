package resumes

import "time"

// Experience is one work history entry.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	CompanyURL  string `json:"companyUrl"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is one school entry.
type Education struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

// Certification is one certificate entry.
type Certification struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Issuer         string `json:"issuer"`
	Date           string `json:"date"`
	CertificateURL string `json:"certificateUrl"`
}

// CustomSection is a free-form titled block.
type CustomSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Data is the editable resume content. ProfileImage is an opaque image
// reference, normally a JPEG data URI produced by the cropper.
type Data struct {
	FullName       string          `json:"fullName"`
	Title          string          `json:"title"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Location       string          `json:"location"`
	Summary        string          `json:"summary"`
	ProfileImage   string          `json:"profileImage,omitempty"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Skills         []string        `json:"skills"`
	CustomSections []CustomSection `json:"customSections"`
}

// Resume is a stored draft owned by one guest identity.
type Resume struct {
	ID                 string
	OwnerID            string
	Data               Data
	Template           string
	CustomTemplateName string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Clone returns a deep copy so callers can edit without aliasing stored slices.
func (r Resume) Clone() Resume {
	out := r
	out.Data = r.Data.Clone()
	return out
}

// Clone returns a deep copy of the content. Collections in the copy are never
// nil so they encode as JSON arrays.
func (d Data) Clone() Data {
	out := d
	out.Experience = cloneList(d.Experience)
	out.Education = cloneList(d.Education)
	out.Certifications = cloneList(d.Certifications)
	out.Skills = cloneList(d.Skills)
	out.CustomSections = cloneList(d.CustomSections)
	return out
}

func cloneList[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Section names a repeated collection inside Data.
type Section string

const (
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
	SectionCustom         Section = "customSections"
)

// Valid reports whether s names a known collection.
func (s Section) Valid() bool {
	switch s {
	case SectionExperience, SectionEducation, SectionCertifications, SectionCustom:
		return true
	}
	return false
}

// Field names the scalar identity fields editable one at a time.
type Field string

const (
	FieldFullName Field = "fullName"
	FieldTitle    Field = "title"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldLocation Field = "location"
	FieldSummary  Field = "summary"
)

func (d *Data) setField(f Field, value string) bool {
	switch f {
	case FieldFullName:
		d.FullName = value
	case FieldTitle:
		d.Title = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldLocation:
		d.Location = value
	case FieldSummary:
		d.Summary = value
	default:
		return false
	}
	return true
}

func (e *Experience) set(field, value string) bool {
	switch field {
	case "company":
		e.Company = value
	case "companyUrl":
		e.CompanyURL = value
	case "position":
		e.Position = value
	case "duration":
		e.Duration = value
	case "description":
		e.Description = value
	default:
		return false
	}
	return true
}

func (e *Education) set(field, value string) bool {
	switch field {
	case "school":
		e.School = value
	case "degree":
		e.Degree = value
	case "year":
		e.Year = value
	default:
		return false
	}
	return true
}

func (c *Certification) set(field, value string) bool {
	switch field {
	case "name":
		c.Name = value
	case "issuer":
		c.Issuer = value
	case "date":
		c.Date = value
	case "certificateUrl":
		c.CertificateURL = value
	default:
		return false
	}
	return true
}

func (c *CustomSection) set(field, value string) bool {
	switch field {
	case "title":
		c.Title = value
	case "content":
		c.Content = value
	default:
		return false
	}
	return true
}
