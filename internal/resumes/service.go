package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/templates"
)

// Service contains business logic for resume drafts. Every mutation edits a
// copy of the whole aggregate and stores it back.
type Service struct {
	Repo  Repo
	Now   func() time.Time
	NewID func() string

	onDelete []func(ownerID, resumeID string)
}

// NewService constructs a Service backed by repo.
func NewService(repo Repo) *Service {
	return &Service{
		Repo:  repo,
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

// ImportPatch carries externally sourced content. Non-empty scalars overwrite;
// non-nil collections replace the existing ones.
type ImportPatch struct {
	FullName   string
	Title      string
	Email      string
	Phone      string
	Location   string
	Summary    string
	Experience []Experience
	Education  []Education
	Skills     []string
}

// Create stores a new draft seeded with data, or with the sample content when
// data is nil.
func (s *Service) Create(ctx context.Context, ownerID string, data *Data) (Resume, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Resume{}, fmt.Errorf("%w: owner id required", ErrInvalidInput)
	}
	seed := SampleData()
	if data != nil {
		seed = data.Clone()
	}
	now := s.Now()
	res := Resume{
		ID:        s.NewID(),
		OwnerID:   ownerID,
		Data:      s.normalise(seed),
		Template:  string(templates.Default),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}
	telemetry.Info("resume.created", map[string]any{"resume_id": res.ID, "user_id": ownerID})
	return res, nil
}

// Get returns one draft.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Resume, error) {
	return s.Repo.Get(ctx, ownerID, id)
}

// List returns the owner's drafts.
func (s *Service) List(ctx context.Context, ownerID string) ([]Resume, error) {
	return s.Repo.List(ctx, ownerID)
}

// Delete removes a draft.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.Repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	for _, fn := range s.onDelete {
		fn(ownerID, id)
	}
	return nil
}

// OnDelete registers fn to run after a draft is deleted. Register hooks
// before the service handles requests.
func (s *Service) OnDelete(fn func(ownerID, resumeID string)) {
	s.onDelete = append(s.onDelete, fn)
}

// Replace swaps the whole content of a draft. Entry ids are kept when unique
// and assigned otherwise.
func (s *Service) Replace(ctx context.Context, ownerID, id string, data Data) (Resume, error) {
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		profile := r.Data.ProfileImage
		r.Data = s.normalise(data.Clone())
		if data.ProfileImage == "" {
			r.Data.ProfileImage = profile
		}
		return nil
	})
}

// UpdateField sets one identity field or the summary.
func (s *Service) UpdateField(ctx context.Context, ownerID, id string, field Field, value string) (Resume, error) {
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		if !r.Data.setField(field, value) {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field)
		}
		return nil
	})
}

// AddEntry appends an entry to a collection with a fresh id, applying the
// supplied field values. It returns the new entry id.
func (s *Service) AddEntry(ctx context.Context, ownerID, id string, section Section, fields map[string]string) (Resume, string, error) {
	if !section.Valid() {
		return Resume{}, "", fmt.Errorf("%w: unknown section %q", ErrInvalidInput, section)
	}
	entryID := s.NewID()
	res, err := s.update(ctx, ownerID, id, func(r *Resume) error {
		return addEntry(&r.Data, section, entryID, fields)
	})
	if err != nil {
		return Resume{}, "", err
	}
	return res, entryID, nil
}

// UpdateEntry sets one field of one entry.
func (s *Service) UpdateEntry(ctx context.Context, ownerID, id string, section Section, entryID, field, value string) (Resume, error) {
	if !section.Valid() {
		return Resume{}, fmt.Errorf("%w: unknown section %q", ErrInvalidInput, section)
	}
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		return updateEntry(&r.Data, section, entryID, field, value)
	})
}

// RemoveEntry deletes an entry by id.
func (s *Service) RemoveEntry(ctx context.Context, ownerID, id string, section Section, entryID string) (Resume, error) {
	if !section.Valid() {
		return Resume{}, fmt.Errorf("%w: unknown section %q", ErrInvalidInput, section)
	}
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		return removeEntry(&r.Data, section, entryID)
	})
}

// AddSkill appends a trimmed skill. Blank input leaves the draft unchanged.
func (s *Service) AddSkill(ctx context.Context, ownerID, id, skill string) (Resume, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return s.Repo.Get(ctx, ownerID, id)
	}
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		r.Data.Skills = append(r.Data.Skills, skill)
		return nil
	})
}

// RemoveSkill deletes the skill at index.
func (s *Service) RemoveSkill(ctx context.Context, ownerID, id string, index int) (Resume, error) {
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		if index < 0 || index >= len(r.Data.Skills) {
			return ErrEntryNotFound
		}
		r.Data.Skills = append(r.Data.Skills[:index], r.Data.Skills[index+1:]...)
		return nil
	})
}

// SetProfileImage replaces the profile image reference.
func (s *Service) SetProfileImage(ctx context.Context, ownerID, id, image string) (Resume, error) {
	if strings.TrimSpace(image) == "" {
		return Resume{}, fmt.Errorf("%w: profile image required", ErrInvalidInput)
	}
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		r.Data.ProfileImage = image
		return nil
	})
}

// ClearProfileImage removes the profile image reference.
func (s *Service) ClearProfileImage(ctx context.Context, ownerID, id string) (Resume, error) {
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		r.Data.ProfileImage = ""
		return nil
	})
}

// SetTemplate selects a layout.
func (s *Service) SetTemplate(ctx context.Context, ownerID, id, template, customName string) (Resume, error) {
	tplID, name, err := templates.Resolve(template, customName)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		r.Template = string(tplID)
		r.CustomTemplateName = name
		return nil
	})
}

// ApplyImport merges externally sourced content into a draft.
func (s *Service) ApplyImport(ctx context.Context, ownerID, id string, patch ImportPatch) (Resume, error) {
	return s.update(ctx, ownerID, id, func(r *Resume) error {
		d := &r.Data
		for _, kv := range []struct {
			field Field
			value string
		}{
			{FieldFullName, patch.FullName},
			{FieldTitle, patch.Title},
			{FieldEmail, patch.Email},
			{FieldPhone, patch.Phone},
			{FieldLocation, patch.Location},
			{FieldSummary, patch.Summary},
		} {
			if strings.TrimSpace(kv.value) != "" {
				d.setField(kv.field, kv.value)
			}
		}
		if patch.Experience != nil {
			d.Experience = make([]Experience, 0, len(patch.Experience))
			for _, e := range patch.Experience {
				e.ID = s.NewID()
				d.Experience = append(d.Experience, e)
			}
		}
		if patch.Education != nil {
			d.Education = make([]Education, 0, len(patch.Education))
			for _, e := range patch.Education {
				e.ID = s.NewID()
				d.Education = append(d.Education, e)
			}
		}
		if patch.Skills != nil {
			d.Skills = cleanSkills(patch.Skills)
		}
		return nil
	})
}

func (s *Service) update(ctx context.Context, ownerID, id string, fn func(*Resume) error) (Resume, error) {
	res, err := s.Repo.Update(ctx, ownerID, id, func(r *Resume) error {
		if err := fn(r); err != nil {
			return err
		}
		r.UpdatedAt = s.Now()
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidInput) && !errors.Is(err, ErrEntryNotFound) {
			telemetry.Error("resume.update_failed", map[string]any{"resume_id": id, "error": err})
		}
		return Resume{}, err
	}
	return res, nil
}

func (s *Service) normalise(d Data) Data {
	seen := make(map[string]struct{})
	fresh := func(id string) string {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; id == "" || dup {
			id = s.NewID()
		}
		seen[id] = struct{}{}
		return id
	}
	// ids are unique per list
	for i := range d.Experience {
		d.Experience[i].ID = fresh(d.Experience[i].ID)
	}
	seen = make(map[string]struct{})
	for i := range d.Education {
		d.Education[i].ID = fresh(d.Education[i].ID)
	}
	seen = make(map[string]struct{})
	for i := range d.Certifications {
		d.Certifications[i].ID = fresh(d.Certifications[i].ID)
	}
	seen = make(map[string]struct{})
	for i := range d.CustomSections {
		d.CustomSections[i].ID = fresh(d.CustomSections[i].ID)
	}
	d.Skills = cleanSkills(d.Skills)
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.CustomSections == nil {
		d.CustomSections = []CustomSection{}
	}
	return d
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, skill := range in {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func addEntry(d *Data, section Section, entryID string, fields map[string]string) error {
	switch section {
	case SectionExperience:
		e := Experience{ID: entryID}
		for k, v := range fields {
			if !e.set(k, v) {
				return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, k)
			}
		}
		d.Experience = append(d.Experience, e)
	case SectionEducation:
		e := Education{ID: entryID}
		for k, v := range fields {
			if !e.set(k, v) {
				return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, k)
			}
		}
		d.Education = append(d.Education, e)
	case SectionCertifications:
		e := Certification{ID: entryID}
		for k, v := range fields {
			if !e.set(k, v) {
				return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, k)
			}
		}
		d.Certifications = append(d.Certifications, e)
	case SectionCustom:
		e := CustomSection{ID: entryID}
		for k, v := range fields {
			if !e.set(k, v) {
				return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, k)
			}
		}
		d.CustomSections = append(d.CustomSections, e)
	}
	return nil
}

func updateEntry(d *Data, section Section, entryID, field, value string) error {
	ok := false
	found := false
	switch section {
	case SectionExperience:
		for i := range d.Experience {
			if d.Experience[i].ID == entryID {
				found, ok = true, d.Experience[i].set(field, value)
				break
			}
		}
	case SectionEducation:
		for i := range d.Education {
			if d.Education[i].ID == entryID {
				found, ok = true, d.Education[i].set(field, value)
				break
			}
		}
	case SectionCertifications:
		for i := range d.Certifications {
			if d.Certifications[i].ID == entryID {
				found, ok = true, d.Certifications[i].set(field, value)
				break
			}
		}
	case SectionCustom:
		for i := range d.CustomSections {
			if d.CustomSections[i].ID == entryID {
				found, ok = true, d.CustomSections[i].set(field, value)
				break
			}
		}
	}
	if !found {
		return ErrEntryNotFound
	}
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field)
	}
	return nil
}

func removeEntry(d *Data, section Section, entryID string) error {
	removed := false
	switch section {
	case SectionExperience:
		kept := d.Experience[:0]
		for _, e := range d.Experience {
			if e.ID == entryID {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		d.Experience = kept
	case SectionEducation:
		kept := d.Education[:0]
		for _, e := range d.Education {
			if e.ID == entryID {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		d.Education = kept
	case SectionCertifications:
		kept := d.Certifications[:0]
		for _, e := range d.Certifications {
			if e.ID == entryID {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		d.Certifications = kept
	case SectionCustom:
		kept := d.CustomSections[:0]
		for _, e := range d.CustomSections {
			if e.ID == entryID {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		d.CustomSections = kept
	}
	if !removed {
		return ErrEntryNotFound
	}
	return nil
}
