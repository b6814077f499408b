package templates

import (
	"errors"
	"strings"
)

// ID identifies a resume layout.
type ID string

const (
	Modern       ID = "modern"
	Classic      ID = "classic"
	Minimal      ID = "minimal"
	Professional ID = "professional"
	Creative     ID = "creative"
	Executive    ID = "executive"
	Custom       ID = "custom"
)

// Default is used when no or an unknown template is requested.
const Default = Modern

// ErrCustomNameRequired is returned when selecting the custom layout without a name.
var ErrCustomNameRequired = errors.New("custom template name is required")

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Style drives how a layout is rendered to PDF.
type Style struct {
	Accent  RGB  `json:"-"`
	Heading RGB  `json:"-"`
	Muted   RGB  `json:"-"`
	Sidebar bool `json:"sidebar"`
	// Banner draws a filled header strip behind the name.
	Banner bool `json:"banner"`
}

// Template is one catalog entry.
type Template struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Style       Style  `json:"style"`
}

var catalog = []Template{
	{ID: Modern, Name: "Modern", Description: "Contemporary design with vibrant accents",
		Style: Style{Accent: RGB{99, 102, 241}, Heading: RGB{30, 41, 59}, Muted: RGB{100, 116, 139}}},
	{ID: Classic, Name: "Classic", Description: "Timeless professional layout",
		Style: Style{Accent: RGB{55, 65, 81}, Heading: RGB{17, 24, 39}, Muted: RGB{107, 114, 128}}},
	{ID: Minimal, Name: "Minimal", Description: "Clean and distraction-free",
		Style: Style{Accent: RGB{0, 0, 0}, Heading: RGB{0, 0, 0}, Muted: RGB{115, 115, 115}}},
	{ID: Professional, Name: "Professional", Description: "Corporate with profile image",
		Style: Style{Accent: RGB{30, 64, 175}, Heading: RGB{15, 23, 42}, Muted: RGB{71, 85, 105}}},
	{ID: Creative, Name: "Creative", Description: "Bold and colorful design",
		Style: Style{Accent: RGB{219, 39, 119}, Heading: RGB{88, 28, 135}, Muted: RGB{107, 114, 128}, Banner: true}},
	{ID: Executive, Name: "Executive", Description: "Sidebar layout for leaders",
		Style: Style{Accent: RGB{180, 83, 9}, Heading: RGB{28, 25, 23}, Muted: RGB{87, 83, 78}, Sidebar: true}},
	{ID: Custom, Name: "Custom", Description: "Your own named layout based on Modern",
		Style: Style{Accent: RGB{99, 102, 241}, Heading: RGB{30, 41, 59}, Muted: RGB{100, 116, 139}}},
}

// All returns the catalog in display order.
func All() []Template {
	return append([]Template(nil), catalog...)
}

// Lookup returns the entry for id, falling back to the default layout.
func Lookup(id ID) Template {
	for _, t := range catalog {
		if t.ID == id {
			return t
		}
	}
	return catalog[0]
}

// Resolve normalises a requested selection. Unknown ids map to the default;
// the custom layout keeps its trimmed name and requires one.
func Resolve(id, customName string) (ID, string, error) {
	requested := ID(strings.ToLower(strings.TrimSpace(id)))
	if requested == Custom {
		name := strings.TrimSpace(customName)
		if name == "" {
			return "", "", ErrCustomNameRequired
		}
		return Custom, name, nil
	}
	for _, t := range catalog {
		if t.ID == requested {
			return requested, "", nil
		}
	}
	return Default, "", nil
}
