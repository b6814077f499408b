package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"resume-builder/internal/resumes"
	"resume-builder/internal/templates"
)

const (
	fontFamily = "go"

	pageMargin   = 48.0
	sidebarWidth = 170.0
	photoSize    = 84.0

	nameSize    = 22.0
	titleSize   = 13.0
	headingSize = 12.0
	bodySize    = 10.0
	lineGap     = 1.35
)

// ErrInvalidProfileImage is returned when the stored profile image is not a
// base64 image data URI.
var ErrInvalidProfileImage = errors.New("profile image is not a base64 data uri")

var whitespace = regexp.MustCompile(`\s+`)

// FileName derives the download name, e.g. "Alex_Johnson_Resume.pdf".
func FileName(fullName string) string {
	name := whitespace.ReplaceAllString(fullName, "_")
	name = strings.NewReplacer(`"`, "", "/", "", `\`, "").Replace(name)
	return name + "_Resume.pdf"
}

// RenderPDF lays the resume out on A4 pages using the style of its template.
func RenderPDF(res resumes.Resume) ([]byte, error) {
	tpl := templates.Lookup(templates.ID(res.Template))

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{Unit: gopdf.UnitPT, PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFontData(fontFamily, goregular.TTF); err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	if err := pdf.AddTTFFontDataWithOption(fontFamily, gobold.TTF, gopdf.TtfOption{Style: gopdf.Bold}); err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	pdf.AddPage()

	w := &pageWriter{pdf: pdf, style: tpl.Style}
	if err := w.layout(res); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pageWriter struct {
	pdf   *gopdf.GoPdf
	style templates.Style
	x     float64
	width float64
	y     float64
}

func (w *pageWriter) layout(res resumes.Resume) error {
	d := res.Data
	pageW := gopdf.PageSizeA4.W

	w.x, w.y = pageMargin, pageMargin
	w.width = pageW - 2*pageMargin

	if w.style.Sidebar {
		if err := w.sidebar(d); err != nil {
			return err
		}
		w.x = pageMargin + sidebarWidth + 18
		w.width = pageW - w.x - pageMargin
		w.y = pageMargin
		primary := d
		primary.ProfileImage = ""
		if err := w.header(primary, false); err != nil {
			return err
		}
	} else if err := w.header(d, true); err != nil {
		return err
	}

	if strings.TrimSpace(d.Summary) != "" {
		if err := w.section("Summary"); err != nil {
			return err
		}
		if err := w.paragraph(d.Summary, false, bodySize, w.style.Heading); err != nil {
			return err
		}
	}
	if len(d.Experience) > 0 {
		if err := w.section("Experience"); err != nil {
			return err
		}
		for _, e := range d.Experience {
			if err := w.entry(joinNonEmpty(" · ", e.Position, e.Company), e.Duration, e.CompanyURL, e.Description); err != nil {
				return err
			}
		}
	}
	if len(d.Education) > 0 {
		if err := w.section("Education"); err != nil {
			return err
		}
		for _, e := range d.Education {
			if err := w.entry(e.Degree, e.Year, e.School, ""); err != nil {
				return err
			}
		}
	}
	if len(d.Certifications) > 0 {
		if err := w.section("Certifications"); err != nil {
			return err
		}
		for _, c := range d.Certifications {
			if err := w.entry(c.Name, c.Date, joinNonEmpty(" · ", c.Issuer, c.CertificateURL), ""); err != nil {
				return err
			}
		}
	}
	if !w.style.Sidebar && len(d.Skills) > 0 {
		if err := w.section("Skills"); err != nil {
			return err
		}
		if err := w.paragraph(strings.Join(d.Skills, "  •  "), false, bodySize, w.style.Heading); err != nil {
			return err
		}
	}
	for _, cs := range d.CustomSections {
		if strings.TrimSpace(cs.Title) == "" && strings.TrimSpace(cs.Content) == "" {
			continue
		}
		if err := w.section(cs.Title); err != nil {
			return err
		}
		if err := w.paragraph(cs.Content, false, bodySize, w.style.Heading); err != nil {
			return err
		}
	}
	return nil
}

func (w *pageWriter) header(d resumes.Data, withContact bool) error {
	pageW := gopdf.PageSizeA4.W
	top := w.y
	if w.style.Banner {
		c := w.style.Accent
		w.pdf.SetFillColor(c.R, c.G, c.B)
		w.pdf.RectFromUpperLeftWithStyle(0, 0, pageW, pageMargin+photoSize+12, "F")
	}

	textX := w.x
	if d.ProfileImage != "" {
		img, err := decodeDataURI(d.ProfileImage)
		if err != nil {
			return err
		}
		holder, err := gopdf.ImageHolderByBytes(img)
		if err != nil {
			return fmt.Errorf("profile image: %w", err)
		}
		if err := w.pdf.ImageByHolder(holder, w.x, top, &gopdf.Rect{W: photoSize, H: photoSize}); err != nil {
			return fmt.Errorf("draw profile image: %w", err)
		}
		textX = w.x + photoSize + 16
	}

	saveX, saveWidth := w.x, w.width
	w.width -= textX - w.x
	w.x = textX

	nameColour := w.style.Heading
	if w.style.Banner {
		nameColour = templates.RGB{R: 255, G: 255, B: 255}
	}
	if err := w.paragraph(d.FullName, true, nameSize, nameColour); err != nil {
		return err
	}
	titleColour := w.style.Accent
	if w.style.Banner {
		titleColour = templates.RGB{R: 255, G: 255, B: 255}
	}
	if err := w.paragraph(d.Title, false, titleSize, titleColour); err != nil {
		return err
	}
	if withContact {
		contact := joinNonEmpty("  |  ", d.Email, d.Phone, d.Location)
		muted := w.style.Muted
		if w.style.Banner {
			muted = templates.RGB{R: 255, G: 255, B: 255}
		}
		if err := w.paragraph(contact, false, bodySize, muted); err != nil {
			return err
		}
	}

	w.x, w.width = saveX, saveWidth
	if d.ProfileImage != "" && w.y < top+photoSize {
		w.y = top + photoSize
	}
	if w.style.Banner && w.y < pageMargin+photoSize+12 {
		w.y = pageMargin + photoSize + 12
	}
	w.y += 8
	return nil
}

func (w *pageWriter) sidebar(d resumes.Data) error {
	c := w.style.Accent
	w.pdf.SetFillColor(lighten(c.R), lighten(c.G), lighten(c.B))
	w.pdf.RectFromUpperLeftWithStyle(0, 0, pageMargin+sidebarWidth, gopdf.PageSizeA4.H, "F")

	saveX, saveWidth := w.x, w.width
	w.x, w.width = pageMargin-16, sidebarWidth
	defer func() { w.x, w.width = saveX, saveWidth }()

	if d.ProfileImage != "" {
		img, err := decodeDataURI(d.ProfileImage)
		if err != nil {
			return err
		}
		holder, err := gopdf.ImageHolderByBytes(img)
		if err != nil {
			return fmt.Errorf("profile image: %w", err)
		}
		if err := w.pdf.ImageByHolder(holder, w.x, w.y, &gopdf.Rect{W: photoSize, H: photoSize}); err != nil {
			return fmt.Errorf("draw profile image: %w", err)
		}
		w.y += photoSize + 12
	}

	if err := w.section("Contact"); err != nil {
		return err
	}
	for _, line := range []string{d.Email, d.Phone, d.Location} {
		if err := w.paragraph(line, false, bodySize, w.style.Heading); err != nil {
			return err
		}
	}
	if len(d.Skills) > 0 {
		if err := w.section("Skills"); err != nil {
			return err
		}
		for _, skill := range d.Skills {
			if err := w.paragraph(skill, false, bodySize, w.style.Heading); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *pageWriter) section(title string) error {
	w.y += 10
	if err := w.ensure(headingSize * 2); err != nil {
		return err
	}
	if err := w.paragraph(strings.ToUpper(title), true, headingSize, w.style.Accent); err != nil {
		return err
	}
	a := w.style.Accent
	w.pdf.SetStrokeColor(a.R, a.G, a.B)
	w.pdf.SetLineWidth(0.8)
	w.pdf.Line(w.x, w.y, w.x+w.width, w.y)
	w.y += 6
	return nil
}

func (w *pageWriter) entry(heading, when, sub, body string) error {
	if err := w.ensure(bodySize * 3); err != nil {
		return err
	}
	if when != "" {
		if err := w.pdf.SetFont(fontFamily, "", bodySize); err != nil {
			return err
		}
		m := w.style.Muted
		w.pdf.SetTextColor(m.R, m.G, m.B)
		wWhen, err := w.pdf.MeasureTextWidth(when)
		if err != nil {
			return err
		}
		w.pdf.SetXY(w.x+w.width-wWhen, w.y)
		if err := w.pdf.Cell(nil, when); err != nil {
			return err
		}
	}
	if err := w.paragraph(heading, true, bodySize+1, w.style.Heading); err != nil {
		return err
	}
	if err := w.paragraph(sub, false, bodySize, w.style.Muted); err != nil {
		return err
	}
	if err := w.paragraph(body, false, bodySize, w.style.Heading); err != nil {
		return err
	}
	w.y += 4
	return nil
}

// paragraph writes word-wrapped text at the cursor and advances it.
func (w *pageWriter) paragraph(text string, bold bool, size float64, colour templates.RGB) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	style := ""
	if bold {
		style = "B"
	}
	if err := w.pdf.SetFont(fontFamily, style, size); err != nil {
		return err
	}
	w.pdf.SetTextColor(colour.R, colour.G, colour.B)

	lines, err := w.wrap(text)
	if err != nil {
		return err
	}
	lineH := size * lineGap
	for _, line := range lines {
		if err := w.ensure(lineH); err != nil {
			return err
		}
		w.pdf.SetXY(w.x, w.y)
		if err := w.pdf.Cell(nil, line); err != nil {
			return err
		}
		w.y += lineH
	}
	return nil
}

func (w *pageWriter) wrap(text string) ([]string, error) {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			width, err := w.pdf.MeasureTextWidth(candidate)
			if err != nil {
				return nil, err
			}
			if width > w.width {
				out = append(out, line)
				line = word
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out, nil
}

func (w *pageWriter) ensure(height float64) error {
	if w.y+height <= gopdf.PageSizeA4.H-pageMargin {
		return nil
	}
	w.pdf.AddPage()
	w.y = pageMargin
	return nil
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidProfileImage
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfileImage, err)
	}
	return raw, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}

func lighten(v uint8) uint8 {
	return uint8(int(v) + (255-int(v))*7/8)
}
