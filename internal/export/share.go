package export

import (
	"fmt"
	"net/url"
	"strings"

	"resume-builder/internal/resumes"
)

// Share is what the share and email buttons hand to the platform.
type Share struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	MailtoLink string `json:"mailtoLink"`
}

// ShareText is the one-line text used for native share and clipboard copy.
func ShareText(d resumes.Data) string {
	return fmt.Sprintf("Check out my resume! %s - %s", d.FullName, d.Title)
}

// ShareFor builds all share payloads for the resume content.
func ShareFor(d resumes.Data) Share {
	subject := d.FullName + "'s Resume"
	body := fmt.Sprintf("Hi,\n\nPlease find my resume details below:\n\n%s\n%s\n\nEmail: %s\nPhone: %s\nLocation: %s\n\nSummary:\n%s\n\nBest regards,\n%s",
		d.FullName, d.Title, d.Email, d.Phone, d.Location, d.Summary, d.FullName)
	return Share{
		Title:      subject,
		Text:       ShareText(d),
		Subject:    subject,
		Body:       body,
		MailtoLink: MailtoLink(subject, body),
	}
}

// MailtoLink builds a recipient-less mailto URL with percent-encoded subject
// and body, encoded the same way browsers encode URI components.
func MailtoLink(subject, body string) string {
	return "mailto:?subject=" + encodeURIComponent(subject) + "&body=" + encodeURIComponent(body)
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
