package export

import (
	"net/url"
	"strings"
	"testing"

	"resume-builder/internal/resumes"
)

func TestShareFor(t *testing.T) {
	d := resumes.SampleData()
	share := ShareFor(d)

	if share.Text != "Check out my resume! Alex Johnson - Full Stack Developer" {
		t.Fatalf("text = %q", share.Text)
	}
	if share.Title != "Alex Johnson's Resume" || share.Subject != share.Title {
		t.Fatalf("title = %q subject = %q", share.Title, share.Subject)
	}
	if !strings.HasPrefix(share.Body, "Hi,\n\nPlease find my resume details below:\n\nAlex Johnson\nFull Stack Developer\n\nEmail: alex@example.com\n") {
		t.Fatalf("body = %q", share.Body)
	}
	if !strings.HasSuffix(share.Body, "\n\nBest regards,\nAlex Johnson") {
		t.Fatalf("body = %q", share.Body)
	}
}

func TestMailtoLinkEncoding(t *testing.T) {
	link := MailtoLink("Alex Johnson's Resume", "a b\n(c)*!~")
	want := "mailto:?subject=Alex%20Johnson's%20Resume&body=a%20b%0A(c)*!~"
	if link != want {
		t.Fatalf("link = %q, want %q", link, want)
	}

	u, err := url.Parse(MailtoLink("R&D + QA", "x=y&z"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("subject") != "R&D + QA" || q.Get("body") != "x=y&z" {
		t.Fatalf("round trip failed: %v", q)
	}
}
