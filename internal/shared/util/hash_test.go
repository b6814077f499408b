package util

import "testing"

func TestOwnerDir(t *testing.T) {
	got := OwnerDir("guest:browser-1")
	if got != OwnerDir("guest:browser-1") {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if got == OwnerDir("guest:browser-2") {
		t.Fatalf("distinct owners share a directory")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestObjectKey(t *testing.T) {
	dir := OwnerDir("guest:a")
	if got := ObjectKey("exports", "guest:a", "r1.pdf"); got != "exports/"+dir+"/r1.pdf" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := ObjectKey("", "guest:a", "x.png"); got != dir+"/x.png" {
		t.Fatalf("unexpected key without namespace %q", got)
	}
}
