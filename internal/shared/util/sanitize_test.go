package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	long := strings.Repeat("a", 200) + ".jpeg"
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "photo.jpg", want: "photo.jpg"},
		{name: "slash", in: " dir/photo.png ", want: "dir_photo.png"},
		{name: "backslash", in: `win\path.webp`, want: "win_path.webp"},
		{name: "control", in: "me\x00\n.gif", want: "me.gif"},
		{name: "long keeps extension", in: long, want: long[len(long)-128:]},
		{name: "traversal", in: "../secret", wantErr: true},
		{name: "blank", in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFileName) {
					t.Fatalf("SanitizeFileName(%q) expected ErrInvalidFileName, got %v", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}
