package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that cannot be stored.
var ErrInvalidFileName = errors.New("invalid file name")

const maxFileName = 128

// SanitizeFileName turns an uploaded photo name into a single safe path
// segment. Separators become underscores, control characters are dropped and
// long names keep their tail so the extension survives.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	if r := []rune(s); len(r) > maxFileName {
		s = string(r[len(r)-maxFileName:])
	}
	return s, nil
}
