package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned for names that are empty or try to traverse.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes name safe to use as a download file name: path
// separators become underscores, quotes and control characters are dropped.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case r == '"' || r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}

// AttachmentDisposition builds a Content-Disposition value that asks the
// browser to download the response as name.
func AttachmentDisposition(name string) (string, error) {
	safe, err := SanitizeFileName(name)
	if err != nil {
		return "", err
	}
	return `attachment; filename="` + safe + `"`, nil
}
