package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that are empty or try to escape
// their folder.
var ErrInvalidFileName = errors.New("invalid file name")

const maxFileNameRunes = 120

// DocumentExtensions lists the attachment types the text extractor reads.
var DocumentExtensions = []string{".pdf", ".docx", ".txt"}

// SanitizeFileName flattens an uploaded file name into a single key segment.
// Separators become underscores, control characters are dropped and long
// names are cut while keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" || strings.Trim(cleaned, "_") == "" {
		return "", ErrInvalidFileName
	}

	runes := []rune(cleaned)
	if len(runes) <= maxFileNameRunes {
		return cleaned, nil
	}
	ext := []rune(filepath.Ext(cleaned))
	if len(ext) >= maxFileNameRunes {
		ext = nil
	}
	return string(runes[:maxFileNameRunes-len(ext)]) + string(ext), nil
}

// IsDocument reports whether name ends in one of DocumentExtensions.
func IsDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	for _, allowed := range DocumentExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
