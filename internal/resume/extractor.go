// Package resume turns uploaded resume files into plain text for prompt
// personalization. Binary document formats are delegated to an Extractor
// implementation; the built-in one handles plain text only, and anything
// else degrades the session to generic questions.
package resume

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxUploadBytes is the largest resume accepted at the HTTP boundary.
const MaxUploadBytes = 5 << 20

// ErrUnsupportedFormat means the extractor cannot read the file's format.
// Callers fall back to non-personalized questions.
var ErrUnsupportedFormat = errors.New("unsupported resume format")

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// AllowedExtension reports whether the filename carries an accepted resume
// extension.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Extractor produces plain text from an uploaded resume file.
type Extractor interface {
	ExtractText(filename string, r io.Reader) (string, error)
}

// PlainTextExtractor reads .txt resumes directly. Other accepted formats
// need a richer Extractor; this one returns ErrUnsupportedFormat for them.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) ExtractText(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".txt" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid text", ErrUnsupportedFormat)
	}
	return strings.TrimSpace(string(data)), nil
}
