// Package source normalizes uploaded files into the plain-text heading
// syntax the sectioning engine reads: "## " opens a major section, "### "
// a nested one, everything else is opaque content.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Normalizer converts one upload format into document text.
type Normalizer interface {
	Normalize(r io.Reader, filename string) (title, body string, err error)
}

// SupportedExtensions lists upload formats this service can normalize.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate normalizer for a filename.
func ForFile(filename string) (Normalizer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextNormalizer{}, nil
	case ".md", ".markdown":
		return &MarkdownNormalizer{}, nil
	case ".csv":
		return &CSVNormalizer{}, nil
	case ".html", ".htm":
		return &HTMLNormalizer{}, nil
	case ".pdf":
		return &PDFNormalizer{}, nil
	case ".docx":
		return &DOCXNormalizer{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// titleFromFilename strips the extension for a default document title.
func titleFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
