package fragstore

import (
	"fmt"
	"strings"
)

// DefaultTag is applied when the caller supplies no usable classification.
const DefaultTag = "general"

// Validate checks a fragment before it is persisted and normalizes its tag.
// An empty body is always rejected: a failed extraction must never be saved
// as an empty fragment.
func Validate(f *Fragment, maxBodyBytes int) error {
	if f == nil {
		return fmt.Errorf("nil fragment")
	}
	if strings.TrimSpace(f.Body) == "" {
		return fmt.Errorf("empty fragment body")
	}
	if maxBodyBytes > 0 && len(f.Body) > maxBodyBytes {
		return fmt.Errorf("fragment body exceeds %d bytes", maxBodyBytes)
	}
	if f.Level != 2 && f.Level != 3 {
		return fmt.Errorf("invalid section level %d", f.Level)
	}
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("missing section title")
	}
	f.Tag = NormalizeTag(f.Tag)
	return nil
}

// NormalizeTag lowers the tag and collapses everything outside [a-z0-9] to
// single hyphens, falling back to DefaultTag when nothing survives.
func NormalizeTag(tag string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(tag)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	if b.Len() == 0 {
		return DefaultTag
	}
	return b.String()
}
