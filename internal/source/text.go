package source

import (
	"bufio"
	"io"
	"strings"
)

// TextNormalizer handles plain text files. The text carries no structure,
// so it passes through and degrades downstream to a single Introduction
// section unless it happens to contain heading markers.
type TextNormalizer struct{}

func (n *TextNormalizer) Normalize(r io.Reader, filename string) (string, string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var b strings.Builder
	for scanner.Scan() {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}

	return titleFromFilename(filename), b.String(), nil
}
