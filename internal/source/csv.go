package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVNormalizer handles CSV uploads. Row batches become major sections with
// one list item per row, so large tables stay navigable.
type CSVNormalizer struct{}

func (n *CSVNormalizer) Normalize(r io.Reader, filename string) (string, string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", "", fmt.Errorf("parse csv: %w", err)
	}

	title := titleFromFilename(filename)
	if len(records) == 0 {
		return title, "", nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	const batchSize = 20
	var b strings.Builder
	for i := 0; i < len(dataRows); i += batchSize {
		end := i + batchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		// 1-indexed source rows, skipping the header.
		fmt.Fprintf(&b, "## Rows %d-%d\n", i+2, end+1)
		for _, row := range dataRows[i:end] {
			var cells []string
			for j, cell := range row {
				if j < len(headers) {
					cells = append(cells, headers[j]+": "+cell)
				} else {
					cells = append(cells, cell)
				}
			}
			b.WriteString("- " + strings.Join(cells, ", ") + "\n")
		}
	}

	return title, strings.TrimSuffix(b.String(), "\n"), nil
}
