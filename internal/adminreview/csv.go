package adminreview

import "strings"

// CSV renders a header row plus one row per record. Escaping is minimal on
// purpose, matching what the review UI has always produced: embedded
// double quotes are doubled, but fields containing commas are not quoted.
// Switching to RFC 4180 quoting would change the exports admins already
// consume, so the legacy shape is kept.
func CSV(header []string, rows [][]string) string {
	var b strings.Builder

	writeRow(&b, header)
	for _, row := range rows {
		writeRow(&b, row)
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
	}
	b.WriteByte('\n')
}
