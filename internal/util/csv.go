package util

import (
	"encoding/csv"
	"html"
	"strings"
)

// SanitizeForCSV quotes a single CSV field, doubling embedded quotes.
func SanitizeForCSV(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// CSVToHTMLTable renders exported CSV content as a plain HTML table for
// in-page preview. Malformed trailing lines are skipped rather than
// failing the whole render.
func CSVToHTMLTable(csvText string) string {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1

	var sb strings.Builder
	sb.WriteString("<table class=\"table table-bordered table-striped table-condensed\">\n")
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		sb.WriteString("<tr>")
		for _, field := range record {
			sb.WriteString("<td>")
			sb.WriteString(html.EscapeString(field))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>")
	return sb.String()
}
