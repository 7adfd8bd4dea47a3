package dataset

import (
	"errors"
	"strings"
)

// Row is a single parsed record keyed by column header.
type Row map[string]string

// Table holds parsed tabular data plus the header order.
type Table struct {
	Headers []string
	Rows    []Row
}

var errEmptyCSV = errors.New("dataset: csv input is empty")

// ParseCSV converts raw CSV text into a Table. The parser splits on
// newlines and raw commas and strips double quotes; quoted fields that
// embed commas or newlines are not supported. Downstream profiling
// depends on this splitting, so keep it in sync with any importer UI.
func ParseCSV(text string) (Table, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return Table{}, errEmptyCSV
	}

	headers := splitFields(lines[0])
	table := Table{Headers: headers}

	for _, line := range lines[1:] {
		fields := splitFields(line)
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(fields) {
				row[header] = fields[i]
			} else {
				row[header] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, field := range fields {
		field = strings.TrimSpace(field)
		field = strings.ReplaceAll(field, `"`, "")
		fields[i] = field
	}
	return fields
}
