package program

import "strings"

// detectDelimiter counts delimiters on the first non-blank line. Semicolon wins ties.
func detectDelimiter(lines []string) rune {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Count(line, ";") >= strings.Count(line, ",") {
			return ';'
		}
		return ','
	}
	return ';'
}

// splitRows splits text into trimmed cells. Quotes group delimiters into a
// cell and a doubled quote inside quotes is a literal quote. Quoted cells do
// not span lines.
func splitRows(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	delim := detectDelimiter(lines)

	var rows [][]string
	for _, line := range lines {
		if line == "" {
			continue
		}
		rows = append(rows, splitLine(line, delim))
	}
	return rows
}

func splitLine(line string, delim rune) []string {
	var (
		cells    []string
		current  strings.Builder
		inQuotes bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == delim && !inQuotes:
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	return append(cells, strings.TrimSpace(current.String()))
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
