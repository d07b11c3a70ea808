package content

import "strings"

// SplitLines splits shell output into lines, accepting both \n and \r\n
// endings. A trailing line ending does not produce an empty final line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		} else if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 2
			i++
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// NonBlankLines returns the lines of text that contain something other than
// whitespace, each trimmed of surrounding whitespace.
func NonBlankLines(text string) []string {
	var lines []string
	for _, line := range SplitLines(text) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
