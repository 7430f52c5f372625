package ics

import "strings"

// Unfold joins folded continuation lines back into logical lines.
// A physical line starting with a single space or tab continues the previous one.
func Unfold(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	physical := strings.Split(text, "\n")
	lines := make([]string, 0, len(physical))

	for _, l := range physical {
		if len(l) > 0 && (l[0] == ' ' || l[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += l[1:]
			continue
		}
		lines = append(lines, l)
	}

	return lines
}
