package util

import "strings"

// SplitLines splits a string by newline characters. A trailing newline does
// not produce an extra empty line; empty lines inside the text are kept.
func SplitLines(input string) []string {
	if input == "" {
		return []string{}
	}
	input = strings.TrimSuffix(input, "\n")
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
