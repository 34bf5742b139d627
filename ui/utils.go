package ui

import (
	"fmt"
)

// calculateMaxLineNumberDigits calculates the maximum number of digits needed for line numbers
// across both panes
func calculateMaxLineNumberDigits(headLineCount, workdirLineCount int) int {
	maxLine := headLineCount
	if workdirLineCount > maxLine {
		maxLine = workdirLineCount
	}
	return len(fmt.Sprintf("%d", maxLine))
}
