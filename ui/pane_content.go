package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
	"github.com/sukechannnn/gitsnap/git"
	"github.com/sukechannnn/gitsnap/util"
)

const (
	missingAtHeadLabel    = "(not in HEAD)"
	missingInWorkdirLabel = "(not in working tree)"
	emptyFileLabel        = "(empty file)"
)

// renderPaneLines converts one side of a snapshot into tview color-tagged
// lines with line numbers.
func renderPaneLines(filePath, content string, exists bool, missingLabel string, digits int) []string {
	if !exists {
		return []string{"[:" + util.MissingBg + "] " + tview.Escape(missingLabel) + " [-:-]"}
	}

	lines := util.SplitLines(content)
	if len(lines) == 0 {
		return []string{"[grey]" + emptyFileLabel + "[-]"}
	}

	tokens := util.TokenizeCode(filePath, lines)
	rendered := make([]string, len(lines))
	for i, line := range lines {
		body := tview.Escape(line)
		if tokens != nil {
			body = util.RenderHighlightedLine(tokens[i], "")
		}
		rendered[i] = fmt.Sprintf("[grey]%*d[-] %s", digits, i+1, body)
	}
	return rendered
}

// composePane joins rendered lines, marking the cursor row.
func composePane(lines []string, cursorY int) string {
	var sb strings.Builder
	for i, line := range lines {
		if i == cursorY {
			line = "[:" + util.CursorLineBg + "]" + util.ReplaceBackground(line, util.CursorLineBg) + "[-:-]"
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// statusText summarizes a snapshot for the status line.
func statusText(filePath string, snapshot *git.FileSnapshot) string {
	color := "white"
	switch snapshot.Status() {
	case git.StatusAdded:
		color = "green"
	case git.StatusDeleted:
		color = "red"
	case git.StatusModified:
		color = "yellow"
	case git.StatusUnchanged, git.StatusAbsent:
		color = "grey"
	}
	return fmt.Sprintf("[%s]%s[-] %s  [grey]'j/k' to scroll, 'Tab' to switch panes, 'q' to quit[-]",
		color, snapshot.Status(), tview.Escape(filePath))
}
