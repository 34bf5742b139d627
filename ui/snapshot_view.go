package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sukechannnn/gitsnap/git"
	"github.com/sukechannnn/gitsnap/util"
)

// SnapshotView shows the HEAD and working tree sides of one file next to
// each other. Both panes scroll together.
type SnapshotView struct {
	filePath    string
	headView    *tview.TextView
	workdirView *tview.TextView
	statusView  *tview.TextView
	layout      *tview.Flex

	headLines    []string
	workdirLines []string
	cursorY      int
	offsetY      int
	focus        int
}

// NewSnapshotView builds the layout. onExit is called on 'q' or Esc.
func NewSnapshotView(app *tview.Application, filePath string, onExit func()) *SnapshotView {
	v := &SnapshotView{filePath: filePath}

	newPane := func(title string) *tview.TextView {
		pane := tview.NewTextView().
			SetDynamicColors(true).
			SetScrollable(true).
			SetWrap(false)
		pane.SetBorder(true).
			SetTitle(title).
			SetTitleAlign(tview.AlignLeft)
		pane.SetBackgroundColor(util.BackgroundColor.ToTcellColor())
		return pane
	}
	v.headView = newPane(" HEAD ")
	v.workdirView = newPane(" Working tree ")

	v.statusView = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	panes := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(v.headView, 0, HeadPaneFlexRatio, true).
		AddItem(CreateVerticalBorder(), 1, 0, false).
		AddItem(v.workdirView, 0, WorkdirPaneFlexRatio, false)

	v.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(panes, 0, 1, true).
		AddItem(v.statusView, StatusLineHeight, 0, false)

	v.layout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			onExit()
			return nil
		case tcell.KeyTab:
			v.focus = (v.focus + 1) % 2
			v.updateFocus(app)
			return nil
		case tcell.KeyDown:
			v.moveCursor(1)
			return nil
		case tcell.KeyUp:
			v.moveCursor(-1)
			return nil
		case tcell.KeyCtrlD:
			v.moveCursor(v.pageHeight() / 2)
			return nil
		case tcell.KeyCtrlU:
			v.moveCursor(-v.pageHeight() / 2)
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				onExit()
				return nil
			case 'j':
				v.moveCursor(1)
				return nil
			case 'k':
				v.moveCursor(-1)
				return nil
			case 'g':
				v.moveCursor(-v.lineCount())
				return nil
			case 'G':
				v.moveCursor(v.lineCount())
				return nil
			}
		}
		return event
	})

	v.updateFocus(app)
	return v
}

func (v *SnapshotView) Root() tview.Primitive {
	return v.layout
}

// SetSnapshot replaces the contents of both panes. The cursor is kept where
// it was when the new content is long enough.
func (v *SnapshotView) SetSnapshot(snapshot *git.FileSnapshot) {
	headCount := len(util.SplitLines(snapshot.Original))
	workdirCount := len(util.SplitLines(snapshot.Current))
	digits := calculateMaxLineNumberDigits(headCount, workdirCount)

	v.headLines = renderPaneLines(v.filePath, snapshot.Original, snapshot.ExistsAtHead, missingAtHeadLabel, digits)
	v.workdirLines = renderPaneLines(v.filePath, snapshot.Current, snapshot.ExistsInWorkdir, missingInWorkdirLabel, digits)
	v.statusView.SetText(statusText(v.filePath, snapshot))
	v.moveCursor(0)
}

// SetError shows err in the status line and leaves the panes as they are.
func (v *SnapshotView) SetError(err error) {
	v.statusView.SetText(fmt.Sprintf("[red]%s[-]", tview.Escape(err.Error())))
}

func (v *SnapshotView) lineCount() int {
	if len(v.headLines) > len(v.workdirLines) {
		return len(v.headLines)
	}
	return len(v.workdirLines)
}

func (v *SnapshotView) pageHeight() int {
	_, _, _, height := v.headView.GetInnerRect()
	if height < 2 {
		return 2
	}
	return height
}

func (v *SnapshotView) moveCursor(delta int) {
	v.cursorY += delta
	if last := v.lineCount() - 1; v.cursorY > last {
		v.cursorY = last
	}
	if v.cursorY < 0 {
		v.cursorY = 0
	}

	height := v.pageHeight()
	if v.cursorY < v.offsetY {
		v.offsetY = v.cursorY
	} else if v.cursorY >= v.offsetY+height {
		v.offsetY = v.cursorY - height + 1
	}

	v.headView.SetText(composePane(v.headLines, v.cursorY))
	v.workdirView.SetText(composePane(v.workdirLines, v.cursorY))
	v.headView.ScrollTo(v.offsetY, 0)
	v.workdirView.ScrollTo(v.offsetY, 0)
}

func (v *SnapshotView) updateFocus(app *tview.Application) {
	panes := []*tview.TextView{v.headView, v.workdirView}
	for i, pane := range panes {
		if i == v.focus {
			pane.SetBorderColor(util.FocusBorderColor.ToTcellColor())
		} else {
			pane.SetBorderColor(util.BlurBorderColor.ToTcellColor())
		}
	}
	app.SetFocus(panes[v.focus])
}
