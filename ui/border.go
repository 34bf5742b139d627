package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sukechannnn/gitsnap/util"
)

// CreateVerticalBorder creates a vertical border box
func CreateVerticalBorder() *tview.Box {
	background := util.BackgroundColor.ToTcellColor()
	verticalBorder := tview.NewBox().
		SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
			// 縦線を描画
			style := tcell.StyleDefault.
				Foreground(util.BlurBorderColor.ToTcellColor()).
				Background(background)
			for i := y; i < y+height; i++ {
				screen.SetContent(x, i, '│', nil, style)
			}
			return x, y, width, height
		})
	verticalBorder.SetBackgroundColor(background)
	return verticalBorder
}
