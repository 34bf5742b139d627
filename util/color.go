package util

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

type ColorCode string

const (
	BackgroundColor  = ColorCode("#272A32")
	FocusBorderColor = ColorCode("#8CAAEE")
	BlurBorderColor  = ColorCode("#383E50")
)

func (c ColorCode) hex() string {
	return string(c)[1:]
}

func (c ColorCode) ToTcellColor() tcell.Color {
	hexValue, _ := strconv.ParseInt(c.hex(), 16, 32)
	return tcell.NewHexColor(int32(hexValue))
}
