package render

import (
	"github.com/gdamore/tcell/v2"
)

// Palette of the range. Kept small so the scene reads at a glance on
// 16-color terminals too; tcell downsamples the RGB values there.
var (
	styleDefault = tcell.StyleDefault.
			Background(tcell.ColorReset).
			Foreground(tcell.ColorReset)

	styleBanner   = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHint     = styleDefault.Foreground(tcell.ColorGray)
	styleStatus   = styleDefault.Foreground(tcell.ColorWhite)
	styleScore    = styleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleNotice   = styleDefault.Foreground(tcell.ColorAqua)
	styleWarn     = styleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleGround   = styleDefault.Foreground(tcell.ColorDarkGreen)
	styleCloud    = styleDefault.Foreground(tcell.ColorSilver)
	styleStand    = styleDefault.Foreground(tcell.ColorGray)
	styleLabel    = styleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePrice    = styleDefault.Foreground(tcell.ColorGreen)
	styleCross    = styleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFlash    = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleBox      = styleDefault.Foreground(tcell.ColorWhite)
	styleBoxTitle = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSelected = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleSub      = styleDefault.Foreground(tcell.ColorFuchsia)

	styleMugProduct = styleDefault.Foreground(tcell.ColorSaddleBrown)
	styleMugVariant = styleDefault.Foreground(tcell.ColorTeal)
	styleMugBack    = styleDefault.Foreground(tcell.ColorYellow)
	styleMugAdd     = styleDefault.Foreground(tcell.ColorGreen)
	styleMugRemove  = styleDefault.Foreground(tcell.ColorRed)
)

// drawText writes s starting at (x, y), clipped to the screen.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	w, h := s.Size()
	if y < 0 || y >= h {
		return
	}
	for i, r := range []rune(text) {
		cx := x + i
		if cx < 0 {
			continue
		}
		if cx >= w {
			break
		}
		s.SetContent(cx, y, r, nil, style)
	}
}

// drawTextCentered centers s horizontally on row y.
func drawTextCentered(s tcell.Screen, y int, text string, style tcell.Style) {
	w, _ := s.Size()
	drawText(s, (w-len([]rune(text)))/2, y, text, style)
}

// fillRect paints a rectangle with a single rune.
func fillRect(s tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			s.SetContent(x+dx, y+dy, r, nil, style)
		}
	}
}

// drawBox draws a bordered, cleared box with an optional title in the top
// border.
func drawBox(s tcell.Screen, x, y, w, h int, title string, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	fillRect(s, x+1, y+1, w-2, h-2, ' ', style)
	for dx := 1; dx < w-1; dx++ {
		s.SetContent(x+dx, y, '─', nil, style)
		s.SetContent(x+dx, y+h-1, '─', nil, style)
	}
	for dy := 1; dy < h-1; dy++ {
		s.SetContent(x, y+dy, '│', nil, style)
		s.SetContent(x+w-1, y+dy, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)
	if title != "" {
		drawText(s, x+2, y, " "+title+" ", styleBoxTitle)
	}
}
