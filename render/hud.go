package render

import (
	"fmt"

	"github.com/dosmond/terminal-coffee-range/catalog"
)

const cartPanelWidth = 30

func (r *Renderer) drawBanner(f Frame, w int) {
	s := r.screen
	m := f.Session.Machine()

	var prompt string
	switch m.Mode() {
	case catalog.ModeProductSelect:
		prompt = "SHOOT A COFFEE TO ORDER"
	case catalog.ModeVariantSelect:
		prompt = "PICK A SIZE: " + m.SelectedProduct().Name
	case catalog.ModeQuantitySelect:
		prompt = fmt.Sprintf("HOW MANY? %s - %s", m.SelectedProduct().Name, m.SelectedVariant().Name)
	}
	drawTextCentered(s, 0, prompt, styleBanner)

	sound := "[m] sound off"
	if f.Muted {
		sound = "[m] sound on"
	}
	hints := "[c] checkout   [x] clear cart   " + sound + "   right-drag to pan   [q] quit"
	drawTextCentered(s, 1, hints, styleHint)

	if f.Session.UsingPlaceholders() {
		drawText(s, w-len("DEMO MENU"), 0, "DEMO MENU", styleWarn)
	}
}

func (r *Renderer) drawCartPanel(f Frame, w int) {
	s := r.screen
	lines := f.Session.Ledger().Lines()

	rows := len(lines)
	if rows == 0 {
		rows = 1
	}
	boxH := rows + 4 // borders, separator, total
	notice, hasNotice := f.Session.CartNotice(f.Now)
	if hasNotice {
		boxH++
	}
	x := w - cartPanelWidth - 1
	y := bannerRows
	drawBox(s, x, y, cartPanelWidth, boxH, "YOUR ORDER", styleBox)

	row := y + 1
	if len(lines) == 0 {
		drawText(s, x+2, row, "empty. shoot something", styleHint)
		row++
	}
	for _, l := range lines {
		name := fmt.Sprintf("%dx %s %s", l.Quantity, l.ProductName, l.VariantName)
		price := "$" + l.Subtotal().StringFixed(2)
		style := styleStatus
		if l.Subscription {
			name = fmt.Sprintf("SUB %s %s", l.ProductName, l.VariantName)
			price = "$" + l.UnitPrice.StringFixed(2) + "/2wk"
			style = styleSub
		}
		maxName := cartPanelWidth - 4 - len(price)
		if len(name) > maxName {
			name = name[:maxName]
		}
		drawText(s, x+2, row, name, style)
		drawText(s, x+cartPanelWidth-2-len(price), row, price, style)
		row++
	}

	drawText(s, x+2, row, string(repeatRune('─', cartPanelWidth-4)), styleHint)
	row++
	total := "$" + f.Session.Ledger().Total().StringFixed(2)
	drawText(s, x+2, row, "TOTAL", styleLabel)
	drawText(s, x+cartPanelWidth-2-len(total), row, total, styleScore)
	row++

	if hasNotice {
		// Trailing block cursor blinks at 2 Hz.
		if f.Now.UnixMilli()/500%2 == 0 {
			notice += "█"
		}
		if len(notice) > cartPanelWidth-4 {
			notice = notice[:cartPanelWidth-4]
		}
		drawText(s, x+2, row, notice, styleNotice)
	}
}

func (r *Renderer) drawStatusLine(f Frame, w, h int) {
	s := r.screen
	y := h - 1

	drawText(s, 1, y, fmt.Sprintf("SCORE %d", f.Session.Score()), styleScore)
	drawText(s, 14, y, fmt.Sprintf("SHOTS %d", f.Session.Shots()), styleStatus)

	if hit, ok := f.Session.LastHit(f.Now); ok {
		drawTextCentered(s, y, hit, styleNotice)
	}
}

func (r *Renderer) drawWelcome(f Frame, w, h int) {
	s := r.screen
	boxW, boxH := 52, 11
	x, y := (w-boxW)/2, (h-boxH)/2
	drawBox(s, x, y, boxW, boxH, "", styleBox)

	drawTextCentered(s, y+1, "TERMINAL COFFEE RANGE", styleBoxTitle)
	if f.Greeting != "" {
		drawTextCentered(s, y+2, "howdy, "+f.Greeting, styleNotice)
	}
	drawTextCentered(s, y+3, "aim with the mouse, left-click to shoot", styleStatus)
	drawTextCentered(s, y+4, "hit a coffee, then a size, then load up quantity", styleStatus)
	drawTextCentered(s, y+5, "subscription blends ship every 2 weeks", styleStatus)
	drawTextCentered(s, y+7, "[c] checks out your cart when you are done", styleHint)
	if f.Now.UnixMilli()/600%2 == 0 {
		drawTextCentered(s, y+9, "CLICK TO START", styleBanner)
	}
}

func repeatRune(r rune, n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return out
}
