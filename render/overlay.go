package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dosmond/terminal-coffee-range/checkout"
	"github.com/dosmond/terminal-coffee-range/client"
)

const overlayWidth = 56

// drawCheckout paints the checkout overlay over the range. The form owns
// the flow state; this only renders it.
func (r *Renderer) drawCheckout(f Frame, w, h int) {
	v := f.Checkout
	s := r.screen

	boxH := 16
	x, y := (w-overlayWidth)/2, (h-boxH)/2
	drawBox(s, x, y, overlayWidth, boxH, "CHECKOUT", styleBox)

	switch v.Status {
	case checkout.StatusProcessing:
		drawTextCentered(s, y+boxH/2, "PLACING ORDER...", styleBanner)
		return
	case checkout.StatusSuccess:
		drawTextCentered(s, y+boxH/2-1, v.Message, styleScore)
		drawTextCentered(s, y+boxH/2+1, "racking a fresh cart...", styleHint)
		return
	case checkout.StatusError:
		drawTextCentered(s, y+boxH/2-1, v.Message, styleWarn)
		drawTextCentered(s, y+boxH/2+1, "[enter] try again   [esc] back to the range", styleHint)
		return
	}

	if v.Form == nil {
		drawTextCentered(s, y+boxH/2, "CONTACTING THE STORE...", styleHint)
		return
	}

	switch v.Form.Step() {
	case checkout.StepSelection:
		r.drawSelectionStep(v, x, y)
	case checkout.StepAddress:
		r.drawAddressStep(v, x, y)
	case checkout.StepCard:
		r.drawCardStep(v, x, y)
	}
}

func (r *Renderer) drawSelectionStep(v *CheckoutView, x, y int) {
	s := r.screen
	form := v.Form

	addresses, addrIdx := form.Addresses()
	cards, cardIdx := form.Cards()

	// Pickers show a window of four rows around the selection.
	addresses, addrIdx = window(addresses, addrIdx)
	cards, cardIdx = window(cards, cardIdx)

	drawText(s, x+2, y+1, "SHIP TO", pickerTitle(!form.FocusCards()))
	row := y + 2
	for i, a := range addresses {
		style := styleStatus
		if i == addrIdx && !form.FocusCards() {
			style = styleSelected
		}
		drawText(s, x+2, row, listLine(addressLine(a)), style)
		row++
	}

	row++
	drawText(s, x+2, row, "PAY WITH", pickerTitle(form.FocusCards()))
	row++
	for i, c := range cards {
		style := styleStatus
		if i == cardIdx && form.FocusCards() {
			style = styleSelected
		}
		drawText(s, x+2, row, listLine(fmt.Sprintf("%s ···· %s  %02d/%d", c.Brand, c.Last4, c.Expiration.Month, c.Expiration.Year)), style)
		row++
	}

	drawText(s, x+2, y+13, "[tab] switch  [enter] place order", styleHint)
	drawText(s, x+2, y+14, "[a] new address  [n] new card  [esc] cancel", styleHint)
}

func (r *Renderer) drawAddressStep(v *CheckoutView, x, y int) {
	s := r.screen
	input, fieldIdx := v.Form.AddressInput()
	values := []string{
		input.Name, input.Street1, input.Street2, input.City,
		input.Province, input.Country, input.Zip, input.Phone,
	}

	drawText(s, x+2, y+1, "SHIPPING ADDRESS", styleBoxTitle)
	for i, label := range v.Form.FieldLabels() {
		row := y + 2 + i
		style := styleStatus
		if i == fieldIdx {
			style = styleSelected
		}
		drawText(s, x+2, row, fmt.Sprintf("%-19s", label), styleHint)
		value := values[i]
		if i == fieldIdx {
			value += "_"
		}
		drawText(s, x+22, row, value, style)
	}

	if msg := v.Form.ValidationMessage(); msg != "" {
		drawText(s, x+2, y+11, msg, styleWarn)
	}
	drawText(s, x+2, y+13, "[tab] next field  [enter] save", styleHint)
	drawText(s, x+2, y+14, "[esc] back", styleHint)
}

func (r *Renderer) drawCardStep(v *CheckoutView, x, y int) {
	s := r.screen
	drawText(s, x+2, y+1, "ADD A CARD", styleBoxTitle)
	drawText(s, x+2, y+3, "card entry happens in your browser.", styleStatus)
	if v.CollectURL != "" {
		drawText(s, x+2, y+5, "open this link:", styleStatus)
		drawText(s, x+2, y+6, v.CollectURL, styleNotice)
		drawText(s, x+2, y+8, "press [d] here when you are done.", styleStatus)
	} else {
		drawText(s, x+2, y+5, "[enter] get a card collection link", styleStatus)
	}
	drawText(s, x+2, y+13, "[d] done, refresh cards", styleHint)
	drawText(s, x+2, y+14, "[esc] back", styleHint)
}

func pickerTitle(focused bool) tcell.Style {
	if focused {
		return styleBoxTitle
	}
	return styleHint
}

func addressLine(a client.Address) string {
	return fmt.Sprintf("%s, %s, %s %s", a.Name, a.Street1, a.City, a.Zip)
}

// window slices a picker list to at most four entries containing the
// selection, remapping the index into the slice.
func window[T any](items []T, idx int) ([]T, int) {
	const rows = 4
	if len(items) <= rows {
		return items, idx
	}
	start := idx - rows + 1
	if start < 0 {
		start = 0
	}
	return items[start : start+rows], idx - start
}

// listLine truncates a picker row to the overlay interior.
func listLine(s string) string {
	if len(s) > overlayWidth-4 {
		return s[:overlayWidth-4]
	}
	return s
}
