// Package render draws the range onto a tcell screen: the mug lineup from
// the scene graph, the cart panel, the HUD, and the checkout overlay. It
// holds only presentation state (hit flashes); everything else is read
// from the session each frame.
package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dosmond/terminal-coffee-range/checkout"
	"github.com/dosmond/terminal-coffee-range/events"
	"github.com/dosmond/terminal-coffee-range/game"
	"github.com/dosmond/terminal-coffee-range/scene"
)

// flashDuration is how long a struck mug stays lit.
const flashDuration = 350 * time.Millisecond

// bannerRows is the height of the header above the range area; the bottom
// row below it carries the status line.
const bannerRows = 2

// RangeArea returns the world viewport for a screen of the given size.
// The session lays mugs out inside this rect.
func RangeArea(w, h int) scene.Rect {
	return scene.Rect{X: 0, Y: bannerRows, W: w, H: h - bannerRows - 1}
}

// CheckoutView is the overlay state for one frame. A nil view means the
// overlay is closed.
type CheckoutView struct {
	Form       *checkout.Form
	Status     checkout.Status
	Message    string
	CollectURL string
}

// Frame is everything the renderer needs for one draw call.
type Frame struct {
	Session *game.Session
	Now     time.Time
	MouseX  int
	MouseY  int
	Started bool
	Muted   bool
	// Greeting is the profile name shown on the welcome screen, empty
	// until the profile fetch lands.
	Greeting string

	Checkout *CheckoutView
}

// Renderer draws frames onto one tcell screen.
type Renderer struct {
	screen  tcell.Screen
	flashes map[string]time.Time
}

// New wraps an initialized screen.
func New(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:  screen,
		flashes: make(map[string]time.Time),
	}
}

// HandleEvent consumes gameplay events the renderer animates. Other event
// types are ignored; the audio engine has its own consumer.
func (r *Renderer) HandleEvent(ev events.Event, now time.Time) {
	switch ev.Type {
	case events.TargetHit, events.TargetFlash:
		if ev.TargetID != "" {
			r.flashes[ev.TargetID] = now.Add(flashDuration)
		}
	}
}

func (r *Renderer) flashing(targetID string, now time.Time) bool {
	until, ok := r.flashes[targetID]
	if !ok {
		return false
	}
	if now.After(until) {
		delete(r.flashes, targetID)
		return false
	}
	return true
}

// Draw renders one complete frame and flips the screen.
func (r *Renderer) Draw(f Frame) {
	s := r.screen
	s.Clear()

	w, h := s.Size()
	if w < 20 || h < 10 {
		drawText(s, 0, 0, "terminal too small", styleWarn)
		s.Show()
		return
	}

	r.drawRange(f)
	r.drawBanner(f, w)
	r.drawCartPanel(f, w)
	r.drawStatusLine(f, w, h)

	switch {
	case !f.Started:
		r.drawWelcome(f, w, h)
	case f.Checkout != nil:
		r.drawCheckout(f, w, h)
	default:
		r.drawCrosshair(f, w, h)
	}

	s.Show()
}
