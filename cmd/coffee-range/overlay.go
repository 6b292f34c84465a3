package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dosmond/terminal-coffee-range/checkout"
	"github.com/dosmond/terminal-coffee-range/client"
)

// successLinger is how long the order confirmation stays up before the
// overlay closes and the cart clears.
const successLinger = 2500 * time.Millisecond

// overlayState is the checkout overlay while it is open. status mirrors
// the orchestrator but is only ever written on the run loop goroutine,
// so drawing never races a checkout in flight.
type overlayState struct {
	form       *checkout.Form
	status     checkout.Status
	message    string
	collectURL string

	addressID string
	cardID    string
	closeAt   time.Time
}

// openCheckout freezes the range and fetches saved addresses and cards
// before showing the form.
func (a *app) openCheckout() {
	if a.overlay != nil || a.session.Ledger().Len() == 0 {
		return
	}
	a.session.SetInputEnabled(false)
	o := &overlayState{}
	a.overlay = o
	a.fetchCheckoutData(o)
}

func (a *app) closeOverlay() {
	a.orch.Reset()
	a.overlay = nil
	a.session.SetInputEnabled(true)
}

func (a *app) fetchCheckoutData(o *overlayState) {
	go func() {
		ctx, cancel := a.apiContext()
		defer cancel()

		addresses, err := a.api.Addresses(ctx)
		if err != nil {
			a.post(func() { o.fail("COULD NOT REACH THE STORE.") })
			return
		}
		cards, err := a.api.Cards(ctx)
		if err != nil {
			a.post(func() { o.fail("COULD NOT REACH THE STORE.") })
			return
		}
		a.post(func() {
			if a.overlay != o {
				return
			}
			o.form = checkout.NewForm(addresses, cards)
		})
	}()
}

func (o *overlayState) fail(msg string) {
	o.status = checkout.StatusError
	o.message = msg
}

func (a *app) handleOverlayKey(ev *tcell.EventKey) {
	o := a.overlay

	switch o.status {
	case checkout.StatusProcessing, checkout.StatusSuccess:
		return
	case checkout.StatusError:
		switch ev.Key() {
		case tcell.KeyEnter:
			o.status = checkout.StatusIdle
			o.message = ""
			if o.form == nil {
				a.fetchCheckoutData(o)
			} else {
				a.startCheckout(o)
			}
		case tcell.KeyEscape:
			a.closeOverlay()
		}
		return
	}

	if o.form == nil {
		if ev.Key() == tcell.KeyEscape {
			a.closeOverlay()
		}
		return
	}

	k, r := mapKey(ev)
	result := o.form.HandleKey(k, r)
	a.applyFormEvent(o, result)
}

func (a *app) applyFormEvent(o *overlayState, ev checkout.Event) {
	switch ev.Action {
	case checkout.ActionCancel:
		a.closeOverlay()

	case checkout.ActionComplete:
		o.addressID, o.cardID = ev.AddressID, ev.CardID
		a.startCheckout(o)

	case checkout.ActionSubmitAddress:
		a.submitAddress(o, ev.Address)

	case checkout.ActionCollectCard:
		a.collectCard(o)

	case checkout.ActionRefreshCards:
		a.refreshCards(o)
	}
}

// startCheckout runs the orchestrator off the loop goroutine. The
// overlay shows its own processing state; orchestrator fields are not
// touched again until the goroutine reports back.
func (a *app) startCheckout(o *overlayState) {
	o.status = checkout.StatusProcessing
	lines := a.session.Ledger().Lines()

	go func() {
		// Checkout is several sequential requests; give it more room
		// than a single call.
		ctx, cancel := context.WithTimeout(context.Background(), 4*a.cfg.API.Timeout)
		defer cancel()

		err := a.orch.Checkout(ctx, lines, o.addressID, o.cardID)
		a.post(func() {
			if a.overlay != o {
				return
			}
			o.status, o.message = a.orch.Status()
			if err == nil {
				o.closeAt = time.Now().Add(successLinger)
			}
		})
	}()
}

func (a *app) submitAddress(o *overlayState, in client.AddressInput) {
	go func() {
		ctx, cancel := a.apiContext()
		defer cancel()

		id, err := a.api.CreateAddress(ctx, in)
		a.post(func() {
			if a.overlay != o || o.form == nil {
				return
			}
			if err != nil {
				a.log.Error().Err(err).Msg("create address failed")
				o.fail("COULD NOT SAVE THE ADDRESS.")
				return
			}
			a.applyFormEvent(o, o.form.AddressCreated(id))
		})
	}()
}

func (a *app) collectCard(o *overlayState) {
	go func() {
		ctx, cancel := a.apiContext()
		defer cancel()

		url, err := a.api.CollectCard(ctx)
		a.post(func() {
			if a.overlay != o {
				return
			}
			if err != nil {
				a.log.Error().Err(err).Msg("card collection failed")
				o.fail("COULD NOT START CARD COLLECTION.")
				return
			}
			o.collectURL = url
		})
	}()
}

func (a *app) refreshCards(o *overlayState) {
	go func() {
		ctx, cancel := a.apiContext()
		defer cancel()

		cards, err := a.api.Cards(ctx)
		a.post(func() {
			if a.overlay != o || o.form == nil {
				return
			}
			if err != nil {
				a.log.Error().Err(err).Msg("card refresh failed")
				o.fail("COULD NOT REFRESH CARDS.")
				return
			}
			o.collectURL = ""
			o.form.CardsRefreshed(cards)
		})
	}()
}

func (a *app) apiContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.API.Timeout)
}

func mapKey(ev *tcell.EventKey) (checkout.Key, rune) {
	switch ev.Key() {
	case tcell.KeyUp:
		return checkout.KeyUp, 0
	case tcell.KeyDown:
		return checkout.KeyDown, 0
	case tcell.KeyTab:
		return checkout.KeyTab, 0
	case tcell.KeyEnter:
		return checkout.KeyEnter, 0
	case tcell.KeyEscape:
		return checkout.KeyEsc, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return checkout.KeyBackspace, 0
	default:
		return checkout.KeyRune, ev.Rune()
	}
}
