// Package checkout sequences the submission of an assembled cart: one
// order request for all one-time lines, then one subscription request per
// subscription line, strictly in cart order.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dosmond/terminal-coffee-range/cart"
	"github.com/dosmond/terminal-coffee-range/client"
)

// Submitter is the slice of the API a checkout needs.
type Submitter interface {
	CreateOrder(ctx context.Context, req client.OrderRequest) (string, error)
	CreateSubscription(ctx context.Context, req client.SubscriptionRequest) (string, error)
}

// Status is the lifecycle of one checkout attempt.
type Status uint8

const (
	StatusIdle Status = iota
	StatusProcessing
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusProcessing:
		return "processing"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrInFlight rejects a checkout started while one is already running.
// The UI disables the trigger during processing; this guard backs it up.
var ErrInFlight = errors.New("checkout already in flight")

// ErrEmptyCart rejects a checkout with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// Orchestrator drives one checkout attempt at a time. Requests are
// awaited sequentially, never concurrently, so "which requests have been
// submitted" stays unambiguous for failure reporting. Failed sequences
// are not rolled back: already-submitted requests stand.
type Orchestrator struct {
	api     Submitter
	status  Status
	message string
	log     zerolog.Logger
}

// NewOrchestrator wraps the given submitter.
func NewOrchestrator(api Submitter, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{api: api, log: log}
}

// Status returns the current status and its user-facing message.
func (o *Orchestrator) Status() (Status, string) {
	return o.status, o.message
}

// Reset returns a finished attempt to idle. The caller invokes this after
// the success/error banner has been shown; on failure the cart is kept so
// the user can re-initiate, which resubmits the full remaining cart.
func (o *Orchestrator) Reset() {
	if o.status == StatusProcessing {
		return
	}
	o.status = StatusIdle
	o.message = ""
}

// Checkout submits the cart against the chosen address and card. Both ids
// are preconditions collected by the address/card flow before this call.
func (o *Orchestrator) Checkout(ctx context.Context, lines []cart.Line, addressID, cardID string) error {
	if o.status == StatusProcessing {
		return ErrInFlight
	}
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	if addressID == "" || cardID == "" {
		return errors.New("address and card must be selected before checkout")
	}

	o.status = StatusProcessing
	o.message = "PROCESSING ORDER..."

	oneTime, subscriptions := partition(lines)
	o.log.Info().Int("one_time", len(oneTime)).Int("subscriptions", len(subscriptions)).Msg("checkout started")

	if len(oneTime) > 0 {
		variants := make(map[string]int, len(oneTime))
		for _, l := range oneTime {
			variants[l.VariantID] = l.Quantity
		}
		orderID, err := o.api.CreateOrder(ctx, client.OrderRequest{
			Variants:  variants,
			CardID:    cardID,
			AddressID: addressID,
		})
		if err != nil {
			return o.fail("order", err)
		}
		o.log.Info().Str("order_id", orderID).Msg("order placed")
	}

	for _, l := range subscriptions {
		subID, err := o.api.CreateSubscription(ctx, client.SubscriptionRequest{
			ProductVariantID: l.VariantID,
			Quantity:         1,
			CardID:           cardID,
			AddressID:        addressID,
			Schedule:         client.DefaultSchedule(),
		})
		if err != nil {
			// Earlier requests stand; there is no compensating call.
			return o.fail(fmt.Sprintf("subscription %s", l.VariantID), err)
		}
		o.log.Info().Str("subscription_id", subID).Str("variant_id", l.VariantID).Msg("subscription created")
	}

	o.status = StatusSuccess
	o.message = "ORDER PLACED. THANK YOU!"
	return nil
}

func (o *Orchestrator) fail(step string, err error) error {
	o.status = StatusError
	o.message = "CHECKOUT FAILED. TRY AGAIN."
	o.log.Error().Err(err).Str("step", step).Msg("checkout aborted")
	return fmt.Errorf("checkout %s: %w", step, err)
}

// partition splits lines into the one-time group and the subscription
// group, both preserving cart order.
func partition(lines []cart.Line) (oneTime, subscriptions []cart.Line) {
	for _, l := range lines {
		if l.Subscription {
			subscriptions = append(subscriptions, l)
		} else {
			oneTime = append(oneTime, l)
		}
	}
	return oneTime, subscriptions
}
