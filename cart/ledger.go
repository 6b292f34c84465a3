// Package cart holds the in-memory order being assembled by the player.
package cart

import (
	"github.com/shopspring/decimal"
)

// Line is one row of the order. One-time lines carry a mutable quantity;
// subscription lines are fixed at quantity 1. A one-time line and a
// subscription line for the same variant coexist and are never merged.
type Line struct {
	VariantID    string
	ProductName  string
	VariantName  string
	UnitPrice    decimal.Decimal
	Quantity     int
	Subscription bool
}

// Subtotal is UnitPrice * Quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ItemRef identifies a variant plus the display data a new line needs.
type ItemRef struct {
	VariantID   string
	ProductName string
	VariantName string
	UnitPrice   decimal.Decimal
}

// ChangeKind describes what AddOrIncrement did to the ledger.
type ChangeKind uint8

const (
	ChangeNone ChangeKind = iota
	ChangeAdded
	ChangeRemoved
	ChangeDeleted
)

// Change reports the outcome of a quantity mutation. Quantity is the line's
// quantity after the change (zero when the line was deleted or untouched).
type Change struct {
	Kind     ChangeKind
	Quantity int
}

// Ledger is the cart. Owned by the game session; all mutation happens on
// the single UI thread, so there is no internal locking.
type Ledger struct {
	lines []Line
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// AddOrIncrement adjusts the one-time line for ref's variant by amount
// (negative for decrement). A line whose quantity reaches zero or below is
// deleted. A decrement against a missing line is a no-op, never an error.
func (g *Ledger) AddOrIncrement(ref ItemRef, amount int) Change {
	idx := g.find(ref.VariantID, false)
	if idx < 0 {
		if amount <= 0 {
			return Change{Kind: ChangeNone}
		}
		g.lines = append(g.lines, Line{
			VariantID:   ref.VariantID,
			ProductName: ref.ProductName,
			VariantName: ref.VariantName,
			UnitPrice:   ref.UnitPrice,
			Quantity:    amount,
		})
		return Change{Kind: ChangeAdded, Quantity: amount}
	}

	g.lines[idx].Quantity += amount
	if q := g.lines[idx].Quantity; q > 0 {
		kind := ChangeAdded
		if amount < 0 {
			kind = ChangeRemoved
		}
		return Change{Kind: kind, Quantity: q}
	}
	g.lines = append(g.lines[:idx], g.lines[idx+1:]...)
	return Change{Kind: ChangeDeleted}
}

// AddSubscription inserts the subscription line for ref's variant.
// Returns false when the variant is already subscribed; the existing line
// is left untouched (subscription quantity is always exactly 1).
func (g *Ledger) AddSubscription(ref ItemRef) bool {
	if g.find(ref.VariantID, true) >= 0 {
		return false
	}
	g.lines = append(g.lines, Line{
		VariantID:    ref.VariantID,
		ProductName:  ref.ProductName,
		VariantName:  ref.VariantName,
		UnitPrice:    ref.UnitPrice,
		Quantity:     1,
		Subscription: true,
	})
	return true
}

// Clear removes every line.
func (g *Ledger) Clear() {
	g.lines = g.lines[:0]
}

// Lines returns a snapshot copy in insertion order.
func (g *Ledger) Lines() []Line {
	out := make([]Line, len(g.lines))
	copy(out, g.lines)
	return out
}

// Len is the number of lines.
func (g *Ledger) Len() int {
	return len(g.lines)
}

// Total sums UnitPrice * Quantity over every line.
func (g *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range g.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// find returns the index of the line for variantID with the given
// subscription flag, or -1.
func (g *Ledger) find(variantID string, subscription bool) int {
	for i, l := range g.lines {
		if l.VariantID == variantID && l.Subscription == subscription {
			return i
		}
	}
	return -1
}
