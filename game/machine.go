// Package game contains the mode state machine at the heart of the range:
// it decides what each resolved hit means (select a product, pick a
// variant, adjust a quantity, add a subscription) and
// keeps the target catalog and the cart consistent with each other.
package game

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dosmond/terminal-coffee-range/cart"
	"github.com/dosmond/terminal-coffee-range/catalog"
	"github.com/dosmond/terminal-coffee-range/events"
)

var hundred = decimal.NewFromInt(100)

// Result contains the outcome of processing a shot.
type Result struct {
	// Hit reports whether the shot resolved to a live target.
	Hit bool
	// Notice is the user-visible "last hit" string ("Selected: Latte",
	// "Miss!", ...).
	Notice string
	// CartNotice is the transient cart banner ("Added 1x Latte - Oat
	// Milk"), empty when the cart did not change.
	CartNotice string
	// Rebuilt reports that the target catalog changed and the scene
	// graph must be regenerated.
	Rebuilt bool
	// ScoreDelta is the score gain in minor currency units.
	ScoreDelta int64
}

// Machine is the game mode state machine. Re-entrant per shot, never
// terminal: "back" from product-select is a no-op owned by the
// surrounding checkout/UI layer. All mutation happens on the UI thread.
type Machine struct {
	mode            catalog.Mode
	products        []catalog.Product
	targets         []catalog.Target
	selectedProduct *catalog.Product
	selectedVariant *catalog.Variant

	ledger *cart.Ledger
	queue  *events.Queue
}

// NewMachine starts in product-select with an empty catalog.
func NewMachine(ledger *cart.Ledger, queue *events.Queue) *Machine {
	return &Machine{
		mode:   catalog.ModeProductSelect,
		ledger: ledger,
		queue:  queue,
	}
}

// SetProducts installs a fresh product list, clears the selection and
// returns to product-select.
func (m *Machine) SetProducts(products []catalog.Product) {
	m.products = products
	m.selectedProduct = nil
	m.selectedVariant = nil
	m.mode = catalog.ModeProductSelect
	m.rebuild()
}

// Mode returns the current game mode.
func (m *Machine) Mode() catalog.Mode {
	return m.mode
}

// Targets returns the current catalog generation.
func (m *Machine) Targets() []catalog.Target {
	return m.targets
}

// SelectedProduct returns the product under selection, if any.
func (m *Machine) SelectedProduct() *catalog.Product {
	return m.selectedProduct
}

// SelectedVariant returns the variant under selection, if any.
func (m *Machine) SelectedVariant() *catalog.Variant {
	return m.selectedVariant
}

// Miss records a shot that resolved to nothing. No state change, no cart
// mutation.
func (m *Machine) Miss() Result {
	m.push(events.TargetMiss, "")
	return Result{Notice: "Miss!"}
}

// ProcessHit applies the transition for the resolved target id. An id
// that is no longer in the current catalog (a stale click racing a
// rebuild) is treated exactly like a miss.
func (m *Machine) ProcessHit(id string) Result {
	t, ok := catalog.Find(m.targets, id)
	if !ok {
		return m.Miss()
	}

	switch m.mode {
	case catalog.ModeProductSelect:
		return m.processProductSelect(t)
	case catalog.ModeVariantSelect:
		return m.processVariantSelect(t)
	case catalog.ModeQuantitySelect:
		return m.processQuantitySelect(t)
	}
	return m.Miss()
}

func (m *Machine) processProductSelect(t catalog.Target) Result {
	if t.Kind != catalog.KindProduct {
		return m.Miss()
	}
	p := m.findProduct(t.ID)
	if p == nil {
		return m.Miss()
	}

	m.selectedProduct = p
	m.mode = catalog.ModeVariantSelect
	m.rebuild()
	m.push(events.TargetHit, t.ID)
	return Result{
		Hit:     true,
		Notice:  fmt.Sprintf("Selected: %s", p.Name),
		Rebuilt: true,
	}
}

func (m *Machine) processVariantSelect(t catalog.Target) Result {
	switch t.Kind {
	case catalog.KindNavigation:
		m.selectedProduct = nil
		m.mode = catalog.ModeProductSelect
		m.rebuild()
		m.push(events.TargetHit, t.ID)
		return Result{Hit: true, Notice: "Back to the coffee lineup", Rebuilt: true}

	case catalog.KindVariant:
		if m.selectedProduct == nil {
			return m.Miss()
		}
		v, ok := m.selectedProduct.FindVariant(t.ID)
		if !ok {
			return m.Miss()
		}
		if m.selectedProduct.Subscription == catalog.SubscriptionRequired {
			return m.subscribeFastPath(v)
		}

		m.selectedVariant = &v
		m.mode = catalog.ModeQuantitySelect
		m.rebuild()
		m.push(events.TargetHit, t.ID)
		return Result{
			Hit:     true,
			Notice:  fmt.Sprintf("Hit: %s - %s ($%s)", m.selectedProduct.Name, v.Name, v.Price.StringFixed(2)),
			Rebuilt: true,
		}
	}
	return m.Miss()
}

// subscribeFastPath adds the subscription line directly and skips
// quantity-select: subscription quantity is always exactly 1. Hitting an
// already-subscribed variant is a reported no-op; either way the machine
// returns to product-select.
func (m *Machine) subscribeFastPath(v catalog.Variant) Result {
	p := m.selectedProduct
	added := m.ledger.AddSubscription(cart.ItemRef{
		VariantID:   v.ID,
		ProductName: p.Name,
		VariantName: v.Name,
		UnitPrice:   v.Price,
	})

	res := Result{Hit: true, Rebuilt: true}
	m.push(events.TargetHit, v.ID)
	if added {
		m.push(events.SubscriptionAdded, v.ID)
		res.Notice = fmt.Sprintf("Subscribed: %s - %s (every 2 weeks)", p.Name, v.Name)
		res.CartNotice = fmt.Sprintf("Subscription: %s - %s", p.Name, v.Name)
		res.ScoreDelta = minorUnits(v)
	} else {
		m.push(events.DuplicateSubscription, v.ID)
		res.Notice = fmt.Sprintf("Already subscribed to %s - %s", p.Name, v.Name)
	}

	m.selectedProduct = nil
	m.selectedVariant = nil
	m.mode = catalog.ModeProductSelect
	m.rebuild()
	return res
}

func (m *Machine) processQuantitySelect(t catalog.Target) Result {
	switch t.Control {
	case catalog.ControlBack:
		m.selectedVariant = nil
		m.mode = catalog.ModeVariantSelect
		m.rebuild()
		m.push(events.TargetHit, t.ID)
		return Result{Hit: true, Notice: "Back to variants", Rebuilt: true}

	case catalog.ControlIncrement:
		return m.adjustQuantity(t, 1)

	case catalog.ControlDecrement:
		return m.adjustQuantity(t, -1)
	}
	return m.Miss()
}

// adjustQuantity mutates the one-time line for the selected variant and
// stays in quantity-select with the selection unchanged.
func (m *Machine) adjustQuantity(t catalog.Target, amount int) Result {
	p, v := m.selectedProduct, m.selectedVariant
	if p == nil || v == nil {
		return m.Miss()
	}

	change := m.ledger.AddOrIncrement(cart.ItemRef{
		VariantID:   v.ID,
		ProductName: p.Name,
		VariantName: v.Name,
		UnitPrice:   v.Price,
	}, amount)

	m.push(events.TargetHit, t.ID)
	res := Result{Hit: true}
	name := fmt.Sprintf("%s - %s", p.Name, v.Name)

	switch change.Kind {
	case cart.ChangeAdded:
		m.push(events.ItemAdded, v.ID)
		m.push(events.TargetFlash, t.ID)
		res.Notice = fmt.Sprintf("Added 1x %s", name)
		res.CartNotice = fmt.Sprintf("Added 1x %s", name)
		res.ScoreDelta = minorUnits(*v)
	case cart.ChangeRemoved:
		m.push(events.ItemRemoved, v.ID)
		m.push(events.TargetFlash, t.ID)
		res.Notice = fmt.Sprintf("Removed 1x %s", name)
		res.CartNotice = fmt.Sprintf("Removed 1x %s", name)
	case cart.ChangeDeleted:
		m.push(events.ItemRemoved, v.ID)
		m.push(events.TargetFlash, t.ID)
		res.Notice = fmt.Sprintf("Removed %s from order", name)
		res.CartNotice = fmt.Sprintf("Removed %s from order", name)
	case cart.ChangeNone:
		// Decrement with nothing to remove. Recoverable, not an error.
		res.Notice = fmt.Sprintf("Nothing to remove: %s", name)
	}
	return res
}

func (m *Machine) rebuild() {
	m.targets = catalog.Build(m.mode, m.products, m.selectedProduct, m.selectedVariant)
}

func (m *Machine) findProduct(id string) *catalog.Product {
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i]
		}
	}
	return nil
}

func (m *Machine) push(t events.Type, targetID string) {
	if m.queue == nil {
		return
	}
	m.queue.Push(events.Event{Type: t, TargetID: targetID, At: time.Now()})
}

func minorUnits(v catalog.Variant) int64 {
	return v.Price.Mul(hundred).IntPart()
}
