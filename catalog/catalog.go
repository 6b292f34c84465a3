// Package catalog models the shootable target set of the coffee range.
//
// Products and variants come from the upstream product source; targets are
// derived from them per game mode and are rebuilt wholesale whenever the
// mode or the selection changes. Target ids are the only stable reference
// across rebuilds.
package catalog

import (
	"github.com/shopspring/decimal"
)

// SubscriptionPolicy describes how a product may be purchased.
type SubscriptionPolicy uint8

const (
	SubscriptionNone SubscriptionPolicy = iota
	SubscriptionAllowed
	SubscriptionRequired
)

// ParseSubscriptionPolicy maps the upstream string form ("", "allowed",
// "required") to a policy. Unknown values degrade to SubscriptionNone.
func ParseSubscriptionPolicy(s string) SubscriptionPolicy {
	switch s {
	case "allowed":
		return SubscriptionAllowed
	case "required":
		return SubscriptionRequired
	default:
		return SubscriptionNone
	}
}

// Variant is one purchasable form of a product. Price is decimal currency,
// already normalized from the upstream minor units.
type Variant struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Product is read-only input from the product source.
type Product struct {
	ID           string
	Name         string
	Description  string
	Variants     []Variant
	Subscription SubscriptionPolicy
}

// FindVariant returns the variant with the given id, if any.
func (p *Product) FindVariant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// PriceFromMinorUnits converts an upstream integer price (cents) to
// decimal currency.
func PriceFromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// Mode is the game mode driving which targets exist.
type Mode uint8

const (
	ModeProductSelect Mode = iota
	ModeVariantSelect
	ModeQuantitySelect
)

func (m Mode) String() string {
	switch m {
	case ModeProductSelect:
		return "product-select"
	case ModeVariantSelect:
		return "variant-select"
	case ModeQuantitySelect:
		return "quantity-select"
	default:
		return "unknown"
	}
}

// TargetKind tags what hitting a target means.
type TargetKind uint8

const (
	KindProduct TargetKind = iota
	KindVariant
	KindNavigation
	KindQuantityControl
)

// Control distinguishes synthetic targets explicitly rather than by their
// position in the target list.
type Control uint8

const (
	ControlNone Control = iota
	ControlBack
	ControlDecrement
	ControlIncrement
)

// Synthetic target ids. Stable within a catalog generation like any other
// target id, but never sourced from the product list.
const (
	BackTargetID      = "ctl-back"
	DecrementTargetID = "ctl-remove-one"
	IncrementTargetID = "ctl-add-one"
)

// Target is one shootable entity. Ephemeral: valid for one catalog
// generation only.
type Target struct {
	ID      string
	Label   string
	Price   decimal.Decimal
	Kind    TargetKind
	Control Control
}

// Build derives the flat target list for the given mode. Pure function of
// its inputs; callers must rebuild whenever mode, selection, or the product
// list changes.
func Build(mode Mode, products []Product, selected *Product, selectedVariant *Variant) []Target {
	switch mode {
	case ModeProductSelect:
		targets := make([]Target, 0, len(products))
		for _, p := range products {
			if len(p.Variants) == 0 {
				continue
			}
			targets = append(targets, Target{
				ID:    p.ID,
				Label: p.Name,
				Price: p.Variants[0].Price,
				Kind:  KindProduct,
			})
		}
		return targets

	case ModeVariantSelect:
		if selected == nil {
			return nil
		}
		targets := make([]Target, 0, len(selected.Variants)+1)
		targets = append(targets, backTarget())
		for _, v := range selected.Variants {
			targets = append(targets, Target{
				ID:    v.ID,
				Label: v.Name,
				Price: v.Price,
				Kind:  KindVariant,
			})
		}
		return targets

	case ModeQuantitySelect:
		return []Target{
			backTarget(),
			{ID: DecrementTargetID, Label: "REMOVE 1", Kind: KindQuantityControl, Control: ControlDecrement},
			{ID: IncrementTargetID, Label: "ADD 1", Kind: KindQuantityControl, Control: ControlIncrement},
		}

	default:
		return nil
	}
}

func backTarget() Target {
	return Target{ID: BackTargetID, Label: "GO BACK", Kind: KindNavigation, Control: ControlBack}
}

// Find looks a target up by id within one catalog generation.
func Find(targets []Target, id string) (Target, bool) {
	for _, t := range targets {
		if t.ID == id {
			return t, true
		}
	}
	return Target{}, false
}
