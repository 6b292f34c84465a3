package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testProducts() []Product {
	return []Product{
		{
			ID:   "prd_espresso",
			Name: "Espresso",
			Variants: []Variant{
				{ID: "var_esp_12", Name: "12oz", Price: PriceFromMinorUnits(399)},
			},
		},
		{
			ID:       "prd_merch",
			Name:     "Sticker Pack",
			Variants: nil, // no variants, must never become a target
		},
		{
			ID:   "prd_latte",
			Name: "Latte",
			Variants: []Variant{
				{ID: "var_lat_12", Name: "12oz", Price: PriceFromMinorUnits(450)},
				{ID: "var_lat_16", Name: "16oz", Price: PriceFromMinorUnits(550)},
			},
			Subscription: SubscriptionAllowed,
		},
	}
}

func TestBuildProductSelectExcludesEmptyProducts(t *testing.T) {
	targets := Build(ModeProductSelect, testProducts(), nil, nil)

	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	for _, tgt := range targets {
		if tgt.ID == "prd_merch" {
			t.Errorf("product without variants leaked into catalog: %+v", tgt)
		}
		if tgt.Kind != KindProduct {
			t.Errorf("expected product kind, got %v", tgt.Kind)
		}
	}
	if targets[0].ID != "prd_espresso" || targets[1].ID != "prd_latte" {
		t.Errorf("unexpected target order: %s, %s", targets[0].ID, targets[1].ID)
	}
}

func TestBuildProductSelectUsesFirstVariantPrice(t *testing.T) {
	targets := Build(ModeProductSelect, testProducts(), nil, nil)

	want := PriceFromMinorUnits(450)
	for _, tgt := range targets {
		if tgt.ID == "prd_latte" && !tgt.Price.Equal(want) {
			t.Errorf("latte price = %s, want %s", tgt.Price, want)
		}
	}
}

func TestBuildVariantSelectPrependsBack(t *testing.T) {
	products := testProducts()
	latte := &products[2]

	targets := Build(ModeVariantSelect, products, latte, nil)

	if len(targets) != 3 {
		t.Fatalf("expected back + 2 variants, got %d targets", len(targets))
	}
	if targets[0].ID != BackTargetID || targets[0].Kind != KindNavigation {
		t.Errorf("first target is not the back control: %+v", targets[0])
	}
	if targets[1].ID != "var_lat_12" || targets[2].ID != "var_lat_16" {
		t.Errorf("variant targets out of order: %s, %s", targets[1].ID, targets[2].ID)
	}
}

func TestBuildVariantSelectWithoutSelection(t *testing.T) {
	if targets := Build(ModeVariantSelect, testProducts(), nil, nil); targets != nil {
		t.Errorf("expected nil catalog without a selected product, got %d targets", len(targets))
	}
}

func TestBuildQuantitySelectControls(t *testing.T) {
	products := testProducts()
	latte := &products[2]
	v := &latte.Variants[0]

	targets := Build(ModeQuantitySelect, products, latte, v)

	if len(targets) != 3 {
		t.Fatalf("expected exactly 3 synthetic targets, got %d", len(targets))
	}
	if targets[0].Control != ControlBack {
		t.Errorf("targets[0] control = %v, want back", targets[0].Control)
	}
	if targets[1].Control != ControlDecrement || targets[1].Kind != KindQuantityControl {
		t.Errorf("targets[1] is not the decrement control: %+v", targets[1])
	}
	if targets[2].Control != ControlIncrement || targets[2].Kind != KindQuantityControl {
		t.Errorf("targets[2] is not the increment control: %+v", targets[2])
	}
	for _, tgt := range targets {
		if !tgt.Price.Equal(decimal.Zero) {
			t.Errorf("synthetic target %s carries a price: %s", tgt.ID, tgt.Price)
		}
	}
}

func TestPriceFromMinorUnits(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{450, "4.5"},
		{399, "3.99"},
		{0, "0"},
		{10000, "100"},
	}
	for _, tc := range cases {
		if got := PriceFromMinorUnits(tc.minor); got.String() != tc.want {
			t.Errorf("PriceFromMinorUnits(%d) = %s, want %s", tc.minor, got, tc.want)
		}
	}
}

func TestFind(t *testing.T) {
	targets := Build(ModeProductSelect, testProducts(), nil, nil)

	if _, ok := Find(targets, "prd_latte"); !ok {
		t.Error("expected to find prd_latte")
	}
	if _, ok := Find(targets, "prd_gone"); ok {
		t.Error("found a target that is not in the catalog")
	}
}

func TestParseSubscriptionPolicy(t *testing.T) {
	if got := ParseSubscriptionPolicy("required"); got != SubscriptionRequired {
		t.Errorf("required parsed as %v", got)
	}
	if got := ParseSubscriptionPolicy("allowed"); got != SubscriptionAllowed {
		t.Errorf("allowed parsed as %v", got)
	}
	if got := ParseSubscriptionPolicy("weird"); got != SubscriptionNone {
		t.Errorf("unknown policy parsed as %v, want none", got)
	}
}
