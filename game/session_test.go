package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dosmond/terminal-coffee-range/catalog"
	"github.com/dosmond/terminal-coffee-range/events"
	"github.com/dosmond/terminal-coffee-range/scene"
)

type stubSource struct {
	products []catalog.Product
	err      error
}

func (s stubSource) Products(context.Context) ([]catalog.Product, error) {
	return s.products, s.err
}

func liveProducts() []catalog.Product {
	return []catalog.Product{{
		ID:   "p1",
		Name: "Latte",
		Variants: []catalog.Variant{
			{ID: "v1", Name: "12oz", Price: catalog.PriceFromMinorUnits(450)},
		},
	}}
}

func testSession(t *testing.T, src ProductSource) *Session {
	t.Helper()
	s := NewSession(zerolog.Nop())
	s.Resize(scene.Rect{X: 0, Y: 0, W: 120, H: 30})
	s.LoadProducts(context.Background(), src)
	return s
}

// mugScreenCell finds a screen cell that hits the target with the given id.
func mugScreenCell(t *testing.T, s *Session, id string) (int, int) {
	t.Helper()
	for _, g := range s.Graph().Groups() {
		if g.TargetID != id {
			continue
		}
		for _, leaf := range s.Graph().Leaves() {
			if leaf.Parent == g && leaf.Part == scene.PartBody {
				wx := leaf.Bounds.X + leaf.Bounds.W/2
				return wx - s.Camera().OffsetX, leaf.Bounds.Y + 1
			}
		}
	}
	t.Fatalf("no body leaf for target %s", id)
	return 0, 0
}

func TestLoadProductsFallsBackToPlaceholders(t *testing.T) {
	s := testSession(t, stubSource{err: errors.New("api down")})

	if !s.UsingPlaceholders() {
		t.Fatal("expected placeholder fallback on fetch failure")
	}
	if len(s.Machine().Targets()) != 5 {
		t.Errorf("expected 5 placeholder targets, got %d", len(s.Machine().Targets()))
	}
}

func TestLoadProductsAllEmptyVariantsFallsBack(t *testing.T) {
	s := testSession(t, stubSource{products: []catalog.Product{{ID: "p", Name: "Empty"}}})

	if !s.UsingPlaceholders() {
		t.Error("a lineup with nothing shootable must fall back")
	}
}

func TestHandleShotHitAdvancesMode(t *testing.T) {
	s := testSession(t, stubSource{products: liveProducts()})
	now := time.Now()

	x, y := mugScreenCell(t, s, "p1")
	s.HandleShot(x, y, now)

	if s.Machine().Mode() != catalog.ModeVariantSelect {
		t.Errorf("mode = %v after product hit", s.Machine().Mode())
	}
	if s.Shots() != 1 {
		t.Errorf("shots = %d", s.Shots())
	}
	if msg, ok := s.LastHit(now); !ok || msg != "Selected: Latte" {
		t.Errorf("last hit = %q, %v", msg, ok)
	}
	// Graph rebuilt for the new catalog: back + variant groups.
	if len(s.Graph().Groups()) != 2 {
		t.Errorf("graph groups = %d, want 2", len(s.Graph().Groups()))
	}
}

func TestHandleShotMiss(t *testing.T) {
	s := testSession(t, stubSource{products: liveProducts()})
	now := time.Now()

	s.HandleShot(0, 5, now) // empty sky

	if s.Machine().Mode() != catalog.ModeProductSelect {
		t.Error("miss changed the mode")
	}
	if msg, _ := s.LastHit(now); msg != "Miss!" {
		t.Errorf("last hit = %q", msg)
	}
}

func TestHandleShotIgnoredWhileInputDisabled(t *testing.T) {
	s := testSession(t, stubSource{products: liveProducts()})
	s.SetInputEnabled(false)

	x, y := mugScreenCell(t, s, "p1")
	s.HandleShot(x, y, time.Now())

	if s.Shots() != 0 {
		t.Error("disabled input still counted a shot")
	}
	if s.Machine().Mode() != catalog.ModeProductSelect {
		t.Error("disabled input still advanced the mode")
	}
}

func TestNoticesExpire(t *testing.T) {
	s := testSession(t, stubSource{products: liveProducts()})
	now := time.Now()

	x, y := mugScreenCell(t, s, "p1")
	s.HandleShot(x, y, now)

	if _, ok := s.LastHit(now.Add(hitNoticeTTL + time.Millisecond)); ok {
		t.Error("hit notice did not expire")
	}
}

func TestScoreAccumulatesOnAdd(t *testing.T) {
	s := testSession(t, stubSource{products: liveProducts()})
	now := time.Now()

	s.HandleShot(mugX(t, s, "p1", now))
	s.HandleShot(mugX(t, s, "v1", now))
	s.HandleShot(mugX(t, s, catalog.IncrementTargetID, now))
	s.HandleShot(mugX(t, s, catalog.IncrementTargetID, now))

	if s.Score() != 900 {
		t.Errorf("score = %d, want 900", s.Score())
	}
	if s.Ledger().Total().StringFixed(2) != "9.00" {
		t.Errorf("total = %s", s.Ledger().Total().StringFixed(2))
	}
}

// mugX adapts mugScreenCell to HandleShot's argument list.
func mugX(t *testing.T, s *Session, id string, now time.Time) (int, int, time.Time) {
	x, y := mugScreenCell(t, s, id)
	return x, y, now
}

func TestClearCart(t *testing.T) {
	s := testSession(t, stubSource{products: liveProducts()})
	now := time.Now()
	s.HandleShot(mugX(t, s, "p1", now))
	s.HandleShot(mugX(t, s, "v1", now))
	s.HandleShot(mugX(t, s, catalog.IncrementTargetID, now))
	s.Events().Consume()

	s.ClearCart(now)

	if s.Ledger().Len() != 0 {
		t.Error("cart not cleared")
	}
	found := false
	for _, e := range s.Events().Consume() {
		if e.Type == events.CartCleared {
			found = true
		}
	}
	if !found {
		t.Error("no CartCleared event")
	}
}

func TestPanDisabledWithInput(t *testing.T) {
	s := testSession(t, stubSource{products: liveProducts()})

	s.Pan(10)
	if s.Camera().OffsetX != 10 {
		t.Errorf("pan offset = %d", s.Camera().OffsetX)
	}

	s.SetInputEnabled(false)
	s.Pan(10)
	if s.Camera().OffsetX != 10 {
		t.Error("pan applied while input disabled")
	}
}
