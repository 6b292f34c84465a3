package scene

import (
	"testing"

	"github.com/dosmond/terminal-coffee-range/catalog"
)

func rangeArea() Rect {
	return Rect{X: 0, Y: 0, W: 120, H: 30}
}

func singleTarget() []catalog.Target {
	return []catalog.Target{
		{ID: "prd_latte", Label: "Latte", Kind: catalog.KindProduct},
	}
}

func TestResolveBodyHitWalksToGroupTag(t *testing.T) {
	g := BuildGraph(singleTarget(), rangeArea())

	// Find the body leaf and shoot its center.
	var body *Node
	for _, n := range g.Leaves() {
		if n.Part == PartBody {
			body = n
		}
	}
	if body == nil {
		t.Fatal("no body leaf in graph")
	}

	id, ok := Resolve(body.Bounds.X+body.Bounds.W/2, body.Bounds.Y+1, Camera{}, g)
	if !ok || id != "prd_latte" {
		t.Errorf("body hit resolved to (%q, %v), want prd_latte", id, ok)
	}
}

func TestResolveHandleAndStandHitSameTarget(t *testing.T) {
	g := BuildGraph(singleTarget(), rangeArea())

	for _, n := range g.Leaves() {
		if n.Part != PartHandle && n.Part != PartStand {
			continue
		}
		id, ok := Resolve(n.Bounds.X, n.Bounds.Y, Camera{}, g)
		if !ok || id != "prd_latte" {
			t.Errorf("part %v resolved to (%q, %v), want prd_latte", n.Part, id, ok)
		}
	}
}

func TestResolveSceneryIsMiss(t *testing.T) {
	g := BuildGraph(singleTarget(), rangeArea())

	// Ground strip spans the bottom; well away from the single mug's stand.
	if id, ok := Resolve(2, 29, Camera{}, g); ok {
		t.Errorf("ground hit resolved to target %q", id)
	}
}

func TestResolveEmptySkyIsMiss(t *testing.T) {
	g := BuildGraph(singleTarget(), rangeArea())

	if id, ok := Resolve(0, 10, Camera{}, g); ok {
		t.Errorf("empty sky resolved to target %q", id)
	}
}

func TestResolveNearestWinsNoFallback(t *testing.T) {
	// Hand-built graph: an untagged foreground leaf covering a tagged
	// background leaf. The nearer untagged chain must win and report a
	// miss, with no fallback to the farther tagged leaf.
	g := NewGraph()
	group := g.AddGroup(catalog.Target{ID: "prd_behind", Label: "Behind", Kind: catalog.KindProduct})
	g.AddLeaf(group, PartBody, Rect{X: 10, Y: 10, W: 9, H: 4}, 3)
	g.AddLeaf(nil, PartScenery, Rect{X: 8, Y: 8, W: 20, H: 10}, 1)

	if id, ok := Resolve(12, 11, Camera{}, g); ok {
		t.Errorf("occluded shot resolved to %q, want miss", id)
	}
}

func TestResolveRespectsCameraPan(t *testing.T) {
	g := BuildGraph(singleTarget(), rangeArea())

	var body *Node
	for _, n := range g.Leaves() {
		if n.Part == PartBody {
			body = n
		}
	}

	cam := Camera{}
	cam.Pan(15)

	// The world cell under the crosshair is shifted right by the pan.
	screenX := body.Bounds.X + body.Bounds.W/2 - 15
	id, ok := Resolve(screenX, body.Bounds.Y, cam, g)
	if !ok || id != "prd_latte" {
		t.Errorf("panned hit resolved to (%q, %v), want prd_latte", id, ok)
	}
}

func TestBuildGraphOneGroupPerTarget(t *testing.T) {
	targets := []catalog.Target{
		{ID: catalog.BackTargetID, Label: "GO BACK", Kind: catalog.KindNavigation},
		{ID: "var_a", Label: "12oz", Kind: catalog.KindVariant},
		{ID: "var_b", Label: "16oz", Kind: catalog.KindVariant},
	}
	g := BuildGraph(targets, rangeArea())

	if len(g.Groups()) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(g.Groups()))
	}
	// Each target contributes four primitives on top of the three scenery
	// leaves.
	if got := len(g.Leaves()); got != 3*4+3 {
		t.Errorf("expected 15 leaves, got %d", got)
	}
}

func TestSlotWidthShrinksForWideLineups(t *testing.T) {
	if slotWidth(3) != baseSlot {
		t.Errorf("small lineup should use the base slot")
	}
	if w := slotWidth(10); w >= baseSlot {
		t.Errorf("wide lineup slot = %d, want < %d", w, baseSlot)
	}
	if w := slotWidth(40); w < StandWidth+1 {
		t.Errorf("slot %d narrower than a stand", w)
	}
}
