package scene

import (
	"github.com/dosmond/terminal-coffee-range/catalog"
)

// Mug geometry in cells.
const (
	MugWidth   = 9
	MugHeight  = 4
	HandleW    = 2
	StandWidth = 11
	baseSlot   = 16
)

// Scenery depths. Mug primitives sit at DepthMug, in front of everything.
const (
	DepthMug    = 0
	DepthCloud  = 5
	DepthGround = 9

	groundHeight = 2
)

// slotWidth shrinks spacing when the lineup grows, bounded below so
// neighboring stands never overlap. Wide lineups are reached by panning.
func slotWidth(n int) int {
	if n > 5 {
		if s := 5 * baseSlot / n; s < baseSlot {
			if s < StandWidth+1 {
				return StandWidth + 1
			}
			return s
		}
	}
	return baseSlot
}

// BuildGraph lays the current targets out as composite mugs centered in
// area, plus untagged scenery (ground, clouds). World x coordinates may
// extend past the area; the camera pans to reach them.
func BuildGraph(targets []catalog.Target, area Rect) *Graph {
	g := NewGraph()

	// Ground strip across the visible range and beyond, so panning never
	// runs off the world.
	g.AddLeaf(nil, PartScenery, Rect{
		X: area.X - 4*baseSlot*max(1, len(targets)),
		Y: area.Y + area.H - groundHeight,
		W: area.W + 8*baseSlot*max(1, len(targets)),
		H: groundHeight,
	}, DepthGround)

	// A couple of clouds in the sky band. Untagged: shooting one is a miss.
	cloudY := area.Y + 1
	g.AddLeaf(nil, PartScenery, Rect{X: area.X + area.W/5, Y: cloudY, W: 12, H: 2}, DepthCloud)
	g.AddLeaf(nil, PartScenery, Rect{X: area.X + 3*area.W/5, Y: cloudY + 1, W: 14, H: 2}, DepthCloud)

	n := len(targets)
	if n == 0 {
		return g
	}

	slot := slotWidth(n)
	centerX := area.X + area.W/2
	top := area.Y + area.H - groundHeight - MugHeight - 1

	for i, t := range targets {
		cx := centerX + (2*i-(n-1))*slot/2
		buildMug(g, t, cx, top)
	}
	return g
}

// buildMug assembles one composite target: label, body, handle and stand
// leaves owned by a single tagged group. The aim resolver finds the tag by
// walking up from whichever primitive the shot lands on.
func buildMug(g *Graph, t catalog.Target, cx, top int) {
	group := g.AddGroup(t)

	bodyX := cx - MugWidth/2
	g.AddLeaf(group, PartLabel, Rect{X: cx - len(t.Label)/2, Y: top - 1, W: len(t.Label), H: 1}, DepthMug)
	g.AddLeaf(group, PartBody, Rect{X: bodyX, Y: top, W: MugWidth, H: MugHeight}, DepthMug)
	g.AddLeaf(group, PartHandle, Rect{X: bodyX + MugWidth, Y: top + 1, W: HandleW, H: 2}, DepthMug)
	g.AddLeaf(group, PartStand, Rect{X: cx - StandWidth/2, Y: top + MugHeight, W: StandWidth, H: 1}, DepthMug)
}
