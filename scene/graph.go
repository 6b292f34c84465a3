// Package scene holds the hit-testable world of the range: composite mug
// nodes laid out on stands, plus untagged scenery. The graph is derived
// from the current target catalog and rebuilt with it.
package scene

import (
	"github.com/shopspring/decimal"

	"github.com/dosmond/terminal-coffee-range/catalog"
)

// Rect is an axis-aligned cell region in world coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the world cell (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Part identifies which primitive a leaf draws.
type Part uint8

const (
	PartBody Part = iota
	PartHandle
	PartStand
	PartLabel
	PartScenery
)

// Node is one scene graph entry. Group nodes carry the target tag and no
// bounds; leaves carry the hit-testable bounds and walk up via Parent to
// find their owner's tag.
type Node struct {
	TargetID string
	Label    string
	Price    decimal.Decimal
	Kind     catalog.TargetKind
	Parent   *Node
	Bounds   Rect
	Depth    int // smaller is closer to the camera
	Part     Part
}

// Graph owns every node of one catalog generation.
type Graph struct {
	groups []*Node
	leaves []*Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddGroup inserts a tagged composite owner for a target.
func (g *Graph) AddGroup(t catalog.Target) *Node {
	n := &Node{TargetID: t.ID, Label: t.Label, Price: t.Price, Kind: t.Kind}
	g.groups = append(g.groups, n)
	return n
}

// AddLeaf inserts a hit-testable primitive under parent. A nil parent
// makes the leaf untagged scenery: it intersects rays but resolves to a
// miss.
func (g *Graph) AddLeaf(parent *Node, part Part, bounds Rect, depth int) *Node {
	n := &Node{Parent: parent, Part: part, Bounds: bounds, Depth: depth}
	g.leaves = append(g.leaves, n)
	return n
}

// Leaves returns the hit-testable primitives.
func (g *Graph) Leaves() []*Node {
	return g.leaves
}

// Groups returns the tagged target owners.
func (g *Graph) Groups() []*Node {
	return g.groups
}
