package scene

// Camera maps screen cells to world cells. Only horizontal panning
// exists; right-drag slides the lineup.
type Camera struct {
	OffsetX int
}

// Pan shifts the view by dx cells.
func (c *Camera) Pan(dx int) {
	c.OffsetX += dx
}

// WorldX converts a screen column to a world column.
func (c Camera) WorldX(screenX int) int {
	return screenX + c.OffsetX
}

// Resolve casts the shot at screen cell (x, y) into the graph and returns
// the id of the target that owns the nearest intersected primitive.
//
// Nearest-hit wins: among intersecting leaves only the smallest depth is
// considered (first inserted breaks ties). If that leaf's ownership chain
// carries no target tag the shot is a miss even when a farther leaf would
// have matched; there is no fallback scan.
func Resolve(x, y int, cam Camera, g *Graph) (string, bool) {
	wx := cam.WorldX(x)

	var nearest *Node
	for _, n := range g.Leaves() {
		if !n.Bounds.Contains(wx, y) {
			continue
		}
		if nearest == nil || n.Depth < nearest.Depth {
			nearest = n
		}
	}
	if nearest == nil {
		return "", false
	}

	for n := nearest; n != nil; n = n.Parent {
		if n.TargetID != "" {
			return n.TargetID, true
		}
	}
	return "", false
}
