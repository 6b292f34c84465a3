package render

import (
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/dosmond/terminal-coffee-range/catalog"
	"github.com/dosmond/terminal-coffee-range/scene"
)

// drawRange paints the scene graph far-to-near through the camera.
func (r *Renderer) drawRange(f Frame) {
	s := r.screen
	w, h := s.Size()
	cam := f.Session.Camera()

	leaves := f.Session.Graph().Leaves()
	ordered := make([]*scene.Node, len(leaves))
	copy(ordered, leaves)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Depth > ordered[j].Depth
	})

	for _, leaf := range ordered {
		x := leaf.Bounds.X - cam.OffsetX
		y := leaf.Bounds.Y
		if x+leaf.Bounds.W <= 0 || x >= w || y >= h {
			continue
		}
		r.drawLeaf(s, leaf, x, y, f)
	}
}

func (r *Renderer) drawLeaf(s tcell.Screen, leaf *scene.Node, x, y int, f Frame) {
	switch leaf.Part {
	case scene.PartScenery:
		r.drawScenery(s, leaf, x, y)
	case scene.PartBody:
		r.drawBody(s, leaf, x, y, f)
	case scene.PartHandle:
		r.drawHandle(s, leaf, x, y, f)
	case scene.PartStand:
		r.drawStand(s, leaf, x, y)
	case scene.PartLabel:
		drawText(s, x, y, leaf.Parent.Label, styleLabel)
	}
}

func (r *Renderer) drawScenery(s tcell.Screen, leaf *scene.Node, x, y int) {
	w, _ := s.Size()
	switch leaf.Depth {
	case scene.DepthGround:
		x0, x1 := max(x, 0), min(x+leaf.Bounds.W, w)
		if x1 > x0 {
			fillRect(s, x0, y, x1-x0, leaf.Bounds.H, '▒', styleGround)
		}
	default:
		fillRect(s, x, y, leaf.Bounds.W, leaf.Bounds.H, '░', styleCloud)
	}
}

func (r *Renderer) drawBody(s tcell.Screen, leaf *scene.Node, x, y int, f Frame) {
	style := mugStyle(leaf.Parent)
	if r.flashing(leaf.Parent.TargetID, f.Now) {
		style = styleFlash
	}
	fillRect(s, x, y, leaf.Bounds.W, leaf.Bounds.H, '█', style)
}

func (r *Renderer) drawHandle(s tcell.Screen, leaf *scene.Node, x, y int, f Frame) {
	style := mugStyle(leaf.Parent)
	if r.flashing(leaf.Parent.TargetID, f.Now) {
		style = styleFlash
	}
	s.SetContent(x, y, '─', nil, style)
	s.SetContent(x+1, y, '┐', nil, style)
	s.SetContent(x, y+1, '─', nil, style)
	s.SetContent(x+1, y+1, '┘', nil, style)
}

func (r *Renderer) drawStand(s tcell.Screen, leaf *scene.Node, x, y int) {
	fillRect(s, x, y, leaf.Bounds.W, 1, '═', styleStand)
	if !leaf.Parent.Price.IsZero() {
		price := "$" + leaf.Parent.Price.StringFixed(2)
		drawText(s, x+(leaf.Bounds.W-len(price))/2, y+1, price, stylePrice)
	}
}

// mugStyle colors a mug by what shooting it does.
func mugStyle(group *scene.Node) tcell.Style {
	switch group.Kind {
	case catalog.KindProduct:
		return styleMugProduct
	case catalog.KindVariant:
		return styleMugVariant
	case catalog.KindNavigation:
		return styleMugBack
	case catalog.KindQuantityControl:
		if group.TargetID == catalog.IncrementTargetID {
			return styleMugAdd
		}
		return styleMugRemove
	}
	return styleDefault
}

// drawCrosshair paints the aim reticle at the last mouse position, only
// inside the range area.
func (r *Renderer) drawCrosshair(f Frame, w, h int) {
	x, y := f.MouseX, f.MouseY
	if y < bannerRows || y >= h-1 || x < 0 || x >= w {
		return
	}
	s := r.screen
	s.SetContent(x-2, y, '─', nil, styleCross)
	s.SetContent(x+2, y, '─', nil, styleCross)
	if y-1 >= bannerRows {
		s.SetContent(x, y-1, '│', nil, styleCross)
	}
	if y+1 < h-1 {
		s.SetContent(x, y+1, '│', nil, styleCross)
	}
	s.SetContent(x, y, '┼', nil, styleCross)
}
