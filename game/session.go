package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dosmond/terminal-coffee-range/cart"
	"github.com/dosmond/terminal-coffee-range/catalog"
	"github.com/dosmond/terminal-coffee-range/events"
	"github.com/dosmond/terminal-coffee-range/scene"
)

// Notice lifetimes.
const (
	hitNoticeTTL  = 1500 * time.Millisecond
	cartNoticeTTL = 2 * time.Second
)

// ProductSource supplies the product list. The HTTP client implements it.
type ProductSource interface {
	Products(ctx context.Context) ([]catalog.Product, error)
}

// notice is a transient user-visible string.
type notice struct {
	text  string
	until time.Time
}

func (n notice) active(now time.Time) bool {
	return n.text != "" && now.Before(n.until)
}

// Session owns the live game: machine, cart, camera and the derived scene
// graph, plus the score surface. Single mutator thread; every method is
// called from the frame loop.
type Session struct {
	machine *Machine
	ledger  *cart.Ledger
	queue   *events.Queue

	camera scene.Camera
	graph  *scene.Graph
	area   scene.Rect

	score int64
	shots int

	// inputEnabled gates aim resolution while the checkout overlay (or
	// any other modal surface) is open. Explicit shared state, owned
	// here and observed by the overlay controller.
	inputEnabled bool

	lastHit    notice
	cartNotice notice

	usingPlaceholders bool
	log               zerolog.Logger
}

// NewSession builds an idle session with an empty cart.
func NewSession(log zerolog.Logger) *Session {
	ledger := cart.New()
	queue := events.NewQueue()
	return &Session{
		machine:      NewMachine(ledger, queue),
		ledger:       ledger,
		queue:        queue,
		inputEnabled: true,
		log:          log,
	}
}

// placeholderProducts keeps the range playable when the product fetch
// fails during development.
func placeholderProducts() []catalog.Product {
	mk := func(id, name string, minor int64) catalog.Product {
		return catalog.Product{
			ID:   id,
			Name: name,
			Variants: []catalog.Variant{
				{ID: id + "_std", Name: "12oz", Price: catalog.PriceFromMinorUnits(minor)},
			},
		}
	}
	return []catalog.Product{
		mk("ph_espresso", "Espresso", 399),
		mk("ph_latte", "Latte", 499),
		mk("ph_cappuccino", "Cappuccino", 449),
		mk("ph_mocha", "Mocha", 549),
		mk("ph_americano", "Americano", 349),
	}
}

// LoadProducts fetches the lineup, falling back to placeholders when the
// fetch fails or returns nothing shootable.
func (s *Session) LoadProducts(ctx context.Context, src ProductSource) {
	products, err := src.Products(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("product fetch failed, using placeholders")
		products = nil
	}

	shootable := 0
	for _, p := range products {
		if len(p.Variants) > 0 {
			shootable++
		}
	}
	if shootable == 0 {
		products = placeholderProducts()
		s.usingPlaceholders = true
	} else {
		s.usingPlaceholders = false
	}

	s.machine.SetProducts(products)
	s.rebuildGraph()
	s.log.Info().Int("products", len(products)).Bool("placeholders", s.usingPlaceholders).Msg("catalog loaded")
}

// UsingPlaceholders reports whether the lineup is the offline fallback.
func (s *Session) UsingPlaceholders() bool { return s.usingPlaceholders }

// Resize installs the drawable range area and relays out the world.
func (s *Session) Resize(area scene.Rect) {
	s.area = area
	s.rebuildGraph()
}

// Graph returns the current scene graph for rendering and aim.
func (s *Session) Graph() *scene.Graph { return s.graph }

// Camera returns the current camera.
func (s *Session) Camera() scene.Camera { return s.camera }

// Pan shifts the camera horizontally (right-drag).
func (s *Session) Pan(dx int) {
	if !s.inputEnabled {
		return
	}
	s.camera.Pan(dx)
}

// Machine exposes the mode machine for the render layer's banner.
func (s *Session) Machine() *Machine { return s.machine }

// Ledger exposes the cart for the render layer and checkout.
func (s *Session) Ledger() *cart.Ledger { return s.ledger }

// Events returns the feedback queue for the frame loop to drain.
func (s *Session) Events() *events.Queue { return s.queue }

// Score returns the accumulated score in minor units.
func (s *Session) Score() int64 { return s.score }

// Shots returns the number of shots fired.
func (s *Session) Shots() int { return s.shots }

// SetInputEnabled pauses or resumes aim handling. The checkout overlay
// controller flips this while it is open.
func (s *Session) SetInputEnabled(enabled bool) { s.inputEnabled = enabled }

// InputEnabled reports whether shots are currently being resolved.
func (s *Session) InputEnabled() bool { return s.inputEnabled }

// LastHit returns the active "last hit" notice, if any.
func (s *Session) LastHit(now time.Time) (string, bool) {
	if !s.lastHit.active(now) {
		return "", false
	}
	return s.lastHit.text, true
}

// CartNotice returns the active cart banner, if any.
func (s *Session) CartNotice(now time.Time) (string, bool) {
	if !s.cartNotice.active(now) {
		return "", false
	}
	return s.cartNotice.text, true
}

// HandleShot resolves a click at screen cell (x, y) and applies the mode
// transition. Ignored entirely while input is disabled.
func (s *Session) HandleShot(x, y int, now time.Time) {
	if !s.inputEnabled {
		return
	}

	s.shots++
	s.queue.Push(events.Event{Type: events.ShotFired, At: now})

	var res Result
	if id, ok := scene.Resolve(x, y, s.camera, s.graph); ok {
		res = s.machine.ProcessHit(id)
	} else {
		res = s.machine.Miss()
	}

	s.score += res.ScoreDelta
	if res.Notice != "" {
		s.lastHit = notice{text: res.Notice, until: now.Add(hitNoticeTTL)}
	}
	if res.CartNotice != "" {
		s.cartNotice = notice{text: res.CartNotice, until: now.Add(cartNoticeTTL)}
	}
	if res.Rebuilt {
		s.rebuildGraph()
	}
}

// ClearCart wipes the order, mirroring the cart panel's CLEAR control.
func (s *Session) ClearCart(now time.Time) {
	if s.ledger.Len() == 0 {
		return
	}
	s.ledger.Clear()
	s.cartNotice = notice{text: "Cleared all items", until: now.Add(cartNoticeTTL)}
	s.queue.Push(events.Event{Type: events.CartCleared, At: now})
}

func (s *Session) rebuildGraph() {
	s.graph = scene.BuildGraph(s.machine.Targets(), s.area)
}
