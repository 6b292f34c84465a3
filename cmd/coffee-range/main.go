package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dosmond/terminal-coffee-range/audio"
	"github.com/dosmond/terminal-coffee-range/checkout"
	"github.com/dosmond/terminal-coffee-range/client"
	"github.com/dosmond/terminal-coffee-range/config"
	"github.com/dosmond/terminal-coffee-range/game"
	"github.com/dosmond/terminal-coffee-range/render"
)

var (
	debugFlag   = flag.Bool("debug", false, "write a debug log file")
	noSoundFlag = flag.Bool("no-sound", false, "disable audio")
	fpsFlag     = flag.Int("fps", 0, "override frames per second")
)

func main() {
	var screen tcell.Screen

	// Panic recovery: restore the terminal before printing anything, or
	// the trace lands on a raw-mode screen.
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCOFFEE RANGE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *fpsFlag > 0 {
		cfg.Game.FPS = *fpsFlag
	}
	if *noSoundFlag {
		cfg.Game.Sound = false
	}

	log, logFile := setupLogging(cfg.Log.Dir, cfg.Log.Level, *debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	api := client.New(client.Options{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})

	a := newApp(screen, cfg, api, log)

	if cfg.Game.Sound {
		if err := a.audio.Start(); err != nil {
			// Sound is optional; the range plays fine silent.
			log.Warn().Err(err).Msg("audio unavailable")
		}
		defer a.audio.Stop()
	}
	a.muted = !cfg.Game.Sound

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	a.session.LoadProducts(ctx, api)
	cancel()
	a.fetchProfile()

	a.run()
}

// app wires the session, renderer, audio and checkout flow to the
// terminal. All mutation happens on the run loop goroutine; API
// goroutines report back through the calls channel.
type app struct {
	screen  tcell.Screen
	cfg     *config.Config
	log     zerolog.Logger
	api     *client.Client
	session *game.Session
	rend    *render.Renderer
	audio   *audio.Engine
	orch    *checkout.Orchestrator

	calls chan func()

	started        bool
	muted          bool
	greeting       string
	mouseX, mouseY int
	prevButtons    tcell.ButtonMask
	dragX          int

	overlay *overlayState
}

func newApp(screen tcell.Screen, cfg *config.Config, api *client.Client, log zerolog.Logger) *app {
	a := &app{
		screen:  screen,
		cfg:     cfg,
		log:     log,
		api:     api,
		session: game.NewSession(log),
		rend:    render.New(screen),
		audio:   audio.NewEngine(),
		orch:    checkout.NewOrchestrator(api, log),
		calls:   make(chan func(), 16),
	}
	w, h := screen.Size()
	a.session.Resize(render.RangeArea(w, h))
	return a
}

// post hands a closure to the run loop goroutine.
func (a *app) post(fn func()) {
	a.calls <- fn
}

// fetchProfile greets the player by name on the welcome screen. Best
// effort; an anonymous welcome is fine.
func (a *app) fetchProfile() {
	go func() {
		ctx, cancel := a.apiContext()
		defer cancel()

		profile, err := a.api.Profile(ctx)
		if err != nil {
			a.log.Debug().Err(err).Msg("profile fetch failed")
			return
		}
		a.post(func() { a.greeting = profile.User.Name })
	}()
}

func (a *app) run() {
	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.Game.FPS))
	defer ticker.Stop()

	termEvents := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(quit)
				return
			}
			termEvents <- ev
		}
	}()

	for {
		select {
		case <-quit:
			return
		case ev := <-termEvents:
			if !a.handleEvent(ev) {
				return
			}
		case fn := <-a.calls:
			fn()
		case now := <-ticker.C:
			a.tick(now)
			a.draw(now)
		}
	}
}

// tick drains gameplay events to the audio and render consumers and
// advances overlay timers.
func (a *app) tick(now time.Time) {
	for _, ev := range a.session.Events().Consume() {
		a.audio.HandleEvent(ev)
		a.rend.HandleEvent(ev, now)
	}

	if o := a.overlay; o != nil && o.status == checkout.StatusSuccess && now.After(o.closeAt) {
		a.session.ClearCart(now)
		a.closeOverlay()
	}
}

func (a *app) draw(now time.Time) {
	f := render.Frame{
		Session:  a.session,
		Now:      now,
		MouseX:   a.mouseX,
		MouseY:   a.mouseY,
		Started:  a.started,
		Muted:    a.muted,
		Greeting: a.greeting,
	}
	if o := a.overlay; o != nil {
		f.Checkout = &render.CheckoutView{
			Form:       o.form,
			Status:     o.status,
			Message:    o.message,
			CollectURL: o.collectURL,
		}
	}
	a.rend.Draw(f)
}

func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		a.session.Resize(render.RangeArea(w, h))
		a.screen.Sync()

	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if a.overlay != nil {
		a.handleOverlayKey(ev)
		return true
	}
	if !a.started {
		a.started = true
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'c', 'C':
			a.openCheckout()
		case 'x', 'X':
			a.session.ClearCart(time.Now())
		case 'm', 'M':
			a.muted = a.audio.ToggleMute()
		}
	}
	return true
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	a.mouseX, a.mouseY = x, y

	leftClick := buttons&tcell.Button1 != 0 && a.prevButtons&tcell.Button1 == 0
	if leftClick {
		switch {
		case !a.started:
			a.started = true
		case a.overlay == nil:
			a.session.HandleShot(x, y, time.Now())
		}
	}

	// Right-drag pans the camera across wide lineups.
	if buttons&tcell.Button2 != 0 {
		if a.prevButtons&tcell.Button2 != 0 {
			a.session.Pan(a.dragX - x)
		}
		a.dragX = x
	}

	a.prevButtons = buttons
}
