package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/game"
)

// App runs a game in the terminal: it polls input on its own goroutine and
// drives rendering and game updates from the loop goroutine.
type App struct {
	game      *game.Game
	screen    *Screen
	view      *Viewport
	renderer  *Renderer
	input     *Input
	frameRate int
	log       *zap.Logger
}

// NewApp wires a game to a screen. frameRate is in frames per second.
func NewApp(g *game.Game, screen *Screen, frameRate int, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	w, h := screen.Size()
	view := NewViewport(g.World().Bounds(), w, h)
	return &App{
		game:      g,
		screen:    screen,
		view:      view,
		renderer:  NewRenderer(screen, view, g.Registry().Types()),
		input:     NewInput(view),
		frameRate: frameRate,
		log:       log,
	}
}

// Run blocks until the player quits or ctx is done. Commands arriving on
// external are applied alongside terminal input; external may be nil.
func (a *App) Run(ctx context.Context, external <-chan game.Command) error {
	detach := a.renderer.Attach(a.game.Bus())
	defer detach()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go a.poll(events, done)

	ticker := time.NewTicker(time.Second / time.Duration(a.frameRate))
	defer ticker.Stop()

	start := time.Now()
	last := start
	a.render()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			act := a.input.Translate(ev)
			if act.Quit {
				return nil
			}
			if act.Resize {
				a.screen.Sync()
				a.view.Resize(a.screen.Size())
			}
			if act.Command != nil {
				a.apply(ctx, *act.Command)
			}

		case cmd := <-external:
			a.apply(ctx, cmd)

		case t := <-ticker.C:
			a.game.Update(ctx, t.Sub(start), t.Sub(last))
			last = t
			a.render()
		}
	}
}

func (a *App) apply(ctx context.Context, cmd game.Command) {
	if err := a.game.Apply(ctx, cmd); err != nil {
		a.log.Warn("command failed", zap.String("command", string(cmd.Type)), zap.Error(err))
	}
}

func (a *App) render() {
	f := Frame{
		Units:   a.game.Registry().Units(),
		Status:  a.game.Status(),
		Terrain: a.game.World().Config().Terrain,
	}
	if x1, y1, x2, y2, ok := a.input.DragBox(); ok {
		f.Drag = &[4]int{x1, y1, x2, y2}
	}
	a.renderer.Render(f)
}

// poll forwards terminal events until the screen closes or done is closed.
func (a *App) poll(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
