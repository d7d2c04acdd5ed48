package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/event"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/world"
)

// Canvas is the drawing surface the renderer needs. *Screen implements it.
type Canvas interface {
	Clear()
	Show()
	SetContent(x, y int, r rune, style tcell.Style)
}

// Frame is everything drawn in one pass.
type Frame struct {
	Units   []entity.Unit
	Status  game.Status
	Terrain world.Terrain
	Drag    *[4]int // x1, y1, x2, y2 cells of an active selection box
}

var (
	playerBackground = tcell.NewRGBColor(16, 24, 48)
	enemyBackground  = tcell.NewRGBColor(64, 12, 12)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	canvas  Canvas
	view    *Viewport
	types   *gamedata.UnitTypeRegistry
	message string
}

// NewRenderer creates a renderer drawing onto canvas.
func NewRenderer(canvas Canvas, view *Viewport, types *gamedata.UnitTypeRegistry) *Renderer {
	return &Renderer{canvas: canvas, view: view, types: types}
}

// Attach shows combat and lifecycle notifications from bus on the message
// line. The returned function detaches again.
func (r *Renderer) Attach(bus *event.Bus) (detach func()) {
	unsubs := []func(){
		event.On(bus, event.CombatDefeat, func(d combat.Defeat) {
			r.message = fmt.Sprintf("%s %s #%d defeated %s %s #%d",
				d.Attacker.Faction, d.Attacker.Type, d.Attacker.ID,
				d.Defender.Faction, d.Defender.Type, d.Defender.ID)
		}),
		event.On(bus, event.GameOver, func(o game.Over) {
			r.message = fmt.Sprintf("Game over: %s wins. Press r to play again.", o.Winner)
		}),
		event.On(bus, event.GameReset, func(string) {
			r.message = "Battlefield reset."
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Message returns the text currently on the message line.
func (r *Renderer) Message() string {
	return r.message
}

// Render draws the battlefield, the units and the HUD.
func (r *Renderer) Render(f Frame) {
	r.canvas.Clear()

	ground := tcell.StyleDefault.Foreground(gamedata.MustParseHexColor(f.Terrain.Color()))
	for y := 0; y < r.view.Rows(); y++ {
		for x := 0; x < r.view.Cols(); x++ {
			r.canvas.SetContent(x, y, f.Terrain.Rune(), ground)
		}
	}

	if f.Drag != nil {
		r.renderDragBox(*f.Drag)
	}

	for _, u := range f.Units {
		x, y := r.view.ToCell(u.Position)
		glyph, style := r.unitStyle(u)
		r.canvas.SetContent(x, y, glyph, style)
	}

	r.RenderMessage(r.message, r.view.Rows())
	r.RenderMessage(statusLine(f.Status), r.view.Rows()+1)

	r.canvas.Show()
}

func (r *Renderer) unitStyle(u entity.Unit) (rune, tcell.Style) {
	glyph := '?'
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if def := r.types.GetByID(u.Type); def != nil {
		glyph = def.GlyphRune()
		style = style.Foreground(def.TCellColor())
	}

	switch u.Faction {
	case entity.FactionPlayer:
		style = style.Background(playerBackground)
	case entity.FactionEnemy:
		style = style.Background(enemyBackground)
	}
	if u.Selected {
		style = style.Reverse(true).Bold(true)
	}
	return glyph, style
}

func (r *Renderer) renderDragBox(box [4]int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	x1, y1, x2, y2 := box[0], box[1], box[2], box[3]
	for x := x1; x <= x2; x++ {
		r.canvas.SetContent(x, y1, '-', style)
		r.canvas.SetContent(x, y2, '-', style)
	}
	for y := y1; y <= y2; y++ {
		r.canvas.SetContent(x1, y, '|', style)
		r.canvas.SetContent(x2, y, '|', style)
	}
}

// RenderMessage writes a line of text starting at column 0 of row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		if x >= r.view.Cols() {
			break
		}
		r.canvas.SetContent(x, y, ch, style)
		x++
	}
}

func statusLine(s game.Status) string {
	return fmt.Sprintf("tick %d  %s  player %d  enemy %d  [space] pause  [r] reset  [q] quit",
		s.Tick, s.State, s.PlayerUnits, s.EnemyUnits)
}
