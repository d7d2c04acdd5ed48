package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/game"
)

// Action is what the UI should do in response to a terminal event.
type Action struct {
	Quit    bool
	Resize  bool
	Command *game.Command
}

// Input turns keys and mouse gestures into actions. Left-drag selects the
// player units in a box, right-click sends the selection to a point.
type Input struct {
	view     *Viewport
	dragging bool
	start    [2]int // cell where the drag began
	current  [2]int
	buttons  tcell.ButtonMask // buttons held at the previous mouse event
}

// NewInput creates an input handler that maps cells through view.
func NewInput(view *Viewport) *Input {
	return &Input{view: view}
}

// Translate maps one terminal event to an action.
func (in *Input) Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.key(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		return in.mouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		return Action{Resize: true}
	}
	return Action{}
}

func (in *Input) key(k tcell.Key, r rune) Action {
	switch k {
	case tcell.KeyEscape:
		if in.dragging {
			in.dragging = false
			return Action{}
		}
		return Action{Command: &game.Command{Type: game.CommandDeselect}}
	case tcell.KeyCtrlC:
		return Action{Quit: true}
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return Action{Quit: true}
		case ' ':
			return Action{Command: &game.Command{Type: game.CommandTogglePause}}
		case 'r', 'R':
			return Action{Command: &game.Command{Type: game.CommandReset}}
		}
	}
	return Action{}
}

func (in *Input) mouse(x, y int, buttons tcell.ButtonMask) Action {
	pressed := buttons &^ in.buttons
	released := in.buttons &^ buttons
	in.buttons = buttons

	switch {
	case pressed&tcell.Button1 != 0:
		if !in.view.InField(x, y) {
			return Action{}
		}
		in.dragging = true
		in.start = [2]int{x, y}
		in.current = in.start
		return Action{}

	case buttons&tcell.Button1 != 0 && in.dragging:
		in.current = [2]int{x, y}
		return Action{}

	case released&tcell.Button1 != 0 && in.dragging:
		in.dragging = false
		in.current = [2]int{x, y}
		return Action{Command: in.selectBox()}

	case pressed&tcell.Button2 != 0:
		if !in.view.InField(x, y) {
			return Action{}
		}
		return Action{Command: &game.Command{Type: game.CommandMove, To: in.view.ToWorld(x, y)}}
	}
	return Action{}
}

// selectBox builds a selection covering every cell the drag touched.
func (in *Input) selectBox() *game.Command {
	x1, x2 := minMax(in.start[0], in.current[0])
	y1, y2 := minMax(in.start[1], in.current[1])
	from, _ := in.view.CellBounds(x1, y1)
	_, to := in.view.CellBounds(x2, y2)
	return &game.Command{Type: game.CommandSelectArea, From: from, To: to}
}

// DragBox returns the cells spanned by an ongoing drag.
func (in *Input) DragBox() (x1, y1, x2, y2 int, ok bool) {
	if !in.dragging {
		return 0, 0, 0, 0, false
	}
	x1, x2 = minMax(in.start[0], in.current[0])
	y1, y2 = minMax(in.start[1], in.current[1])
	return x1, y1, x2, y2, true
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
