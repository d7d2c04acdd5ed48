package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/skirmish/internal/entity"
)

// ErrUnknownCommand is returned by Apply for an unrecognized command type.
var ErrUnknownCommand = errors.New("unknown command")

// CommandType names a host request.
type CommandType string

const (
	CommandMove        CommandType = "move"        // UnitID to To, or the selection when UnitID is 0
	CommandSelect      CommandType = "select"      // IDs
	CommandSelectArea  CommandType = "select-area" // box From..To
	CommandDeselect    CommandType = "deselect"
	CommandPause       CommandType = "pause"
	CommandResume      CommandType = "resume"
	CommandTogglePause CommandType = "toggle-pause"
	CommandReset       CommandType = "reset"
)

// Command is a request from a host. Hosts reading input on other goroutines
// send commands to the loop goroutine, which applies them.
type Command struct {
	Type   CommandType `json:"type"`
	UnitID int         `json:"unitId,omitempty"`
	IDs    []int       `json:"ids,omitempty"`
	From   entity.Vec2 `json:"from"`
	To     entity.Vec2 `json:"to"`
}

// Apply executes cmd against the game.
func (g *Game) Apply(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CommandMove:
		if cmd.UnitID == 0 {
			g.MoveSelected(cmd.To)
		} else {
			g.MoveUnit(cmd.UnitID, cmd.To)
		}
	case CommandSelect:
		g.SelectUnits(cmd.IDs)
	case CommandSelectArea:
		g.SelectInArea(cmd.From.X, cmd.From.Y, cmd.To.X, cmd.To.Y)
	case CommandDeselect:
		g.DeselectAll()
	case CommandPause:
		g.Pause()
	case CommandResume:
		g.Resume()
	case CommandTogglePause:
		if g.state == StatePaused {
			g.Resume()
		} else {
			g.Pause()
		}
	case CommandReset:
		return g.Reset(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}
