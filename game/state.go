package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Player is the mark occupying a cell.
type Player uint8

const (
	Empty Player = iota
	X            // first to move
	O
)

const (
	Width  = 3
	Height = 3
	// Actions is the size of the action space on the canonical board.
	Actions = Width * Height
)

var (
	// ErrInvalidAction is returned when a placement is out of range, targets an
	// occupied cell or names an unknown player. It always indicates a caller bug.
	ErrInvalidAction = errors.New("invalid action")

	// ErrBadEncoding is returned by Decode when both masks claim the same cell.
	ErrBadEncoding = errors.New("bad encoding")
)

func (p Player) String() string {
	switch p {
	case Empty:
		return " "
	case X:
		return "X"
	case O:
		return "O"
	}
	return fmt.Sprintf("Player(%d)", uint8(p))
}

// Valid reports whether p may place a mark.
func (p Player) Valid() bool { return p == X || p == O }

// Opponent returns the other player. Empty has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

// State is the read-only view of a board used by presentation code.
type State interface {
	Dims() (width, height int)
	Get(x, y int) Player
	Encode() uint64
	AvailableActions() []int
}
