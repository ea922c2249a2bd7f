package game

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Board is a Width x Height tic-tac-toe grid stored as one bitmask per player.
// Bit a of marks[0] is set when X holds action a, bit a of marks[1] when O does.
type Board struct {
	width, height int
	marks         [2]uint64
	lines         []uint64 // winning patterns, shared between copies
}

// NewBoard returns an empty board. It panics if the two player masks cannot be
// packed into a single 64 bit encoding.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 || 2*width*height > 64 {
		panic("board dimensions do not fit a 64 bit encoding")
	}
	return &Board{
		width:  width,
		height: height,
		lines:  winningLines(width, height),
	}
}

// New returns an empty canonical 3x3 board.
func New() *Board { return NewBoard(Width, Height) }

// Copy returns an independent board. Mutating the copy never affects b.
func (b *Board) Copy() *Board {
	retVal := *b
	return &retVal
}

func (b *Board) Dims() (width, height int) { return b.width, b.height }

// Size is the number of cells, which is also the size of the action space.
func (b *Board) Size() int { return b.width * b.height }

// XYToAction linearises a cell coordinate.
func XYToAction(width, x, y int) int { return y*width + x }

// ActionToXY is the inverse of XYToAction.
func ActionToXY(width, action int) (x, y int) { return action % width, action / width }

func (b *Board) XYToAction(x, y int) int { return XYToAction(b.width, x, y) }

func (b *Board) ActionToXY(action int) (x, y int) { return ActionToXY(b.width, action) }

// Cell returns the mark at the given action.
func (b *Board) Cell(action int) Player {
	bit := uint64(1) << uint(action)
	switch {
	case b.marks[0]&bit != 0:
		return X
	case b.marks[1]&bit != 0:
		return O
	}
	return Empty
}

// Get returns the mark at (x, y).
func (b *Board) Get(x, y int) Player { return b.Cell(b.XYToAction(x, y)) }

func (b *Board) full() uint64 { return uint64(1)<<uint(b.Size()) - 1 }

// Full reports whether no empty cell remains.
func (b *Board) Full() bool { return b.marks[0]|b.marks[1] == b.full() }

// Count returns the number of marks p has placed.
func (b *Board) Count(p Player) int {
	if !p.Valid() {
		return 0
	}
	n := 0
	for m := b.marks[p-1]; m != 0; m &= m - 1 {
		n++
	}
	return n
}

// AvailableActions returns the empty cells in increasing order. An empty slice
// means the board is full.
func (b *Board) AvailableActions() []int {
	retVal := make([]int, 0, b.Size())
	free := b.full() &^ (b.marks[0] | b.marks[1])
	for a := 0; free != 0; a++ {
		if free&1 == 1 {
			retVal = append(retVal, a)
		}
		free >>= 1
	}
	return retVal
}

// Place puts player's mark on action and reports whether that completed a
// line for player. Only the acting player's lines are evaluated.
func (b *Board) Place(action int, player Player) (won bool, err error) {
	if !player.Valid() {
		return false, errors.Wrapf(ErrInvalidAction, "unknown player %d", uint8(player))
	}
	if action < 0 || action >= b.Size() {
		return false, errors.Wrapf(ErrInvalidAction, "action %d out of range [0, %d)", action, b.Size())
	}
	if c := b.Cell(action); c != Empty {
		x, y := b.ActionToXY(action)
		return false, errors.Wrapf(ErrInvalidAction, "cell (%d, %d) already holds %v", x, y, c)
	}

	b.marks[player-1] |= uint64(1) << uint(action)
	return b.Won(player), nil
}

// Won reports whether p owns any complete line.
func (b *Board) Won(p Player) bool {
	if !p.Valid() {
		return false
	}
	m := b.marks[p-1]
	for _, line := range b.lines {
		if m&line == line {
			return true
		}
	}
	return false
}

// Winner returns the player owning a complete line, or Empty.
func (b *Board) Winner() Player {
	switch {
	case b.Won(X):
		return X
	case b.Won(O):
		return O
	}
	return Empty
}

// Eq compares mark placement.
func (b *Board) Eq(other *Board) bool {
	return b.width == other.width && b.height == other.height && b.marks == other.marks
}

func (b *Board) String() string {
	var buf strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			buf.WriteString(strings.Repeat("-", 4*b.width-1))
			buf.WriteByte('\n')
		}
		for x := 0; x < b.width; x++ {
			if x > 0 {
				buf.WriteString("|")
			}
			buf.WriteString(" " + b.Get(x, y).String() + " ")
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// winningLines builds every row and column pattern, plus both diagonals when
// the board is square. A 3x3 board has 8 lines.
func winningLines(width, height int) []uint64 {
	var lines []uint64
	for y := 0; y < height; y++ {
		var l uint64
		for x := 0; x < width; x++ {
			l |= 1 << uint(XYToAction(width, x, y))
		}
		lines = append(lines, l)
	}
	for x := 0; x < width; x++ {
		var l uint64
		for y := 0; y < height; y++ {
			l |= 1 << uint(XYToAction(width, x, y))
		}
		lines = append(lines, l)
	}
	if width == height {
		var d, a uint64
		for i := 0; i < width; i++ {
			d |= 1 << uint(XYToAction(width, i, i))
			a |= 1 << uint(XYToAction(width, width-1-i, i))
		}
		lines = append(lines, d, a)
	}
	return slices.Clip(lines)
}
