package game

import "github.com/pkg/errors"

// Encode packs the board into a single integer: X's mask in the low Size()
// bits, O's mask in the next Size() bits. The mapping is a bijection between
// mark placements and encodings, so it can index a table directly.
func (b *Board) Encode() uint64 {
	return b.marks[0] | b.marks[1]<<uint(b.Size())
}

// StateSpace is the number of distinct encodings for a width x height board.
func StateSpace(width, height int) int { return 1 << uint(2*width*height) }

// Decode rebuilds a board from its encoding.
func Decode(width, height int, encoding uint64) (*Board, error) {
	b := NewBoard(width, height)
	n := uint(b.Size())
	if encoding>>(2*n) != 0 {
		return nil, errors.Wrapf(ErrBadEncoding, "%#x has bits beyond %d cells", encoding, n)
	}
	x := encoding & b.full()
	o := (encoding >> n) & b.full()
	if x&o != 0 {
		return nil, errors.Wrapf(ErrBadEncoding, "%#x marks a cell twice", encoding)
	}
	b.marks = [2]uint64{x, o}
	return b, nil
}

// Reachable enumerates the encoding of every position reachable from the
// empty board when X moves first, players alternate and play stops at a win
// or a full board. The empty board is included. There are 5478 such
// positions on a 3x3 board.
func Reachable(width, height int) []uint64 {
	seen := make(map[uint64]struct{})
	var retVal []uint64

	var walk func(b *Board, toMove Player)
	walk = func(b *Board, toMove Player) {
		enc := b.Encode()
		if _, ok := seen[enc]; ok {
			return
		}
		seen[enc] = struct{}{}
		retVal = append(retVal, enc)

		for _, a := range b.AvailableActions() {
			next := b.Copy()
			won, err := next.Place(a, toMove)
			if err != nil {
				panic(err) // available actions are always legal
			}
			if won || next.Full() {
				if _, ok := seen[next.Encode()]; !ok {
					seen[next.Encode()] = struct{}{}
					retVal = append(retVal, next.Encode())
				}
				continue
			}
			walk(next, toMove.Opponent())
		}
	}
	walk(NewBoard(width, height), X)
	return retVal
}
