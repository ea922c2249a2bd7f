// Package render draws boards and learned values for humans.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/muesli/termenv"

	tictacq "github.com/tictacq"
	"github.com/tictacq/game"
)

// Console writes boards and heat-maps to a terminal, coloured when the
// terminal supports it.
type Console struct {
	out *termenv.Output
}

func NewConsole(w io.Writer) *Console {
	return &Console{out: termenv.NewOutput(w)}
}

// Clear clears the screen and homes the cursor.
func (c *Console) Clear() { c.out.ClearScreen() }

func (c *Console) Println(a ...interface{}) { fmt.Fprintln(c.out, a...) }

// Board draws the marks, one row per line:
//
//	 X | O |
//	-----------
func (c *Console) Board(b game.State) {
	fmt.Fprint(c.out, BoardString(b))
}

// HeatMap draws the learned value of every empty cell in b. Occupied cells
// show n/a.
func (c *Console) HeatMap(b game.State, q tictacq.ValueReader) {
	w, h := b.Dims()
	state := b.Encode()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.Get(x, y) != game.Empty {
				fmt.Fprint(c.out, "n/a       ")
				continue
			}
			v := q.Get(state, game.XYToAction(w, x, y))
			cell := fmt.Sprintf("%7.4f", v)
			fmt.Fprint(c.out, c.out.String(cell).Foreground(c.out.Color(heatHex(v))).String()+"   ")
		}
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, strings.TrimSpace(strings.Repeat("--------- ", w)))
	}
}

// BoardString renders b the way Console.Board does.
func BoardString(b game.State) string {
	w, h := b.Dims()
	var buf strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			buf.WriteString(strings.Repeat("-", 4*w-1) + "\n")
		}
		cells := make([]string, w)
		for x := range cells {
			cells[x] = " " + b.Get(x, y).String() + " "
		}
		buf.WriteString(strings.Join(cells, "|") + "\n")
	}
	return buf.String()
}

// heatHex maps [-1, 1] onto red through grey to green.
func heatHex(v float64) string {
	v = math.Max(-1, math.Min(1, v))
	const base = 0x80
	shift := int(math.Round(math.Abs(v) * 0x7f))
	r, g := base, base
	if v >= 0 {
		g += shift
		r -= shift
	} else {
		r += shift
		g -= shift
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, base-shift)
}
