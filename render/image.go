package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/chewxy/math32"
	"github.com/golang/freetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
	"gorgonia.org/vecf32"

	tictacq "github.com/tictacq"
	"github.com/tictacq/game"
)

const (
	cellSize = 120
	fontSize = 22
)

// Normalize scales values in place so the largest magnitude becomes 1. A
// slice of zeros is left alone.
func Normalize(values []float32) {
	if len(values) == 0 {
		return
	}
	hi := math32.Abs(values[vecf32.Argmax(values)])
	lo := math32.Abs(values[vecf32.Argmin(values)])
	if m := math32.Max(hi, lo); m > 0 {
		vecf32.Scale(values, 1/m)
	}
}

// HeatMapPNG writes a PNG of b where every empty cell is shaded by its learned
// value, relative to the strongest value on the board, and labelled with it.
func HeatMapPNG(w io.Writer, b game.State, q tictacq.ValueReader) error {
	width, height := b.Dims()
	state := b.Encode()

	actions := b.AvailableActions()
	values := make([]float32, len(actions))
	for i, a := range actions {
		values[i] = float32(q.Get(state, a))
	}
	shades := make([]float32, len(values))
	copy(shades, values)
	Normalize(shades)

	img := image.NewRGBA(image.Rect(0, 0, width*cellSize, height*cellSize))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return errors.Wrap(err, "parsing font")
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(fontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)

	label := func(x, y int, s string) error {
		px := x*cellSize + cellSize/2 - len(s)*fontSize/4
		py := y*cellSize + cellSize/2 + fontSize/3
		_, err := ctx.DrawString(s, freetype.Pt(px, py))
		return err
	}

	for i, a := range actions {
		x, y := game.ActionToXY(width, a)
		fill(img, x, y, shade(shades[i]))
		if err := label(x, y, fmt.Sprintf("%.3f", values[i])); err != nil {
			return errors.Wrapf(err, "labelling cell (%d, %d)", x, y)
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := b.Get(x, y)
			if p == game.Empty {
				continue
			}
			fill(img, x, y, color.RGBA{0xdd, 0xdd, 0xdd, 0xff})
			if err := label(x, y, p.String()); err != nil {
				return errors.Wrapf(err, "labelling cell (%d, %d)", x, y)
			}
		}
	}
	grid(img, width, height)

	return errors.Wrap(png.Encode(w, img), "encoding png")
}

// shade maps a normalised value to red (negative) or green (positive).
func shade(v float32) color.RGBA {
	v = math32.Max(-1, math32.Min(1, v))
	k := uint8(math32.Abs(v)*0xbf + 0.5)
	if v >= 0 {
		return color.RGBA{0xff - k, 0xff, 0xff - k, 0xff}
	}
	return color.RGBA{0xff, 0xff - k, 0xff - k, 0xff}
}

func fill(img *image.RGBA, x, y int, c color.Color) {
	r := image.Rect(x*cellSize, y*cellSize, (x+1)*cellSize, (y+1)*cellSize)
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func grid(img *image.RGBA, width, height int) {
	b := img.Bounds()
	for x := 1; x < width; x++ {
		draw.Draw(img, image.Rect(x*cellSize-1, 0, x*cellSize+1, b.Max.Y), image.Black, image.Point{}, draw.Src)
	}
	for y := 1; y < height; y++ {
		draw.Draw(img, image.Rect(0, y*cellSize-1, b.Max.X, y*cellSize+1), image.Black, image.Point{}, draw.Src)
	}
}
