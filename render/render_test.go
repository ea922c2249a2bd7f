package render

import (
	"bytes"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tictacq "github.com/tictacq"
	"github.com/tictacq/game"
	"github.com/tictacq/tabular"
)

func sampleBoard(t *testing.T) *game.Board {
	b := game.New()
	_, err := b.Place(0, game.X)
	require.NoError(t, err)
	_, err = b.Place(4, game.O)
	require.NoError(t, err)
	return b
}

func TestBoardString(t *testing.T) {
	b := sampleBoard(t)
	assert.Equal(t, b.String(), BoardString(b))
}

func TestConsoleHeatMap(t *testing.T) {
	b := sampleBoard(t)
	q := tabular.New(game.StateSpace(game.Width, game.Height), game.Actions)
	q.BlendUpdate(b.Encode(), 8, 1, 0.5)
	q.BlendUpdate(b.Encode(), 1, -1, 0.25)

	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Board(b)
	c.HeatMap(b, q)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, b.String()))
	assert.Equal(t, 2, strings.Count(out, "n/a"))
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, out, "-0.2500")
	assert.Equal(t, 5, strings.Count(out, " 0.0000"))
}

func TestHeatHex(t *testing.T) {
	assert.Equal(t, "#808080", heatHex(0))
	assert.Equal(t, "#01ff01", heatHex(1))
	assert.Equal(t, "#ff0101", heatHex(-3))
}

func TestNormalize(t *testing.T) {
	v := []float32{0.5, -2, 1}
	Normalize(v)
	assert.InDeltaSlice(t, []float32{0.25, -1, 0.5}, v, 1e-6)

	zeros := []float32{0, 0}
	Normalize(zeros)
	assert.Equal(t, []float32{0, 0}, zeros)

	Normalize(nil)
}

func TestHeatMapPNG(t *testing.T) {
	b := sampleBoard(t)
	q := tabular.New(game.StateSpace(game.Width, game.Height), game.Actions)
	q.BlendUpdate(b.Encode(), 8, 1, 1)
	q.BlendUpdate(b.Encode(), 2, -1, 1)

	var buf bytes.Buffer
	require.NoError(t, HeatMapPNG(&buf, b, q))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3*cellSize, img.Bounds().Dx())
	assert.Equal(t, 3*cellSize, img.Bounds().Dy())

	// corners of cells stay clear of labels and grid lines
	r, g, _, _ := img.At(2*cellSize+5, 2*cellSize+5).RGBA()
	assert.Greater(t, g, r, "positive cell is green")
	r, g, _, _ = img.At(2*cellSize+5, 5).RGBA()
	assert.Greater(t, r, g, "negative cell is red")
}

func TestEpisodeGraph(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	conf := tabular.DefaultConfig()
	learner := tictacq.NewLearner("A", conf, r)
	arena := tictacq.NewArena(learner, tictacq.NewRandomAgent("random", r), tictacq.DefaultRewards())
	_, err := arena.Play()
	require.NoError(t, err)

	dot, err := EpisodeGraph(arena.Moves(), "A", learner.Table())
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph episode")
	assert.Contains(t, dot, "->")
	assert.Contains(t, dot, "q=")
	assert.Contains(t, dot, nodeName(len(arena.Moves())))

	empty, err := EpisodeGraph(nil, "A", nil)
	require.NoError(t, err)
	assert.NotContains(t, empty, "s0")
}
