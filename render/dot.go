package render

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"

	tictacq "github.com/tictacq"
	"github.com/tictacq/game"
)

// EpisodeGraph renders an episode as a DOT digraph, one node per position and
// one edge per move. Moves made by learner are labelled with the value q held
// for them; q may be nil.
func EpisodeGraph(moves []tictacq.Move, learner string, q tictacq.ValueReader) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("episode"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	addNode := func(name string, b *game.Board) error {
		return g.AddNode("episode", name, map[string]string{
			"shape":    "box",
			"fontname": "Courier",
			"label":    strconv.Quote(BoardString(b)),
		})
	}

	var last *game.Board
	for i, m := range moves {
		b, err := game.Decode(game.Width, game.Height, m.State)
		if err != nil {
			return "", errors.Wrapf(err, "move %d", i)
		}
		if err := addNode(nodeName(i), b); err != nil {
			return "", err
		}

		x, y := game.ActionToXY(game.Width, m.Action)
		label := fmt.Sprintf("%v (%d,%d)", m.Player, x, y)
		if q != nil && m.Agent == learner {
			label += fmt.Sprintf(" q=%.4f", q.Get(m.State, m.Action))
		}
		if err := g.AddEdge(nodeName(i), nodeName(i+1), true, map[string]string{
			"label": strconv.Quote(label),
		}); err != nil {
			return "", err
		}

		last = b.Copy()
		if _, err := last.Place(m.Action, m.Player); err != nil {
			return "", errors.Wrapf(err, "move %d", i)
		}
	}
	if last != nil {
		if err := addNode(nodeName(len(moves)), last); err != nil {
			return "", err
		}
	}
	return g.String(), nil
}

func nodeName(i int) string { return fmt.Sprintf("s%d", i) }
