// This command enumerates every reachable tic-tac-toe position, checks that
// the board encoding gives each one its own table row, and writes the
// encodings to a file, one per line.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tictacq/game"
)

var (
	width  = flag.Int("width", game.Width, "board width")
	height = flag.Int("height", game.Height, "board height")
	path   = flag.String("path", "states.txt", "file to write the encodings to")
)

func main() {
	flag.Parse()

	states := game.Reachable(*width, *height)
	space := uint64(game.StateSpace(*width, *height))

	seen := make(map[uint64]struct{}, len(states))
	for _, enc := range states {
		if _, ok := seen[enc]; ok {
			logrus.Fatalf("encoding %#x produced twice", enc)
		}
		seen[enc] = struct{}{}
		if enc >= space {
			logrus.Fatalf("encoding %#x outside state space %d", enc, space)
		}
		b, err := game.Decode(*width, *height, enc)
		if err != nil {
			logrus.Fatalf("%+v", err)
		}
		if b.Encode() != enc {
			logrus.Fatalf("encoding %#x does not round trip", enc)
		}
	}

	f, err := os.Create(*path)
	if err != nil {
		logrus.Fatal(err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, enc := range states {
		if _, err := fmt.Fprintf(w, "%d\n", enc); err != nil {
			logrus.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		logrus.Fatal(err)
	}

	logrus.WithFields(logrus.Fields{
		"positions":   len(states),
		"state_space": space,
		"fill":        fmt.Sprintf("%.2f%%", 100*float64(len(states))/float64(space)),
	}).Infof("encodings written to %s", *path)
}
