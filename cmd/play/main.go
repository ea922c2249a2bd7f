// Command play trains an agent against the random benchmark, then replays its
// last games on the console with a heat-map of the values it learned.
package main

import (
	"bufio"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	tictacq "github.com/tictacq"
	"github.com/tictacq/game"
	"github.com/tictacq/render"
)

var (
	envFile  = flag.String("env", ".env", "optional dotenv file with TICTACQ_* overrides")
	episodes = flag.Int("episodes", 0, "training episodes before watching (0 keeps the configured value)")
	watch    = flag.Int("watch", 5, "games to watch after training")
	step     = flag.Bool("step", true, "wait for enter after every move")
	delay    = flag.Duration("delay", 500*time.Millisecond, "pause between moves when not stepping")
	pngPath  = flag.String("png", "", "write a heat-map of the opening position to this file")
	dotPath  = flag.String("dot", "", "write the last watched game as a DOT graph to this file")
)

type watcher struct {
	con    *render.Console
	q      tictacq.ValueReader
	reader *bufio.Reader
	step   bool
	delay  time.Duration
}

// pause waits for enter when stepping. Once stdin is exhausted it falls back
// to the delay for the remaining moves.
func (w *watcher) pause() {
	if w.step {
		_, err := w.reader.ReadString('\n')
		if err == nil {
			return
		}
		logrus.Warnf("stepping disabled: %v", err)
		w.step = false
	}
	time.Sleep(w.delay)
}

// trainingEpisodes applies the -episodes flag on top of the configuration.
func trainingEpisodes(conf tictacq.Config, flagged int) int {
	if flagged > 0 {
		return flagged
	}
	return conf.Episodes
}

func (w *watcher) OnMove(board *game.Board, m tictacq.Move) {
	w.con.Clear()
	w.con.Println(m.Agent, "played", m.Player)
	w.con.Board(board)
	w.con.Println()
	w.con.HeatMap(board, w.q)
	w.pause()
}

func (w *watcher) OnEpisodeEnd(board *game.Board, o tictacq.Outcome) {
	w.con.Println(o)
	w.pause()
}

func main() {
	flag.Parse()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := tictacq.LoadEnv(*envFile); err != nil {
		logrus.Fatalf("error loading environment: %v", err)
	}
	conf, err := tictacq.FromEnv(tictacq.DefaultConfig())
	if err != nil {
		logrus.Fatalf("error reading environment: %v", err)
	}
	t, err := tictacq.NewVsRandom(conf)
	if err != nil {
		logrus.Fatalf("error creating trainer: %v", err)
	}
	log := t.Logger()

	n := trainingEpisodes(conf, *episodes)
	log.WithField("episodes", n).Info("training")
	if err := t.Learn(n); err != nil {
		log.Fatalf("error when learning: %+v", err)
	}

	q := t.Learner().Table()
	if *pngPath != "" {
		f, err := os.Create(*pngPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := render.HeatMapPNG(f, game.New(), q); err != nil {
			log.Fatalf("error writing heat-map: %+v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
		log.Infof("heat-map written to %s", *pngPath)
	}

	t.WithListener(&watcher{
		con:    render.NewConsole(os.Stdout),
		q:      q,
		reader: bufio.NewReader(os.Stdin),
		step:   *step,
		delay:  *delay,
	})
	t.ResetStats()
	for i := 0; i < *watch; i++ {
		if _, err := t.Play(); err != nil {
			log.Fatalf("error when playing: %+v", err)
		}
	}
	first, _ := t.Stats()
	log.Infof("watched games: %v", first)

	if *dotPath != "" && *watch > 0 {
		dot, err := render.EpisodeGraph(t.Moves(), t.Learner().Name(), q)
		if err != nil {
			log.Fatalf("error building graph: %+v", err)
		}
		if err := os.WriteFile(*dotPath, []byte(dot), 0o644); err != nil {
			log.Fatal(err)
		}
		log.Infof("episode graph written to %s", *dotPath)
	}
}
