package tictacq

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Trainer is the entry point of a training run. It owns an arena whose first
// seat is always a Learner.
type Trainer struct {
	*Arena

	conf    Config
	learner *Learner
	rand    *rand.Rand
	logger  *logrus.Entry
	run     uuid.UUID

	// win ratio of the learner for every completed window
	history []float64
}

// NewSelfPlay creates a run where two learners with private tables play each other.
func NewSelfPlay(conf Config) (*Trainer, error) {
	return newTrainer(conf, func(r *rand.Rand) Agent {
		return NewLearner("B", conf.Table, r)
	})
}

// NewVsRandom creates a run where a learner plays a random benchmark opponent.
func NewVsRandom(conf Config) (*Trainer, error) {
	return newTrainer(conf, func(r *rand.Rand) Agent {
		return NewRandomAgent("random", r)
	})
}

func newTrainer(conf Config, opponent func(*rand.Rand) Agent) (*Trainer, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	run := uuid.New()
	logger := logrus.WithFields(logrus.Fields{"run": run.String(), "name": conf.Name})

	learner := NewLearner("A", conf.Table, r)
	arena := NewArena(learner, opponent(r), conf.Rewards).WithLogger(logger)

	return &Trainer{
		Arena:   arena,
		conf:    conf,
		learner: learner,
		rand:    r,
		logger:  logger,
		run:     run,
	}, nil
}

// Learner is the agent in the first seat.
func (t *Trainer) Learner() *Learner { return t.learner }

// Run identifies the training run in logs.
func (t *Trainer) Run() uuid.UUID { return t.run }

// Logger returns the run's logger.
func (t *Trainer) Logger() *logrus.Entry { return t.logger }

// History returns the learner's win ratio for each completed window.
func (t *Trainer) History() []float64 { return t.history }

// Summary is the mean and standard deviation of the windowed win ratios.
func (t *Trainer) Summary() (mean, std float64) {
	switch len(t.history) {
	case 0:
		return 0, 0
	case 1:
		return t.history[0], 0
	}
	return stat.MeanStdDev(t.history, nil)
}

// Learn plays episodes one after the other. Every Window episodes of the run,
// counted across calls, it logs the learner's win ratio over the window and
// starts a new window.
func (t *Trainer) Learn(episodes int) error {
	for e := 1; e <= episodes; e++ {
		if _, err := t.Play(); err != nil {
			return errors.Wrapf(err, "learning episode %d", t.Episodes()+1)
		}
		if t.Episodes()%t.conf.Window == 0 {
			t.closeWindow()
		}
	}
	return nil
}

func (t *Trainer) closeWindow() {
	first, second := t.Stats()
	t.history = append(t.history, first.WinRatio())
	t.logger.WithFields(logrus.Fields{
		"epoch":       t.Episodes(),
		"exploration": t.learner.Exploration(),
		"win_ratio":   first.WinRatio(),
		"first":       first.String(),
		"second":      second.String(),
	}).Info("window finished")
	t.ResetStats()
}

// Evaluate plays games between a frozen greedy copy of the learner and random
// opponents, spread over workers. The table is only read, so Learn must not
// run concurrently.
func (t *Trainer) Evaluate(ctx context.Context, games, workers int) (Record, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Record, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		n := games / workers
		if w < games%workers {
			n++
		}
		// seeds are drawn here, t.rand is not safe for concurrent use
		greedy := NewGreedyAgent("greedy", t.learner.Table(), rand.New(rand.NewSource(t.rand.Int63())))
		random := NewRandomAgent("random", rand.New(rand.NewSource(t.rand.Int63())))
		arena := NewArena(greedy, random, t.conf.Rewards).WithLogger(t.logger.WithField("worker", w))

		g.Go(func() error {
			for i := 0; i < n; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if _, err := arena.Play(); err != nil {
					return err
				}
			}
			results[w], _ = arena.Stats()
			return nil
		})
	}

	var total Record
	if err := g.Wait(); err != nil {
		return total, errors.Wrap(err, "evaluation")
	}
	for _, r := range results {
		total.add(r)
	}
	t.logger.WithFields(logrus.Fields{
		"games":   total.Games(),
		"workers": workers,
		"record":  total.String(),
	}).Info("evaluation finished")
	return total, nil
}
