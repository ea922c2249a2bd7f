package tictacq

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"

	"github.com/tictacq/game"
	"github.com/tictacq/tabular"
)

// Config for a training run.
type Config struct {
	Name     string         `json:"name"`
	Table    tabular.Config `json:"table"`
	Rewards  Rewards        `json:"rewards"`
	Episodes int            `json:"episodes"`
	// number of episodes per reported win ratio
	Window int `json:"window"`
	// rng seed; 0 seeds from the clock
	Seed int64 `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Name:     "tic-tac-toe",
		Table:    tabular.DefaultConfig(),
		Rewards:  DefaultRewards(),
		Episodes: 90000,
		Window:   10000,
	}
}

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var errs error
	if err := c.Table.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if c.Episodes < 0 {
		errs = multierror.Append(errs, fmt.Errorf("episodes %d is negative", c.Episodes))
	}
	if c.Window <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("window %d must be positive", c.Window))
	}
	for _, r := range []struct {
		name string
		v    float64
	}{{"win", c.Rewards.Win}, {"loss", c.Rewards.Loss}, {"draw", c.Rewards.Draw}} {
		if math.IsNaN(r.v) || math.IsInf(r.v, 0) {
			errs = multierror.Append(errs, fmt.Errorf("%s reward %v is not finite", r.name, r.v))
		}
	}
	return errs
}

// Rewards are the terminal rewards issued by the arena.
type Rewards struct {
	Win  float64 `json:"win"`
	Loss float64 `json:"loss"`
	Draw float64 `json:"draw"`
}

func DefaultRewards() Rewards { return Rewards{Win: 1, Loss: -1, Draw: 0} }

// Outcome of an episode, from the seating's point of view.
type Outcome int

const (
	Draw Outcome = iota
	FirstWon
	SecondWon
)

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "draw"
	case FirstWon:
		return "first won"
	case SecondWon:
		return "second won"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Move is one placement in an episode. State is the encoding before the move.
type Move struct {
	Player game.Player
	Agent  string
	State  uint64
	Action int
}

// Record tallies the results of one seat.
type Record struct {
	Wins   int
	Losses int
	Draws  int
}

func (r Record) Games() int { return r.Wins + r.Losses + r.Draws }

// WinRatio is Wins over games played, 0 before any game.
func (r Record) WinRatio() float64 {
	if r.Games() == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games())
}

func (r *Record) add(o Record) {
	r.Wins += o.Wins
	r.Losses += o.Losses
	r.Draws += o.Draws
}

func (r Record) String() string {
	return fmt.Sprintf("W%d/L%d/D%d (%.3f)", r.Wins, r.Losses, r.Draws, r.WinRatio())
}

// Listener observes an arena.
type Listener interface {
	OnMove(board *game.Board, m Move)
	OnEpisodeEnd(board *game.Board, o Outcome)
}

// ValueReader is the read-only access presentation code has to learned values.
type ValueReader interface {
	Get(state uint64, action int) float64
}
