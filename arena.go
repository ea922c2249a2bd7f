package tictacq

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tictacq/game"
)

// Arena plays episodes between two agents. First always plays X and moves
// first. Each agent receives exactly one terminal reward per episode, whether
// it won, lost or drew and whether or not it made the last move.
type Arena struct {
	First, Second Agent
	Rewards       Rewards

	listener Listener
	logger   *logrus.Entry

	// state of the last episode
	board *game.Board
	moves []Move

	// stats
	first, second Record
	episodes      int
}

// NewArena seats two agents.
func NewArena(first, second Agent, rewards Rewards) *Arena {
	return &Arena{
		First:   first,
		Second:  second,
		Rewards: rewards,
		logger:  logrus.NewEntry(logrus.StandardLogger()),
		moves:   make([]Move, 0, game.Actions),
	}
}

// WithListener attaches a listener called on every move and episode end.
func (a *Arena) WithListener(l Listener) *Arena {
	a.listener = l
	return a
}

// WithLogger replaces the arena's logger.
func (a *Arena) WithLogger(l *logrus.Entry) *Arena {
	a.logger = l
	return a
}

// Play runs one episode to completion. An error means one of the agents
// broke the rules or was asked to move on a finished board; both are bugs and
// the episode is abandoned without rewards.
func (a *Arena) Play() (Outcome, error) {
	a.First.NewGame()
	a.Second.NewGame()
	a.board = game.New()
	a.moves = a.moves[:0]

	seats := [2]Agent{a.First, a.Second}
	marks := [2]game.Player{game.X, game.O}

	var outcome Outcome
	for turn := 0; ; turn++ {
		seat := turn % 2
		agent := seats[seat]

		state := a.board.Encode()
		action, err := agent.DecideMove(a.board)
		if err != nil {
			return Draw, errors.WithMessagef(err, "episode %d, turn %d", a.episodes, turn)
		}
		won, err := a.board.Place(action, marks[seat])
		if err != nil {
			return Draw, errors.WithMessagef(err, "%s played %d in episode %d", agent.Name(), action, a.episodes)
		}

		m := Move{Player: marks[seat], Agent: agent.Name(), State: state, Action: action}
		a.moves = append(a.moves, m)
		if a.listener != nil {
			a.listener.OnMove(a.board, m)
		}

		if won {
			outcome = FirstWon
			if seat == 1 {
				outcome = SecondWon
			}
			break
		}
		if a.board.Full() {
			outcome = Draw
			break
		}
	}

	a.reward(outcome)
	a.episodes++
	a.logger.WithFields(logrus.Fields{
		"episode": a.episodes,
		"outcome": outcome,
		"moves":   len(a.moves),
	}).Debug("episode finished")

	if a.listener != nil {
		a.listener.OnEpisodeEnd(a.board, outcome)
	}
	return outcome, nil
}

func (a *Arena) reward(o Outcome) {
	switch o {
	case FirstWon:
		a.First.AssignReward(a.Rewards.Win)
		a.Second.AssignReward(a.Rewards.Loss)
		a.first.Wins++
		a.second.Losses++
	case SecondWon:
		a.First.AssignReward(a.Rewards.Loss)
		a.Second.AssignReward(a.Rewards.Win)
		a.first.Losses++
		a.second.Wins++
	default:
		a.First.AssignReward(a.Rewards.Draw)
		a.Second.AssignReward(a.Rewards.Draw)
		a.first.Draws++
		a.second.Draws++
	}
}

// Stats returns the records of both seats since the last ResetStats.
func (a *Arena) Stats() (first, second Record) { return a.first, a.second }

func (a *Arena) ResetStats() {
	a.first = Record{}
	a.second = Record{}
}

// Episodes played so far.
func (a *Arena) Episodes() int { return a.episodes }

// Board is the final position of the last episode.
func (a *Arena) Board() *game.Board { return a.board }

// Moves of the last episode, in order.
func (a *Arena) Moves() []Move { return a.moves }
