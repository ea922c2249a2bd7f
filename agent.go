package tictacq

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/tictacq/game"
	"github.com/tictacq/tabular"
)

// ErrNoMoves is returned when a move is requested on a finished board. It
// means the driver did not check for a terminal position.
var ErrNoMoves = errors.New("no moves available")

// ErrBoardSize is returned when an agent is asked to move on a board its
// table was not sized for.
var ErrBoardSize = errors.New("board does not fit the value table")

// An Agent is anything that can sit at the board.
type Agent interface {
	Name() string
	// DecideMove picks an action among board.AvailableActions().
	DecideMove(board *game.Board) (int, error)
	// NewGame is called before every episode.
	NewGame()
	// AssignReward is called exactly once at the end of every episode.
	AssignReward(reward float64)
}

func checkBoard(q *tabular.ValueTable, board *game.Board) error {
	w, h := board.Dims()
	states, actions := q.Dims()
	if w*h != actions || game.StateSpace(w, h) != states {
		return errors.Wrapf(ErrBoardSize, "%dx%d board, table has %d states and %d actions", w, h, states, actions)
	}
	return nil
}

type step struct {
	state  uint64
	action int
}

// Learner is an epsilon-greedy agent that learns a value table from terminal
// rewards. It records only its own moves and updates the table once per
// episode, walking its trajectory backwards.
type Learner struct {
	name        string
	conf        tabular.Config
	q           *tabular.ValueTable
	rand        *rand.Rand
	exploration float64
	trajectory  []step
	inEpisode   bool
}

// NewLearner allocates a learner with its own table for the canonical board.
func NewLearner(name string, conf tabular.Config, r *rand.Rand) *Learner {
	return &Learner{
		name:        name,
		conf:        conf,
		q:           tabular.New(game.StateSpace(game.Width, game.Height), game.Actions),
		rand:        r,
		exploration: conf.ExplorationInitial,
		trajectory:  make([]step, 0, (game.Actions+1)/2),
	}
}

func (a *Learner) Name() string { return a.name }

// Table is the learned policy.
func (a *Learner) Table() *tabular.ValueTable { return a.q }

// Exploration is the current probability of a random move.
func (a *Learner) Exploration() float64 { return a.exploration }

// InEpisode is true between the first move of an episode and its reward.
func (a *Learner) InEpisode() bool { return a.inEpisode }

// Trajectory returns a copy of the (state, action) pairs played so far this episode.
func (a *Learner) Trajectory() (states []uint64, actions []int) {
	for _, s := range a.trajectory {
		states = append(states, s.state)
		actions = append(actions, s.action)
	}
	return states, actions
}

// DecideMove explores with probability Exploration, otherwise plays the best
// known action. The choice is recorded for the end of episode update.
func (a *Learner) DecideMove(board *game.Board) (int, error) {
	moves := board.AvailableActions()
	if len(moves) == 0 {
		return -1, errors.Wrapf(ErrNoMoves, "%s asked to move", a.name)
	}
	if err := checkBoard(a.q, board); err != nil {
		return -1, errors.WithMessage(err, a.name)
	}

	state := board.Encode()
	var action int
	if a.rand.Float64() < a.exploration {
		action = moves[a.rand.Intn(len(moves))]
	} else {
		var err error
		if action, _, err = a.q.BestAction(state, moves, a.rand); err != nil {
			return -1, err
		}
	}

	a.trajectory = append(a.trajectory, step{state: state, action: action})
	a.inEpisode = true
	return action, nil
}

// NewGame starts a fresh trajectory and decays exploration towards its floor.
func (a *Learner) NewGame() {
	a.trajectory = a.trajectory[:0]
	a.inEpisode = false
	a.exploration = math.Max(a.conf.ExplorationMin, a.exploration*a.conf.ExplorationDecay)
}

// AssignReward propagates reward from the last move to the first, discounting
// it by DiscountRate at every step back.
func (a *Learner) AssignReward(reward float64) {
	for i := len(a.trajectory) - 1; i >= 0; i-- {
		s := a.trajectory[i]
		a.q.BlendUpdate(s.state, s.action, reward, a.conf.LearnRate)
		reward *= a.conf.DiscountRate
	}
	a.trajectory = a.trajectory[:0]
	a.inEpisode = false
}

// RandomAgent plays uniformly random moves. It serves as a benchmark.
type RandomAgent struct {
	name string
	rand *rand.Rand
}

func NewRandomAgent(name string, r *rand.Rand) *RandomAgent {
	return &RandomAgent{name: name, rand: r}
}

func (a *RandomAgent) Name() string { return a.name }

func (a *RandomAgent) DecideMove(board *game.Board) (int, error) {
	moves := board.AvailableActions()
	if len(moves) == 0 {
		return -1, errors.Wrapf(ErrNoMoves, "%s asked to move", a.name)
	}
	return moves[a.rand.Intn(len(moves))], nil
}

func (a *RandomAgent) NewGame()             {}
func (a *RandomAgent) AssignReward(float64) {}

// GreedyAgent always plays the best known action of a table it never writes
// to. Several greedy agents may share a table as long as nothing updates it.
type GreedyAgent struct {
	name string
	q    *tabular.ValueTable
	rand *rand.Rand
}

func NewGreedyAgent(name string, q *tabular.ValueTable, r *rand.Rand) *GreedyAgent {
	return &GreedyAgent{name: name, q: q, rand: r}
}

func (a *GreedyAgent) Name() string { return a.name }

func (a *GreedyAgent) DecideMove(board *game.Board) (int, error) {
	moves := board.AvailableActions()
	if len(moves) == 0 {
		return -1, errors.Wrapf(ErrNoMoves, "%s asked to move", a.name)
	}
	if err := checkBoard(a.q, board); err != nil {
		return -1, errors.WithMessage(err, a.name)
	}
	action, _, err := a.q.BestAction(board.Encode(), moves, a.rand)
	return action, err
}

func (a *GreedyAgent) NewGame()             {}
func (a *GreedyAgent) AssignReward(float64) {}
