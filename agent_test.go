package tictacq

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tictacq/game"
	"github.com/tictacq/tabular"
)

func alwaysExplore() tabular.Config {
	conf := tabular.DefaultConfig()
	conf.ExplorationInitial = 1
	conf.ExplorationDecay = 1
	return conf
}

func TestLearnerBackwardReward(t *testing.T) {
	const (
		R = 1.0
		g = 0.9
		L = 0.25
	)
	conf := alwaysExplore()
	conf.DiscountRate = g
	conf.LearnRate = L
	a := NewLearner("A", conf, rand.New(rand.NewSource(3)))

	a.NewGame()
	assert.False(t, a.InEpisode())
	b := game.New()
	p := game.X
	for i := 0; i < 3; i++ {
		action, err := a.DecideMove(b)
		require.NoError(t, err)
		_, err = b.Place(action, p)
		require.NoError(t, err)
		// the opponent's move is never recorded
		opp := b.AvailableActions()[0]
		_, err = b.Place(opp, p.Opponent())
		require.NoError(t, err)
	}
	assert.True(t, a.InEpisode())

	states, actions := a.Trajectory()
	require.Len(t, states, 3)
	require.Len(t, actions, 3)

	a.AssignReward(R)
	assert.False(t, a.InEpisode())

	q := a.Table()
	assert.InDelta(t, R*L, q.Get(states[2], actions[2]), 1e-12)
	assert.InDelta(t, R*g*L, q.Get(states[1], actions[1]), 1e-12)
	assert.InDelta(t, R*g*g*L, q.Get(states[0], actions[0]), 1e-12)

	s, _ := a.Trajectory()
	assert.Empty(t, s, "trajectory is consumed by the reward")
}

func TestLearnerExplorationDecay(t *testing.T) {
	conf := tabular.DefaultConfig()
	conf.ExplorationInitial = 1
	conf.ExplorationMin = 0.2
	conf.ExplorationDecay = 0.5
	a := NewLearner("A", conf, rand.New(rand.NewSource(1)))

	assert.Equal(t, 1.0, a.Exploration())
	for _, want := range []float64{0.5, 0.25, 0.2, 0.2} {
		a.NewGame()
		assert.InDelta(t, want, a.Exploration(), 1e-12)
	}
}

func TestLearnerDecayPerEpisodeNotPerMove(t *testing.T) {
	conf := tabular.DefaultConfig()
	conf.ExplorationDecay = 0.5
	conf.ExplorationMin = 0
	a := NewLearner("A", conf, rand.New(rand.NewSource(1)))
	a.NewGame()
	before := a.Exploration()

	b := game.New()
	for i := 0; i < 4; i++ {
		action, err := a.DecideMove(b)
		require.NoError(t, err)
		_, err = b.Place(action, game.X)
		require.NoError(t, err)
	}
	assert.Equal(t, before, a.Exploration())
}

func TestLearnerNewGameResetsTrajectory(t *testing.T) {
	a := NewLearner("A", alwaysExplore(), rand.New(rand.NewSource(1)))
	_, err := a.DecideMove(game.New())
	require.NoError(t, err)
	s, _ := a.Trajectory()
	require.Len(t, s, 1)

	a.NewGame()
	s, _ = a.Trajectory()
	assert.Empty(t, s)
	assert.False(t, a.InEpisode())
}

func TestLearnerExploits(t *testing.T) {
	conf := tabular.DefaultConfig()
	conf.ExplorationInitial = 0
	conf.ExplorationMin = 0
	a := NewLearner("A", conf, rand.New(rand.NewSource(1)))

	b := game.New()
	a.Table().BlendUpdate(b.Encode(), 4, 1, 0.5)
	a.Table().BlendUpdate(b.Encode(), 0, -1, 0.5)
	for i := 0; i < 50; i++ {
		a.NewGame()
		action, err := a.DecideMove(b)
		require.NoError(t, err)
		assert.Equal(t, 4, action)
	}
}

func TestAgentsRejectFinishedBoard(t *testing.T) {
	b := game.New()
	for i, p := range []game.Player{game.X, game.O, game.X, game.O, game.O, game.X, game.X, game.X, game.O} {
		_, err := b.Place(i, p)
		require.NoError(t, err)
	}
	require.Empty(t, b.AvailableActions())

	r := rand.New(rand.NewSource(1))
	learner := NewLearner("A", alwaysExplore(), r)
	agents := []Agent{
		learner,
		NewRandomAgent("random", r),
		NewGreedyAgent("greedy", learner.Table(), r),
	}
	for _, a := range agents {
		_, err := a.DecideMove(b)
		require.Error(t, err, a.Name())
		assert.Equal(t, ErrNoMoves, errors.Cause(err))
	}
	s, _ := learner.Trajectory()
	assert.Empty(t, s)
}

func TestAgentsRejectOtherBoardSizes(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	explorer := NewLearner("A", alwaysExplore(), r)
	exploitConf := tabular.DefaultConfig()
	exploitConf.ExplorationInitial = 0
	exploitConf.ExplorationMin = 0
	exploiter := NewLearner("B", exploitConf, r)
	agents := []Agent{
		explorer,
		exploiter,
		NewGreedyAgent("greedy", explorer.Table(), r),
	}

	for _, b := range []*game.Board{game.NewBoard(4, 4), game.NewBoard(3, 4), game.NewBoard(2, 2)} {
		for _, a := range agents {
			_, err := a.DecideMove(b)
			require.Error(t, err, a.Name())
			assert.Equal(t, ErrBoardSize, errors.Cause(err))
		}
	}

	s, _ := explorer.Trajectory()
	assert.Empty(t, s)
	explorer.AssignReward(1)

	action, err := explorer.DecideMove(game.New())
	require.NoError(t, err)
	assert.True(t, action >= 0 && action < game.Actions)
}

func TestRandomAgentCoversAllMoves(t *testing.T) {
	a := NewRandomAgent("random", rand.New(rand.NewSource(9)))
	b := game.New()
	_, _ = b.Place(4, game.X)

	seen := make(map[int]int)
	for i := 0; i < 4000; i++ {
		m, err := a.DecideMove(b)
		require.NoError(t, err)
		seen[m]++
	}
	assert.Len(t, seen, 8, "the last candidate must be reachable too")
	assert.NotContains(t, seen, 4)
}

func TestGreedyAgentDoesNotWrite(t *testing.T) {
	learner := NewLearner("A", alwaysExplore(), rand.New(rand.NewSource(1)))
	g := NewGreedyAgent("greedy", learner.Table(), rand.New(rand.NewSource(2)))
	b := game.New()
	g.NewGame()
	_, err := g.DecideMove(b)
	require.NoError(t, err)
	g.AssignReward(1)
	assert.Equal(t, make([]float64, game.Actions), learner.Table().Row(b.Encode()))
}

func TestTwoExploringLearnersFiveMoves(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		r := rand.New(rand.NewSource(seed))
		agents := [2]Agent{NewLearner("A", alwaysExplore(), r), NewLearner("B", alwaysExplore(), r)}
		marks := [2]game.Player{game.X, game.O}
		b := game.New()
		for i := 0; i < 5; i++ {
			action, err := agents[i%2].DecideMove(b)
			require.NoError(t, err)
			_, err = b.Place(action, marks[i%2])
			require.NoError(t, err)
		}
		assert.Len(t, b.AvailableActions(), 4)
	}
}
