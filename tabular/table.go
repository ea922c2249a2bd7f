// Package tabular holds the learned action values of a tabular agent.
package tabular

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrNoCandidates is returned when a best action is requested for a position
// with nothing left to play.
var ErrNoCandidates = errors.New("no candidate actions")

// ErrNotFinite is returned when no candidate has a comparable estimate.
var ErrNotFinite = errors.New("no finite estimate among candidates")

// ValueTable maps (state encoding, action) to the running estimate of the
// discounted reward. Rows are state encodings, columns are actions. Every entry
// starts at 0.
//
// ValueTable has a single writer. Concurrent reads are fine as long as nothing
// is writing.
type ValueTable struct {
	q *mat.Dense
}

// New allocates a zeroed table for the given number of states and actions.
func New(states, actions int) *ValueTable {
	return &ValueTable{q: mat.NewDense(states, actions, nil)}
}

// Dims returns the number of states and actions.
func (t *ValueTable) Dims() (states, actions int) { return t.q.Dims() }

// Get returns the stored estimate, 0 if it was never written.
func (t *ValueTable) Get(state uint64, action int) float64 {
	return t.q.At(int(state), action)
}

// Values returns the estimates of the given actions in state.
func (t *ValueTable) Values(state uint64, actions []int) []float64 {
	retVal := make([]float64, len(actions))
	for i, a := range actions {
		retVal[i] = t.Get(state, a)
	}
	return retVal
}

// Row returns a copy of every action value for state.
func (t *ValueTable) Row(state uint64) []float64 {
	return mat.Row(nil, int(state), t.q)
}

// BlendUpdate moves the estimate towards target as an exponentially weighted
// moving average: v = v*(1-learnRate) + target*learnRate.
func (t *ValueTable) BlendUpdate(state uint64, action int, target, learnRate float64) {
	i := int(state)
	t.q.Set(i, action, t.q.At(i, action)*(1-learnRate)+target*learnRate)
}

// BestAction returns the candidate with the highest estimate. Ties are
// compared with exact equality and broken uniformly at random.
func (t *ValueTable) BestAction(state uint64, candidates []int, r *rand.Rand) (action int, value float64, err error) {
	if len(candidates) == 0 {
		return -1, 0, errors.Wrapf(ErrNoCandidates, "state %#x", state)
	}

	value = math.Inf(-1)
	ties := make([]int, 0, len(candidates))
	for _, a := range candidates {
		v := t.Get(state, a)
		switch {
		case v > value:
			value = v
			ties = append(ties[:0], a)
		case v == value:
			ties = append(ties, a)
		}
	}

	if len(ties) == 0 {
		// only NaN estimates
		return -1, value, errors.Wrapf(ErrNotFinite, "state %#x", state)
	}
	action = ties[0]
	if len(ties) > 1 {
		action = ties[r.Intn(len(ties))]
	}
	return action, value, nil
}
