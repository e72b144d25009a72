package mdp

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	sweeps []int
	deltas []float64
}

func (o *recordingObserver) ObserveSweep(sweep int, delta float64) {
	o.sweeps = append(o.sweeps, sweep)
	o.deltas = append(o.deltas, delta)
}

// shortest path to the goal from every cell of the reference world
func shortestPathPolicy() DeterministicPolicy {
	return DeterministicPolicy{
		{0, 0}: Right, {0, 1}: Right, {0, 2}: Right,
		{1, 0}: Up, {1, 2}: Up, {1, 3}: Up,
		{2, 0}: Up, {2, 1}: Left, {2, 2}: Up, {2, 3}: Up,
	}
}

func TestEvaluateReferenceScenario(t *testing.T) {
	w := referenceWorld(t)
	e := NewEvaluator()

	res, err := e.Evaluate(w, UniformPolicy{}, nil)
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.Equal(t, len(res.Deltas), res.Sweeps)
	assert.Less(t, res.Deltas[len(res.Deltas)-1], DefaultThreshold)

	V := res.Values
	assert.Len(t, V, 12)
	assert.Equal(t, 0.0, V[State{0, 3}])
	assert.Less(t, V[State{1, 3}], 0.0)

	// values fall off with distance from the goal along open paths
	assert.Greater(t, V[State{0, 2}], V[State{0, 1}])
	assert.Greater(t, V[State{0, 1}], V[State{0, 0}])
	assert.Greater(t, V[State{0, 0}], V[State{1, 0}])
	assert.Greater(t, V[State{1, 0}], V[State{2, 0}])
	assert.Greater(t, V[State{0, 2}], V[State{1, 2}])
}

func TestEvaluateGoalStaysZero(t *testing.T) {
	w := referenceWorld(t)
	e := NewEvaluator()

	V := ValueFunction{w.Goal(): 5, {0, 2}: 3}
	for i := 0; i < 20; i++ {
		require.NoError(t, e.EvalStep(w, UniformPolicy{}, V))
		assert.Equal(t, 0.0, V[w.Goal()])
	}

	// a policy that also names the goal does not change that
	p := TablePolicy{Default: DiscretePdf[Action]{Left: 1}}
	require.NoError(t, e.EvalStep(w, p, V))
	assert.Equal(t, 0.0, V[w.Goal()])
}

func TestEvalStepIsInPlace(t *testing.T) {
	w := referenceWorld(t)
	e := NewEvaluator()
	V := ValueFunction{}

	require.NoError(t, e.EvalStep(w, shortestPathPolicy(), V))

	// (1,2) reads (0,2) written earlier in the same sweep
	assert.Equal(t, 1.0, V[State{0, 2}])
	assert.InDelta(t, 0.9, V[State{1, 2}], 1e-12)
	// (0,1) reads (0,2) before it was written
	assert.Equal(t, 0.0, V[State{0, 1}])
}

func TestEvaluateDeterministicPolicyClosedForm(t *testing.T) {
	w := referenceWorld(t)
	e := NewEvaluator()

	res, err := e.Evaluate(w, shortestPathPolicy(), nil)
	require.NoError(t, err)

	want := map[State]float64{
		{0, 0}: 0.81, {0, 1}: 0.9, {0, 2}: 1, {0, 3}: 0,
		{1, 0}: 0.729, {1, 2}: 0.9, {1, 3}: 1,
		{2, 0}: 0.6561, {2, 1}: 0.59049, {2, 2}: 0.81, {2, 3}: -0.1,
	}
	for s, v := range want {
		assert.InDelta(t, v, res.Values[s], 1e-9, "state %v", s)
	}
	// no actions at the wall leaves it at zero
	assert.Equal(t, 0.0, res.Values[w.Wall()])

	episode, err := GenerateEpisode(w, shortestPathPolicy(), rand.New(rand.NewSource(1)), 100)
	require.NoError(t, err)
	assert.InDelta(t, res.Values[w.Start()], DiscountedReturn(episode, DefaultGamma), 1e-9)
}

func TestEvaluateDeltasShrink(t *testing.T) {
	w := referenceWorld(t)
	e := NewEvaluator()
	e.Threshold = 1e-8

	res, err := e.Evaluate(w, UniformPolicy{}, nil)
	require.NoError(t, err)
	require.Greater(t, len(res.Deltas), 2)

	for i := 1; i < len(res.Deltas); i++ {
		assert.LessOrEqual(t, res.Deltas[i], res.Deltas[i-1]+1e-12, "sweep %d", i+1)
	}
	assert.Less(t, res.Deltas[len(res.Deltas)-1], 1e-8)
}

func TestEvaluateDeterministic(t *testing.T) {
	w := referenceWorld(t)
	p := TablePolicy{
		Table: map[State]DiscretePdf[Action]{
			{2, 0}: {Up: 0.7, Right: 0.1, Down: 0.1, Left: 0.1},
		},
		Default: DiscretePdf[Action]{Up: 0.1, Down: 0.2, Left: 0.3, Right: 0.4},
	}

	a, err := NewEvaluator().Evaluate(w, p, nil)
	require.NoError(t, err)
	b, err := NewEvaluator().Evaluate(w, p, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Values, b.Values)
	assert.Equal(t, a.Deltas, b.Deltas)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestEvaluateResumesFromValues(t *testing.T) {
	w := referenceWorld(t)
	e := NewEvaluator()

	first, err := e.Evaluate(w, UniformPolicy{}, nil)
	require.NoError(t, err)

	V := first.Values.Clone()
	second, err := e.Evaluate(w, UniformPolicy{}, V)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Sweeps)
	assert.InDelta(t, first.Values[State{2, 0}], V[State{2, 0}], DefaultThreshold)
	// refined in place
	assert.Equal(t, V, second.Values)
}

func TestEvaluateSweepLimit(t *testing.T) {
	w := referenceWorld(t)
	obs := &recordingObserver{}
	e := &Evaluator{Gamma: 0.9, Threshold: 1e-12, MaxSweeps: 3, Observer: obs}

	res, err := e.Evaluate(w, UniformPolicy{}, nil)
	require.ErrorIs(t, err, ErrPartialConvergence)
	require.NotNil(t, res)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Sweeps)
	assert.Equal(t, []int{1, 2, 3}, obs.sweeps)
	assert.Equal(t, res.Deltas, obs.deltas)
	assert.Equal(t, 0.0, res.Values[w.Goal()])
}

func TestEvaluateZeroThresholdUsesDefault(t *testing.T) {
	w := referenceWorld(t)
	e := &Evaluator{Gamma: 0.9}

	res, err := e.Evaluate(w, UniformPolicy{}, nil)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, res.Deltas[len(res.Deltas)-1], DefaultThreshold)

	want, err := NewEvaluator().Evaluate(w, UniformPolicy{}, nil)
	require.NoError(t, err)
	assert.Equal(t, want.Sweeps, res.Sweeps)
	assert.Equal(t, want.Values, res.Values)
}

func TestEvaluateInvalidAction(t *testing.T) {
	w := referenceWorld(t)
	p := TablePolicy{Default: DiscretePdf[Action]{Up: 0.5, Action(9): 0.5}}

	_, err := NewEvaluator().Evaluate(w, p, nil)
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestEvaluateDoesNotNormalisePolicy(t *testing.T) {
	w, err := NewGridWorld([][]*float64{{f(1), f(1)}, {f(1), nil}}, State{0, 0}, State{1, 0}, State{1, 1})
	require.NoError(t, err)

	// probabilities sum to 0.5, so every backup is halved
	p := TablePolicy{Default: DiscretePdf[Action]{Up: 0.5}}
	e := &Evaluator{Gamma: 0, Threshold: 1e-9}

	res, err := e.Evaluate(w, p, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Values[State{1, 0}], 1e-12)
}

func TestEvaluateLogs(t *testing.T) {
	var buf bytes.Buffer
	e := NewEvaluator()
	e.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := e.Evaluate(referenceWorld(t), UniformPolicy{}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "policy evaluation converged")
	assert.Contains(t, buf.String(), res.RunID.String())
}

func TestPolicyEval(t *testing.T) {
	w := referenceWorld(t)
	V, err := PolicyEval(w, UniformPolicy{}, ValueFunction{}, 0.9, 0.001)
	require.NoError(t, err)

	res, err := NewEvaluator().Evaluate(w, UniformPolicy{}, nil)
	require.NoError(t, err)
	assert.Equal(t, res.Values, V)
}
