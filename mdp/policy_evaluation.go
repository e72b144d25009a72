package mdp

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

const (
	DefaultGamma     = 0.9
	DefaultThreshold = 0.001
)

// SweepObserver is notified after every sweep.
type SweepObserver interface {
	ObserveSweep(sweep int, delta float64)
}

// Evaluator runs iterative policy evaluation. Sweeps update the value table
// in place, so a backup later in a sweep sees values written earlier in the
// same sweep.
type Evaluator struct {
	Gamma float64
	// Threshold <= 0 is treated as DefaultThreshold.
	Threshold float64
	// MaxSweeps caps the number of sweeps; 0 means run until convergence.
	MaxSweeps int
	Observer  SweepObserver
	Logger    *slog.Logger
}

type Result struct {
	RunID     uuid.UUID
	Values    ValueFunction
	Sweeps    int
	Deltas    []float64
	Converged bool
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		Gamma:     DefaultGamma,
		Threshold: DefaultThreshold,
	}
}

// EvalStep applies the Bellman expectation backup once to every state.
func (e *Evaluator) EvalStep(env Environment, policy Policy, V ValueFunction) error {
	for s0 := range env.States() {
		if env.IsTerminal(s0) {
			V[s0] = 0
			continue
		}
		aPdf := policy.Act(s0)
		var v1 float64
		for _, a := range aPdf.Outcomes() {
			s1, err := env.Transition(s0, a)
			if err != nil {
				return fmt.Errorf("state %v: %w", s0, err)
			}
			r, err := env.Reward(s0, a, s1)
			if err != nil {
				return fmt.Errorf("state %v action %v: %w", s0, a, err)
			}
			v1 += float64(aPdf[a]) * (float64(r) + e.Gamma*V.Estimate(s1))
		}
		V[s0] = v1
	}
	return nil
}

// Evaluate sweeps until the largest per-state change drops below the
// threshold. A nil V starts from zero; otherwise V is refined in place.
// When MaxSweeps is reached first the partial result is returned along with
// ErrPartialConvergence.
func (e *Evaluator) Evaluate(env Environment, policy Policy, V ValueFunction) (*Result, error) {
	if V == nil {
		V = ValueFunction{}
	}
	log := e.logger()
	threshold := e.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	res := &Result{RunID: uuid.New(), Values: V}
	log = log.With("run_id", res.RunID.String(), "policy", policy.Name())

	for {
		old := V.Clone()
		if err := e.EvalStep(env, policy, V); err != nil {
			return res, err
		}
		res.Sweeps++
		delta := V.MaxDelta(old)
		res.Deltas = append(res.Deltas, delta)
		if e.Observer != nil {
			e.Observer.ObserveSweep(res.Sweeps, delta)
		}
		log.Debug("sweep", "n", res.Sweeps, "delta", delta)

		if delta < threshold {
			res.Converged = true
			log.Info("policy evaluation converged", "sweeps", res.Sweeps, "delta", delta)
			return res, nil
		}
		if e.MaxSweeps > 0 && res.Sweeps >= e.MaxSweeps {
			log.Warn("policy evaluation hit sweep limit", "sweeps", res.Sweeps, "delta", delta)
			return res, fmt.Errorf("%w after %d sweeps (delta %g)", ErrPartialConvergence, res.Sweeps, delta)
		}
	}
}

func (e *Evaluator) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// PolicyEval evaluates policy on env with no sweep limit.
func PolicyEval(env Environment, policy Policy, V ValueFunction, gamma, checkValue float64) (ValueFunction, error) {
	e := Evaluator{Gamma: gamma, Threshold: checkValue}
	res, err := e.Evaluate(env, policy, V)
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}
