package config

import (
	"fmt"

	"github.com/CodeStranger-Fred/gridworld-eval/mdp"
)

func (c Cell) State() mdp.State {
	return mdp.State{Row: c[0], Col: c[1]}
}

// Build constructs the grid world described by g.
func (g GridConfig) Build() (*mdp.GridWorld, error) {
	return mdp.NewGridWorld(g.Rewards, g.Goal.State(), g.Start.State(), g.Wall.State())
}

// Build constructs the policy described by p. Probabilities are taken as
// given; see mdp.TablePolicy.Validate for a sum check.
func (p PolicyConfig) Build() (mdp.Policy, error) {
	switch p.Type {
	case PolicyUniform, "":
		return mdp.UniformPolicy{}, nil
	case PolicyTable:
		def, err := distribution(p.Default)
		if err != nil {
			return nil, fmt.Errorf("policy.default: %w", err)
		}
		table := map[mdp.State]mdp.DiscretePdf[mdp.Action]{}
		for i, sp := range p.States {
			pdf, err := distribution(sp.Actions)
			if err != nil {
				return nil, fmt.Errorf("policy.states[%d]: %w", i, err)
			}
			table[sp.Cell.State()] = pdf
		}
		return mdp.TablePolicy{Table: table, Default: def}, nil
	case PolicyDeterministic:
		policy := mdp.DeterministicPolicy{}
		for i, sp := range p.States {
			a, err := mdp.ParseAction(sp.Action)
			if err != nil {
				return nil, fmt.Errorf("policy.states[%d]: %w", i, err)
			}
			policy[sp.Cell.State()] = a
		}
		return policy, nil
	default:
		return nil, fmt.Errorf("unknown policy type %q", p.Type)
	}
}

func distribution(probs map[string]float64) (mdp.DiscretePdf[mdp.Action], error) {
	pdf := mdp.DiscretePdf[mdp.Action]{}
	for name, prob := range probs {
		a, err := mdp.ParseAction(name)
		if err != nil {
			return nil, err
		}
		pdf[a] += mdp.Probability(prob)
	}
	return pdf, nil
}

// Evaluator returns an evaluator configured with e's parameters.
func (e EvaluationConfig) Evaluator() *mdp.Evaluator {
	return &mdp.Evaluator{
		Gamma:     e.Gamma,
		Threshold: e.Threshold,
		MaxSweeps: e.MaxSweeps,
	}
}
