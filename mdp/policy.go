package mdp

import (
	"errors"
	"fmt"
)

// Policy gives the action distribution the agent follows in each state.
type Policy interface {
	Name() string

	Act(State) DiscretePdf[Action]
}

// UniformPolicy picks every action with equal probability.
type UniformPolicy struct {
	Actions []Action
}

func (p UniformPolicy) Name() string {
	return "random"
}

func (p UniformPolicy) Act(s0 State) DiscretePdf[Action] {
	actions := p.Actions
	if actions == nil {
		actions = Actions()
	}
	pdf := DiscretePdf[Action]{}
	for _, a := range actions {
		pdf[a] = Probability(1.0 / float64(len(actions)))
	}
	return pdf
}

// TablePolicy maps states to distributions; states missing from the table
// use Default.
type TablePolicy struct {
	Table   map[State]DiscretePdf[Action]
	Default DiscretePdf[Action]
}

func (p TablePolicy) Name() string {
	return "table"
}

func (p TablePolicy) Act(s0 State) DiscretePdf[Action] {
	if pdf, ok := p.Table[s0]; ok {
		return pdf
	}
	return p.Default
}

// Validate checks every distribution the policy can return for env. The
// evaluator never calls this.
func (p TablePolicy) Validate(env Environment) error {
	var errs []error
	for s := range env.States() {
		if env.IsTerminal(s) {
			continue
		}
		pdf := p.Act(s)
		if len(pdf) == 0 {
			errs = append(errs, fmt.Errorf("state %v: no actions", s))
			continue
		}
		if err := pdf.Check(); err != nil {
			errs = append(errs, fmt.Errorf("state %v: %w", s, err))
		}
		for _, a := range pdf.Outcomes() {
			if !a.Valid() {
				errs = append(errs, fmt.Errorf("state %v: %w", s, &InvalidActionError{Action: a}))
			}
		}
	}
	return errors.Join(errs...)
}

// DeterministicPolicy takes one fixed action per state.
type DeterministicPolicy map[State]Action

func (p DeterministicPolicy) Name() string {
	return "deterministic"
}

func (p DeterministicPolicy) Act(s0 State) DiscretePdf[Action] {
	a, ok := p[s0]
	if !ok {
		return DiscretePdf[Action]{}
	}
	return DiscretePdf[Action]{a: 1}
}
