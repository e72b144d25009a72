package mdp

import (
	"errors"
	"fmt"
	"iter"
)

var (
	ErrInvalidAction      = errors.New("invalid action")
	ErrImpassable         = errors.New("cell is impassable")
	ErrMissingReward      = errors.New("cell has no reward")
	ErrOutOfGrid          = errors.New("state outside grid")
	ErrPartialConvergence = errors.New("evaluation stopped before convergence")
)

// State is a grid cell.
type State struct {
	Row int
	Col int
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %d)", s.Row, s.Col)
}

type Reward float64

// Environment is a finite MDP with deterministic dynamics.
type Environment interface {
	States() iter.Seq[State]
	Actions() []Action
	Transition(State, Action) (State, error)
	Reward(State, Action, State) (Reward, error)
	IsTerminal(State) bool
}

// InvalidActionError reports an action outside the closed action set.
type InvalidActionError struct {
	Action Action
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %d", int(e.Action))
}

func (e *InvalidActionError) Unwrap() error {
	return ErrInvalidAction
}
