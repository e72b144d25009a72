package mdp

import (
	"fmt"
	"strings"
)

type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

var actionNames = [...]string{"up", "down", "left", "right"}

// row, col displacement per action, indexed by Action
var moves = [...][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Actions returns the closed action set in index order.
func Actions() []Action {
	return []Action{Up, Down, Left, Right}
}

func (a Action) Valid() bool {
	return a >= Up && a <= Right
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, name)
}

func (a Action) shift(s State) (State, error) {
	if !a.Valid() {
		return s, &InvalidActionError{Action: a}
	}
	m := moves[a]
	return State{Row: s.Row + m[0], Col: s.Col + m[1]}, nil
}
