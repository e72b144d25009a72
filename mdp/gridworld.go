package mdp

import (
	"fmt"
	"iter"
)

// GridWorld is a rectangular grid with a single wall cell and an absorbing
// goal. A nil reward entry marks a cell as impassable.
type GridWorld struct {
	rewards [][]*float64
	goal    State
	start   State
	wall    State
}

func NewGridWorld(rewards [][]*float64, goal, start, wall State) (*GridWorld, error) {
	if len(rewards) == 0 || len(rewards[0]) == 0 {
		return nil, fmt.Errorf("reward grid is empty")
	}
	width := len(rewards[0])
	for r, row := range rewards {
		if len(row) != width {
			return nil, fmt.Errorf("reward grid row %d has %d columns, want %d", r, len(row), width)
		}
	}

	w := &GridWorld{
		rewards: make([][]*float64, len(rewards)),
		goal:    goal,
		start:   start,
		wall:    wall,
	}
	for r, row := range rewards {
		w.rewards[r] = make([]*float64, width)
		for c, v := range row {
			if v != nil {
				x := *v
				w.rewards[r][c] = &x
			}
		}
	}

	for name, s := range map[string]State{"goal": goal, "start": start, "wall": wall} {
		if !w.inside(s) {
			return nil, fmt.Errorf("%s %v: %w", name, s, ErrOutOfGrid)
		}
	}
	if goal == wall {
		return nil, fmt.Errorf("goal %v is the wall", goal)
	}
	if start == wall {
		return nil, fmt.Errorf("start %v is the wall", start)
	}
	for s := range w.States() {
		if s != wall && w.rewards[s.Row][s.Col] == nil {
			return nil, fmt.Errorf("%v: %w", s, ErrMissingReward)
		}
	}
	return w, nil
}

func (w *GridWorld) Height() int { return len(w.rewards) }

func (w *GridWorld) Width() int { return len(w.rewards[0]) }

func (w *GridWorld) Actions() []Action { return Actions() }

func (w *GridWorld) Goal() State { return w.goal }

func (w *GridWorld) Start() State { return w.start }

func (w *GridWorld) Wall() State { return w.wall }

func (w *GridWorld) IsTerminal(s State) bool { return s == w.goal }

// States yields every cell in row-major order, the wall included.
func (w *GridWorld) States() iter.Seq[State] {
	return func(yield func(State) bool) {
		for r := 0; r < w.Height(); r++ {
			for c := 0; c < w.Width(); c++ {
				if !yield(State{Row: r, Col: c}) {
					return
				}
			}
		}
	}
}

// Transition moves one cell in the action's direction. Moves that leave the
// grid or hit the wall leave the state unchanged.
func (w *GridWorld) Transition(s0 State, a Action) (State, error) {
	s1, err := a.shift(s0)
	if err != nil {
		return s0, err
	}
	if !w.inside(s1) || s1 == w.wall {
		return s0, nil
	}
	return s1, nil
}

// Reward depends only on the destination cell.
func (w *GridWorld) Reward(s0 State, a Action, s1 State) (Reward, error) {
	if !w.inside(s1) {
		return 0, fmt.Errorf("%v: %w", s1, ErrOutOfGrid)
	}
	v := w.rewards[s1.Row][s1.Col]
	if v == nil || s1 == w.wall {
		return 0, fmt.Errorf("%v: %w", s1, ErrImpassable)
	}
	return Reward(*v), nil
}

// CellReward returns the raw grid entry; ok is false for the impassable marker.
func (w *GridWorld) CellReward(s State) (r Reward, ok bool) {
	if !w.inside(s) || s == w.wall || w.rewards[s.Row][s.Col] == nil {
		return 0, false
	}
	return Reward(*w.rewards[s.Row][s.Col]), true
}

func (w *GridWorld) inside(s State) bool {
	return s.Row >= 0 && s.Row < w.Height() && s.Col >= 0 && s.Col < w.Width()
}
