package mdp

import (
	"maps"
	"math"
	"slices"
)

// ValueFunction maps states to their estimated value. Unwritten states are 0.
type ValueFunction map[State]float64

func (v ValueFunction) Estimate(s State) float64 {
	if val, ok := v[s]; ok {
		return val
	}
	return 0.0
}

func (v ValueFunction) Clone() ValueFunction {
	return maps.Clone(v)
}

// MaxDelta is the largest absolute change of any state between old and v.
func (v ValueFunction) MaxDelta(old ValueFunction) float64 {
	var delta float64
	for s, val := range v {
		delta = math.Max(math.Abs(val-old.Estimate(s)), delta)
	}
	for s, val := range old {
		if _, ok := v[s]; !ok {
			delta = math.Max(math.Abs(val), delta)
		}
	}
	return delta
}

// States returns the written states in row-major order.
func (v ValueFunction) States() []State {
	return slices.SortedFunc(maps.Keys(v), func(a, b State) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
}
