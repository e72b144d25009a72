package mdp

import (
	"cmp"
	"fmt"
	"maps"
	"math"
	"math/rand"
	"slices"
)

type Probability float64

// DiscretePdf is a finite distribution over outcomes.
type DiscretePdf[Category cmp.Ordered] map[Category]Probability

// Outcomes returns the outcomes in ascending order so sums and samples over
// the distribution do not depend on map iteration order.
func (p DiscretePdf[Category]) Outcomes() []Category {
	return slices.Sorted(maps.Keys(p))
}

func (p DiscretePdf[Category]) Choose(rng *rand.Rand) Category {
	v := rng.Float64()
	cumulative := 0.0
	var last Category
	for _, st := range p.Outcomes() {
		if p[st] <= 0 {
			continue
		}
		cumulative += float64(p[st])
		if cumulative >= v {
			return st
		}
		last = st
	}
	return last
}

func (p DiscretePdf[Category]) Check() error {
	sum := 0.0
	for _, prob := range p {
		if prob < 0 {
			return fmt.Errorf("negative probability %v", prob)
		}
		sum += float64(prob)
	}
	if math.Abs(sum-1) > .001 {
		return fmt.Errorf("probabilities sum to %v, not 1", sum)
	}
	return nil
}
