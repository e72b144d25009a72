package mdp

import (
	"fmt"
	"math/rand"
)

type Transition struct {
	State0 State
	Action Action
	State1 State
	Reward Reward
}

// GenerateEpisode follows policy from the start state until the goal or
// maxSteps transitions, whichever comes first.
func GenerateEpisode(env *GridWorld, policy Policy, rng *rand.Rand, maxSteps int) ([]Transition, error) {
	var episode []Transition
	state := env.Start()
	for !env.IsTerminal(state) && len(episode) < maxSteps {
		aPdf := policy.Act(state)
		if len(aPdf) == 0 {
			return episode, fmt.Errorf("state %v: policy has no actions", state)
		}
		action := aPdf.Choose(rng)
		nextState, err := env.Transition(state, action)
		if err != nil {
			return episode, err
		}
		reward, err := env.Reward(state, action, nextState)
		if err != nil {
			return episode, err
		}

		episode = append(episode, Transition{
			State0: state,
			Action: action,
			State1: nextState,
			Reward: reward,
		})

		state = nextState
	}
	return episode, nil
}

func DiscountedReturn(episode []Transition, gamma float64) float64 {
	G := 0.0
	for i := len(episode) - 1; i >= 0; i-- {
		G = float64(episode[i].Reward) + gamma*G
	}
	return G
}
