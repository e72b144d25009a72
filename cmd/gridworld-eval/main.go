// gridworld-eval computes the state values of a fixed policy on a grid world
// by iterative policy evaluation.
//
// Usage:
//
//	# Evaluate the uniform random policy on the built-in 3x4 grid
//	gridworld-eval
//
//	# Use a config file and write an HTML report
//	gridworld-eval --config grid.yaml --chart charts/report.html
//
//	# Cap the number of sweeps and sample one episode from the start cell
//	gridworld-eval --max-sweeps 20 --episode --seed 42
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
