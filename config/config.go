// Package config loads the grid layout, policy and evaluation parameters for
// a policy evaluation run.
package config

// Config is the top-level run configuration.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Policy     PolicyConfig     `yaml:"policy"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Output     OutputConfig     `yaml:"output"`
}

// Cell is a [row, col] pair.
type Cell [2]int

// GridConfig describes the reward grid. A null reward marks the wall.
type GridConfig struct {
	Rewards [][]*float64 `yaml:"rewards"`
	Goal    Cell         `yaml:"goal"`
	Start   Cell         `yaml:"start"`
	Wall    Cell         `yaml:"wall"`
}

// PolicyConfig selects the policy to evaluate.
//
// Type is one of "uniform", "table" or "deterministic". Table policies use
// Default for every state not listed in States; deterministic policies read
// the Action of each listed state.
type PolicyConfig struct {
	Type    string             `yaml:"type"`
	Default map[string]float64 `yaml:"default"`
	States  []StatePolicy      `yaml:"states"`
}

type StatePolicy struct {
	Cell    Cell               `yaml:"cell"`
	Action  string             `yaml:"action"`
	Actions map[string]float64 `yaml:"actions"`
}

type EvaluationConfig struct {
	Gamma     float64 `yaml:"gamma"`
	Threshold float64 `yaml:"threshold"`
	// MaxSweeps of 0 runs until convergence.
	MaxSweeps int `yaml:"max_sweeps"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type OutputConfig struct {
	Color bool   `yaml:"color"`
	Chart string `yaml:"chart"`
}
