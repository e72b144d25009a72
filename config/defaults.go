package config

import "github.com/CodeStranger-Fred/gridworld-eval/mdp"

const (
	DefaultPolicyType = PolicyUniform
	DefaultLogLevel   = "info"
	DefaultColor      = true
)

const (
	PolicyUniform       = "uniform"
	PolicyTable         = "table"
	PolicyDeterministic = "deterministic"
)

func reward(v float64) *float64 { return &v }

// Defaults returns the reference 3x4 world under a uniform random policy.
func Defaults() *Config {
	return &Config{
		Grid: GridConfig{
			Rewards: [][]*float64{
				{reward(0), reward(0), reward(0), reward(1)},
				{reward(0), nil, reward(0), reward(-1)},
				{reward(0), reward(0), reward(0), reward(0)},
			},
			Goal:  Cell{0, 3},
			Start: Cell{2, 0},
			Wall:  Cell{1, 1},
		},
		Policy: PolicyConfig{Type: DefaultPolicyType},
		Evaluation: EvaluationConfig{
			Gamma:     mdp.DefaultGamma,
			Threshold: mdp.DefaultThreshold,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
		Output:  OutputConfig{Color: DefaultColor},
	}
}

// ApplyDefaults fills fields left empty by a config file.
func ApplyDefaults(cfg *Config) {
	if cfg.Policy.Type == "" {
		cfg.Policy.Type = DefaultPolicyType
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Evaluation.Threshold == 0 {
		cfg.Evaluation.Threshold = mdp.DefaultThreshold
	}
}
