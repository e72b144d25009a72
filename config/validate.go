package config

import (
	"fmt"
	"strings"

	"github.com/CodeStranger-Fred/gridworld-eval/mdp"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "evaluation.gamma").
	Field string

	// Message is a human-readable error message.
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate returns a ValidationError holding every problem with cfg, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if _, err := cfg.Grid.Build(); err != nil {
		add("grid", "%v", err)
	}

	ev := cfg.Evaluation
	switch {
	case ev.Gamma < 0 || ev.Gamma > 1:
		add("evaluation.gamma", "must be in [0, 1], got %g", ev.Gamma)
	case ev.Gamma == 1 && ev.MaxSweeps == 0:
		add("evaluation.gamma", "gamma of 1 need not converge; set evaluation.max_sweeps")
	}
	if ev.Threshold <= 0 {
		add("evaluation.threshold", "must be positive, got %g", ev.Threshold)
	}
	if ev.MaxSweeps < 0 {
		add("evaluation.max_sweeps", "must not be negative, got %d", ev.MaxSweeps)
	}

	validatePolicy(&cfg.Policy, add)

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		add("logging.level", "unknown level %q", cfg.Logging.Level)
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validatePolicy(p *PolicyConfig, add func(field, format string, args ...any)) {
	switch p.Type {
	case PolicyUniform:
	case PolicyTable:
		if len(p.Default) == 0 {
			add("policy.default", "table policy needs a default distribution")
		}
		validateDistribution("policy.default", p.Default, add)
		for i, sp := range p.States {
			validateDistribution(fmt.Sprintf("policy.states[%d].actions", i), sp.Actions, add)
		}
	case PolicyDeterministic:
		for i, sp := range p.States {
			if _, err := mdp.ParseAction(sp.Action); err != nil {
				add(fmt.Sprintf("policy.states[%d].action", i), "%v", err)
			}
		}
	default:
		add("policy.type", "unknown policy type %q", p.Type)
	}
}

func validateDistribution(field string, probs map[string]float64, add func(field, format string, args ...any)) {
	for name, p := range probs {
		if _, err := mdp.ParseAction(name); err != nil {
			add(field, "%v", err)
		}
		if p < 0 {
			add(field, "negative probability %g for %q", p, name)
		}
	}
}
