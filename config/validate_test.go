package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{
			name:   "defaults",
			modify: func(*Config) {},
		},
		{
			name:   "negative gamma",
			modify: func(c *Config) { c.Evaluation.Gamma = -0.1 },
			fields: []string{"evaluation.gamma"},
		},
		{
			name:   "undiscounted without cap",
			modify: func(c *Config) { c.Evaluation.Gamma = 1 },
			fields: []string{"evaluation.gamma"},
		},
		{
			name: "undiscounted with cap",
			modify: func(c *Config) {
				c.Evaluation.Gamma = 1
				c.Evaluation.MaxSweeps = 100
			},
		},
		{
			name: "bad threshold and sweeps",
			modify: func(c *Config) {
				c.Evaluation.Threshold = 0
				c.Evaluation.MaxSweeps = -1
			},
			fields: []string{"evaluation.threshold", "evaluation.max_sweeps"},
		},
		{
			name:   "missing reward",
			modify: func(c *Config) { c.Grid.Rewards[2][2] = nil },
			fields: []string{"grid"},
		},
		{
			name:   "unknown policy",
			modify: func(c *Config) { c.Policy.Type = "greedy" },
			fields: []string{"policy.type"},
		},
		{
			name: "table policy with bad action",
			modify: func(c *Config) {
				c.Policy.Type = PolicyTable
				c.Policy.Default = map[string]float64{"north": 1}
			},
			fields: []string{"policy.default"},
		},
		{
			name: "table policy without default",
			modify: func(c *Config) {
				c.Policy.Type = PolicyTable
			},
			fields: []string{"policy.default"},
		},
		{
			name: "deterministic policy with bad action",
			modify: func(c *Config) {
				c.Policy.Type = PolicyDeterministic
				c.Policy.States = []StatePolicy{{Cell: Cell{0, 0}, Action: "sideways"}}
			},
			fields: []string{"policy.states[0].action"},
		},
		{
			name:   "log level",
			modify: func(c *Config) { c.Logging.Level = "loud" },
			fields: []string{"logging.level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(cfg)

			err := Validate(cfg)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			var got []string
			for _, fe := range verr.Errors {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	one := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	assert.Equal(t, "a: bad", one.Error())

	two := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	assert.Contains(t, two.Error(), "2 errors")
	assert.Contains(t, two.Error(), "  - b: worse")
}

func TestPolicyBuildDeterministic(t *testing.T) {
	p := PolicyConfig{
		Type: PolicyDeterministic,
		States: []StatePolicy{
			{Cell: Cell{2, 0}, Action: "up"},
			{Cell: Cell{0, 0}, Action: "Right"},
		},
	}
	policy, err := p.Build()
	require.NoError(t, err)
	assert.Equal(t, "deterministic", policy.Name())
	assert.Len(t, policy.Act(Cell{0, 0}.State()), 1)
}
