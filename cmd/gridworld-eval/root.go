package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/CodeStranger-Fred/gridworld-eval/config"
	"github.com/CodeStranger-Fred/gridworld-eval/mdp"
	"github.com/CodeStranger-Fred/gridworld-eval/metrics"
	"github.com/CodeStranger-Fred/gridworld-eval/render"
)

type rootFlags struct {
	cfgFile     string
	envFile     string
	gamma       float64
	threshold   float64
	maxSweeps   int
	logLevel    string
	noColor     bool
	chart       string
	metricsFile string
	episode     bool
	maxSteps    int
	seed        int64
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "gridworld-eval",
		Short: "Iterative policy evaluation on a grid world",
		Long: `Evaluate a fixed policy on a grid world with one wall and an absorbing goal.

Bellman expectation sweeps are applied in place until the largest change of
any state value falls below the threshold. The resulting value table is
printed as a grid followed by one "state: value" line per cell.

Configuration is read from --config (YAML) over the built-in 3x4 layout,
then GRIDEVAL_* environment variables (also read from --env-file), then flags.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigWithEnvOverrides(flags.cfgFile, flags.envFile)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg, &flags)
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, &flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.cfgFile, "config", "c", "", "config file path (YAML)")
	f.StringVar(&flags.envFile, "env-file", ".env", "dotenv file with GRIDEVAL_* overrides")
	f.Float64Var(&flags.gamma, "gamma", mdp.DefaultGamma, "discount factor")
	f.Float64Var(&flags.threshold, "threshold", mdp.DefaultThreshold, "convergence threshold on the max per-state change")
	f.IntVar(&flags.maxSweeps, "max-sweeps", 0, "stop after this many sweeps (0 = until convergence)")
	f.StringVar(&flags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	f.BoolVar(&flags.noColor, "no-color", false, "disable coloured output")
	f.StringVar(&flags.chart, "chart", "", "write an HTML convergence and value report to this path")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this path")
	f.BoolVar(&flags.episode, "episode", false, "sample one episode from the start cell under the policy")
	f.IntVar(&flags.maxSteps, "max-steps", 100, "step limit for --episode")
	f.Int64Var(&flags.seed, "seed", 1, "random seed for --episode")

	return cmd
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, flags *rootFlags) {
	f := cmd.Flags()
	if f.Changed("gamma") {
		cfg.Evaluation.Gamma = flags.gamma
	}
	if f.Changed("threshold") {
		cfg.Evaluation.Threshold = flags.threshold
	}
	if f.Changed("max-sweeps") {
		cfg.Evaluation.MaxSweeps = flags.maxSweeps
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.noColor {
		cfg.Output.Color = false
	}
	if flags.chart != "" {
		cfg.Output.Chart = flags.chart
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

func run(stdout, stderr io.Writer, cfg *config.Config, flags *rootFlags) error {
	logger := newLogger(stderr, cfg.Logging.Level)

	env, err := cfg.Grid.Build()
	if err != nil {
		return err
	}
	policy, err := cfg.Policy.Build()
	if err != nil {
		return err
	}
	if tp, ok := policy.(mdp.TablePolicy); ok {
		if err := tp.Validate(env); err != nil {
			logger.Warn("policy is not a valid distribution; evaluating as given", "error", err)
		}
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	evaluator := cfg.Evaluation.Evaluator()
	evaluator.Logger = logger
	evaluator.Observer = collector

	logger.Info("evaluating policy",
		"policy", policy.Name(),
		"height", env.Height(),
		"width", env.Width(),
		"gamma", evaluator.Gamma,
		"threshold", evaluator.Threshold,
	)
	res, evalErr := evaluator.Evaluate(env, policy, nil)
	if evalErr != nil && !errors.Is(evalErr, mdp.ErrPartialConvergence) {
		return evalErr
	}
	collector.ObserveResult(res)

	table := render.NewTable(stdout, cfg.Output.Color)
	status := "converged"
	if !res.Converged {
		status = "not converged"
	}
	fmt.Fprintf(stdout, "run %s: %s after %d sweeps\n", res.RunID, status, res.Sweeps)
	table.Values(env, res.Values)
	fmt.Fprintln(stdout)
	table.Dump(res.Values)

	if cfg.Output.Chart != "" {
		if err := render.WriteReportFile(cfg.Output.Chart, env, res, evaluator.Threshold); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("report written", "path", cfg.Output.Chart)
	}

	if flags.metricsFile != "" {
		if err := prometheus.WriteToTextfile(flags.metricsFile, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if flags.episode {
		rng := rand.New(rand.NewSource(flags.seed))
		episode, err := mdp.GenerateEpisode(env, policy, rng, flags.maxSteps)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout)
		table.Grid(env, env.Start())
		table.Episode(episode, evaluator.Gamma)
	}

	return evalErr
}
