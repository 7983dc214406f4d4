package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/threads/core/action"
	"github.com/tailored-agentic-units/threads/ident"
	"github.com/tailored-agentic-units/threads/messenger"
	"github.com/tailored-agentic-units/threads/observability"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Apply an action script and print the resulting threads",
	Example: `  messenger replay --script actions.yaml
  messenger replay --script actions.yaml --sequential-ids --metrics`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringP("script", "s", "", "action script file, YAML or JSON (required)")
	replayCmd.Flags().Bool("sequential-ids", false, "assign message ids msg-1, msg-2, ... so scripts can delete what they add")
	replayCmd.Flags().Bool("metrics", false, "write event counters in Prometheus text format to stderr")
	_ = replayCmd.MarkFlagRequired("script")
}

func runReplay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	scriptPath, _ := cmd.Flags().GetString("script")
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	script, err := action.DecodeScript(data)
	if err != nil {
		return err
	}

	withMetrics, _ := cmd.Flags().GetBool("metrics")

	observer, err := configuredObserver(cmd, cfg)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	if withMetrics {
		metrics, err := observability.NewMetricsObserver(reg, "messenger")
		if err != nil {
			return err
		}
		observer = observability.NewMultiObserver(observer, metrics)
	}

	opts := []messenger.Option{messenger.WithObserver(observer)}
	if sequential, _ := cmd.Flags().GetBool("sequential-ids"); sequential {
		opts = append(opts, messenger.WithServices(ident.NewSequence("msg", time.Now().UnixMilli(), 0)))
	}

	m, err := messenger.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to create messenger: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result := m.Replay(ctx, script)

	out := cmd.OutOrStdout()
	render(out, m.State(), time.Now())

	fmt.Fprintf(out, "\nApplied: %d, rejected: %d\n", result.Applied, len(result.Rejected))
	for _, r := range result.Rejected {
		fmt.Fprintf(out, "  [%d] %s: %v\n", r.Index+1, r.Action.Type(), r.Err)
	}
	if result.Err != nil {
		fmt.Fprintf(out, "Stopped early (%v), %d actions skipped\n", result.Err, result.Skipped)
	}

	if withMetrics {
		families, err := reg.Gather()
		if err != nil {
			return fmt.Errorf("failed to gather metrics: %w", err)
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), mf); err != nil {
				return err
			}
		}
	}

	return nil
}

// configuredObserver resolves the observer named in cfg. The "slog" name maps
// to the command's own logger so --verbose applies to it.
func configuredObserver(cmd *cobra.Command, cfg *messenger.Config) (observability.Observer, error) {
	if cfg.Observer == "" || cfg.Observer == "slog" {
		return observability.NewSlogObserver(newLogger(cmd)), nil
	}
	return observability.GetObserver(cfg.Observer)
}
