package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/threads/messenger"
)

const configEnv = "MESSENGER_CONFIG"

var rootCmd = &cobra.Command{
	Use:   "messenger",
	Short: "Replay message-thread actions against a seed snapshot",
	Long: `messenger drives the thread/message store from the command line.
It loads a seed snapshot, applies an action script and prints the
resulting tabs and active thread.`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load(".env")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default is $"+configEnv+")")
	rootCmd.PersistentFlags().String("seed", "", "seed file path (overrides config)")
}

// loadConfig resolves the effective configuration: defaults, then the config
// file from --config or the environment, then flag overrides.
func loadConfig(cmd *cobra.Command) (*messenger.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(configEnv)
	}

	cfg := messenger.DefaultConfig()
	if path != "" {
		loaded, err := messenger.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if seedPath, _ := cmd.Flags().GetString("seed"); seedPath != "" {
		cfg.Seed.Path = seedPath
	}
	return &cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
