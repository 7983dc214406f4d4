package main

import (
	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/threads/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Print the effective initial snapshot as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		s, err := seed.New(&cfg.Seed)
		if err != nil {
			return err
		}

		data, err := seed.Marshal(s)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
