// ABOUTME: "termweb config" prints the effective configuration as YAML
// ABOUTME: Uses the same file, env, and flag layering as a viewing session

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mauromedda/termweb/internal/config"
)

func newConfigCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config [url]",
		Short: "Print the effective configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *flags, args)
			if err != nil {
				return err
			}
			data, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func loadConfig(cmd *cobra.Command, flags cliFlags, args []string) (config.Config, error) {
	cfg, err := config.Load(flags.configPath, flags.overrides(cmd, args))
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
