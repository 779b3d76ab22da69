// Copyright 2025 Observekit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/observekit/observable/pkg/config"
	"github.com/observekit/observable/pkg/logging"
)

const cliExecutable = "observable"

// NewCommand constructs the top-level observable CLI command, wiring global
// flags, configuration loading and logging setup.
func NewCommand() *cobra.Command {
	var (
		configFile string
		cfg        config.Config
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Observable is an in-process publish/subscribe event registry",
		Long: `Observable registers named event handlers and triggers them with
caller-supplied arguments, synchronously or asynchronously. This CLI ships a
bench command that exercises the registry under configurable load.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			cfg = loaded

			logging.ConfigureGlobal(logging.ParseLevel(cfg.Log.Level))
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newBenchCommand(&cfg))
	cmd.AddCommand(newVersionCommand())

	return cmd
}
