package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/NicabarNimble/go-devdir/internal/config"
)

type configOptions struct {
	path  string
	force bool
}

func newConfigCmd() *cobra.Command {
	opts := &configOptions{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the devdir config file",
	}
	cmd.PersistentFlags().StringVar(&opts.path, "config", "", "Config file (default $XDG_CONFIG_HOME/devdir/config.yaml)")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, opts)
		},
	}
	initCmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func (o *configOptions) resolvePath() (string, error) {
	if o.path != "" {
		return o.path, nil
	}
	return config.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, opts *configOptions) error {
	path, err := opts.resolvePath()
	if err != nil {
		return err
	}

	if !opts.force {
		if exists, err := config.Exists(path); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, opts *configOptions) error {
	path, err := opts.resolvePath()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
