package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"climux/internal/config"
	"climux/internal/logging"
)

const appVersion = "0.1.0"

func newRootCmd() *cobra.Command {
	var configPath string
	var shellOverride string
	var logPath string

	root := &cobra.Command{
		Use:   "climux",
		Short: "A terminal multiplexing session manager",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logPath != "" {
				if err := logging.Init(logPath); err != nil {
					return fmt.Errorf("init logging: %w", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("climux must be run in an interactive terminal")
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if shellOverride != "" {
				cfg.Shell = shellOverride
			}
			return runOuterLoop(cfg)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default ~/.config/climux/config.yaml)")
	root.PersistentFlags().StringVar(&shellOverride, "shell", "", "override the child shell command")
	root.PersistentFlags().StringVar(&logPath, "log-file", "", "write diagnostic logs to this file")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the climux version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(appVersion)
			return nil
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}
