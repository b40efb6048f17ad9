package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Digital-Shane/like-that/internal/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with API keys masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return showConfig(cmd.OutOrStdout(), cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.OutOrStdout(), forceInit)
	},
}

func showConfig(out io.Writer, cfg *config.Config) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# %s\n", path)

	data, err := json.MarshalIndent(cfg.Masked(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(out, string(data))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
	}
	return nil
}

func initConfig(out io.Writer, force bool) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := config.DefaultConfig().Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote default config to %s\n", path)
	return nil
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
