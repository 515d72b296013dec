// ABOUTME: Config command for showing and initializing settings.
// ABOUTME: Prints the effective config as YAML or writes the defaults to disk.

package main

import (
	"fmt"
	"os"

	"github.com/harper/listahan/internal/config"
	"github.com/harper/listahan/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		if err := config.Save(path, config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Println(ui.Success("Wrote " + path))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing config")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
