package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"iggallery/pkg/config"
	"iggallery/pkg/ui"
)

const defaultConfigPath = ".iggallery.yaml"

// configCmd groups the configuration helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage iggallery configuration.

Configuration is read from, in order of priority:
  - Command line flags
  - Environment variables (including .env files)
  - Configuration file
  - Default values`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create a configuration file holding every option at its default value.

The file is written to ./.iggallery.yaml unless --config names another path.
Run 'iggallery config env' for the environment variable of each option.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Show the configuration after merging all sources. The access token is masked.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables iggallery reads",
	Args:  cobra.NoArgs,
	RunE:  runConfigEnv,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configEnvCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + path)
	ui.Println("\nNext steps:")
	ui.Println("1. Set graph.account_id, or export IG_USER_ID")
	ui.Println("2. Store your access token with 'iggallery token set'")
	ui.Println("3. Run 'iggallery config validate', then 'iggallery update'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, commandFlags(cmd))
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.Masked())
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, commandFlags(cmd))
	if err != nil {
		return err
	}

	if err := cfg.RequireCredentials(); err != nil {
		ui.PrintWarning("Credentials", err)
		ui.Println("  A token stored with 'iggallery token set' is used when IG_ACCESS_TOKEN is unset.")
	}

	ui.PrintSuccess("Configuration is valid")
	ui.PrintInfo("Account", cfg.Graph.AccountID)
	ui.PrintInfo("API version", cfg.Graph.APIVersion)
	ui.PrintInfo("Limit", fmt.Sprintf("%d", cfg.Graph.Limit))
	ui.PrintInfo("JSON output", cfg.Output.JSONPath)
	ui.PrintInfo("HTML output", cfg.Output.HTMLPath)
	ui.PrintInfo("Log level", cfg.Logging.Level)
	return nil
}

func runConfigEnv(cmd *cobra.Command, args []string) error {
	desc, err := config.DefaultConfig().EnvDescription()
	if err != nil {
		return fmt.Errorf("failed to describe environment: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), desc)
	return nil
}
