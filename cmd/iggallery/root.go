package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"iggallery/pkg/config"
	"iggallery/pkg/logger"
	"iggallery/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool

	// Run flags shared by update and render
	accountID  string
	apiVersion string
	limit      int
	outputJSON string
	outputHTML string
)

// rootCmd runs an update when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "iggallery",
	Short: "Build a static gallery page from an Instagram account's latest posts",
	Long: `iggallery fetches the most recent media of an Instagram account through the
Graph API, saves them as JSON and renders a static HTML gallery page.

Running iggallery without a subcommand is the same as 'iggallery update'.

Required settings:
  IG_USER_ID        Instagram account (user) ID
  IG_ACCESS_TOKEN   Graph API access token, or a token stored with 'iggallery token set'`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet {
			ui.SetQuietMode(true)
		}
	},
	RunE: runUpdate,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		ui.PrintError("Error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./.iggallery.yaml or ~/.config/iggallery/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.PersistentFlags().StringVar(&accountID, "account-id", "", "Instagram account ID (overrides IG_USER_ID)")
	rootCmd.PersistentFlags().StringVar(&apiVersion, "api-version", "", "Graph API version (overrides GRAPH_API_VERSION)")
	rootCmd.PersistentFlags().IntVarP(&limit, "limit", "n", 0, "number of posts to fetch (overrides IG_LIMIT)")
	rootCmd.PersistentFlags().StringVar(&outputJSON, "output-json", "", "path of the JSON posts file")
	rootCmd.PersistentFlags().StringVar(&outputHTML, "output-html", "", "path of the generated HTML page")

	rootCmd.SetVersionTemplate(`iggallery {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// commandFlags collects the flags the user actually set
func commandFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	if cmd.Flags().Changed("account-id") {
		flags["account-id"] = accountID
	}
	if cmd.Flags().Changed("api-version") {
		flags["api-version"] = apiVersion
	}
	if cmd.Flags().Changed("limit") {
		flags["limit"] = limit
	}
	if cmd.Flags().Changed("output-json") {
		flags["output-json"] = outputJSON
	}
	if cmd.Flags().Changed("output-html") {
		flags["output-html"] = outputHTML
	}
	if cmd.Flags().Changed("log-level") {
		flags["log-level"] = logLevel
	}
	return flags
}

// loadConfig builds the configuration from every source and sets up the
// global logger from it
func loadConfig(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configFile, commandFlags(cmd))
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger.GetLogger(), nil
}
