package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"iggallery/pkg/auth"
	"iggallery/pkg/config"
	"iggallery/pkg/logger"
	"iggallery/pkg/pipeline"
	"iggallery/pkg/ui"
)

// updateCmd fetches, persists and renders
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch the latest posts and regenerate the gallery",
	Long: `Fetch the account's most recent media from the Graph API, write them to the
JSON file and render the HTML gallery page.

If the fetch fails nothing is written and the previous files stay in place.`,
	Example: `  # Use IG_USER_ID and IG_ACCESS_TOKEN from the environment
  iggallery update

  # Fetch 12 posts into a different site directory
  iggallery update --limit 12 --output-json site/ig/posts.json --output-html site/index.html`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	resolveStoredToken(cfg, log)

	ui.PrintBanner()
	ui.PrintInfo("Account", cfg.Graph.AccountID)
	ui.PrintInfo("Limit", fmt.Sprintf("%d", cfg.Graph.Limit))

	result, err := pipeline.NewFromConfig(cfg, log).Run(cmd.Context())
	if err != nil {
		log.WithError(err).Error("Update failed")
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Gallery updated with %d posts", result.Records))
	ui.PrintInfo("JSON", result.JSONPath)
	ui.PrintInfo("HTML", result.HTMLPath)
	return nil
}

// resolveStoredToken fills a missing access token from the credential stores
func resolveStoredToken(cfg *config.Config, log logger.Logger) {
	if cfg.Graph.AccessToken != "" || cfg.Graph.AccountID == "" {
		return
	}

	manager, err := auth.NewManager()
	if err != nil {
		log.WithError(err).Warn("Credential stores unavailable")
		return
	}

	if err := manager.ResolveToken(&cfg.Graph); err != nil {
		if !errors.Is(err, auth.ErrCredentialsNotFound) {
			log.WithError(err).Warn("Failed to read stored token")
		}
		return
	}
	log.WithField("account_id", cfg.Graph.AccountID).Debug("Using stored access token")
}
