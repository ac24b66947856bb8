package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"iggallery/pkg/pipeline"
	"iggallery/pkg/ui"
)

// renderCmd re-renders the page from the saved JSON
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Regenerate the HTML page from the saved JSON file",
	Long: `Render the gallery page from the existing JSON posts file without contacting
the Graph API. Useful after changing the site settings.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := pipeline.NewFromConfig(cfg, log).RenderFromFile(cmd.Context())
	if err != nil {
		log.WithError(err).Error("Render failed")
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Gallery rendered with %d posts", result.Records))
	ui.PrintInfo("HTML", result.HTMLPath)
	return nil
}
