package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"deploykit/internal/netlify"
	"deploykit/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Netlify CLI, login and site-link status",
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.NewStyles()
		client := netlify.NewClient(projectDir(), viper.GetBool("debug"))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		version := client.Version(ctx)
		if version == "" {
			styles.Errorf("Netlify CLI not installed")
			styles.Infof("Install it with: npm install -g netlify-cli")
			return fmt.Errorf("netlify CLI is not installed")
		}
		styles.Successf("Netlify CLI %s", version)

		if client.LoggedIn(ctx) {
			styles.Successf("logged in")
		} else {
			styles.Warnf("not logged in (run: deploykit login)")
			return nil
		}

		if client.Linked(ctx) {
			styles.Successf("project linked to a site")
		} else {
			styles.Warnf("project not linked to a site yet")
		}

		if out := strings.TrimSpace(client.Status(ctx).Stdout); out != "" {
			fmt.Println()
			fmt.Println(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
