package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"deploykit/internal/netlify"
	"deploykit/internal/ui"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List your Netlify sites",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := netlify.NewClient(projectDir(), viper.GetBool("debug"))

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		sites, err := client.Sites(ctx)
		if err != nil {
			return err
		}

		styles := ui.NewStyles()
		if len(sites) == 0 {
			styles.Infof("no sites found")
			return nil
		}

		for _, s := range sites {
			fmt.Printf("%-30s %-50s %s\n", s.Name, styles.URL.Render(s.URL), styles.Subtle.Render(s.Updated))
		}
		return nil
	},
}

var sitesCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new site and link it to this project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		team, _ := cmd.Flags().GetString("team")

		client := netlify.NewClient(projectDir(), viper.GetBool("debug"))
		styles := ui.NewStyles()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		res, created := client.CreateSite(ctx, name, team)
		if !created {
			styles.Errorf("site creation failed")
			if res.Stderr != "" {
				styles.Infof("%s", res.Stderr)
			}
			return fmt.Errorf("failed to create site")
		}
		styles.Successf("site created and linked")
		return nil
	},
}

var sitesRenameCmd = &cobra.Command{
	Use:   "rename <name>",
	Short: "Rename the linked site and its netlify.app subdomain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := netlify.NewClient(projectDir(), viper.GetBool("debug"))
		styles := ui.NewStyles()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		res, ok := client.UpdateSiteName(ctx, args[0])
		if !ok {
			styles.Errorf("rename failed")
			if res.Stderr != "" {
				styles.Infof("%s", res.Stderr)
			}
			return fmt.Errorf("failed to rename site")
		}
		styles.Successf("domain updated to %s.netlify.app", args[0])
		return nil
	},
}

func init() {
	sitesCreateCmd.Flags().String("team", "", "account slug of the team that should own the site")
	sitesCmd.AddCommand(sitesCreateCmd)
	sitesCmd.AddCommand(sitesRenameCmd)
	rootCmd.AddCommand(sitesCmd)
}
