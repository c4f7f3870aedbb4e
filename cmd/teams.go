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

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the Netlify teams you belong to",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := netlify.NewClient(projectDir(), viper.GetBool("debug"))

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		teams, err := client.Teams(ctx)
		if err != nil {
			return err
		}

		styles := ui.NewStyles()
		for _, t := range teams {
			fmt.Printf("%-30s %s\n", t.Name, styles.Subtle.Render(t.Slug))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}
