package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"deploykit/internal/netlify"
	"deploykit/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Netlify through the browser",
	Long: `Trigger the Netlify CLI login flow. The CLI opens a browser window and
blocks until authorization completes or is cancelled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.NewStyles()
		client := netlify.NewClient(projectDir(), viper.GetBool("debug"))

		// No timeout: the flow waits on the user in the browser.
		ctx := context.Background()

		if client.LoggedIn(ctx) {
			styles.Successf("already logged in")
			return nil
		}

		if err := client.Login(ctx); err != nil {
			return err
		}
		styles.Successf("logged in")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
