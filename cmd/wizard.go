package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"deploykit/internal/history"
	"deploykit/internal/ui"
	"deploykit/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Guided analyze, configure and deploy flow",
	Long: `Walk through the whole deployment in five steps: analyze the project,
generate configuration, check the Netlify CLI and login, create or link
a site, and deploy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var store *history.Store
		if path, err := history.DefaultPath(); err == nil {
			if s, serr := history.Open(path); serr == nil {
				store = s
				defer store.Close()
			} else {
				ui.NewStyles().Warnf("deploy history unavailable: %v", serr)
			}
		}

		w := wizard.New(wizard.Options{
			Dir:   projectDir(),
			Debug: viper.GetBool("debug"),
			Store: store,
		})
		return w.Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}
