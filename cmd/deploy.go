package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"deploykit/internal/history"
	"deploykit/internal/netlify"
	"deploykit/internal/ui"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the project via the Netlify CLI",
	Long: `Run a preview deploy, or a production deploy with --prod. The deployed
URL is extracted from the CLI output and the attempt is recorded in the
local deploy history.

Examples:
  deploykit deploy
  deploykit deploy --prod
  deploykit deploy -d ./my-site --prod`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prod, _ := cmd.Flags().GetBool("prod")
		dir := projectDir()
		styles := ui.NewStyles()

		// Deploys upload the whole publish directory; allow plenty of time.
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		client := netlify.NewClient(dir, viper.GetBool("debug"))
		if !client.CheckCLI(ctx) {
			styles.Errorf("Netlify CLI not found")
			styles.Infof("Install it with: npm install -g netlify-cli")
			return fmt.Errorf("netlify CLI is not installed")
		}

		styles.Infof("deploying %s...", dir)
		result := client.Deploy(ctx, prod)

		recordDeploy(ctx, dir, prod, result)

		if !result.Success {
			styles.Errorf("deploy failed")
			if msg := strings.TrimSpace(result.Stderr); msg != "" {
				styles.Infof("%s", msg)
			}
			return fmt.Errorf("deploy failed")
		}

		styles.Successf("deploy complete")
		if result.URL != "" {
			fmt.Println(styles.URL.Render(result.URL))
		}
		return nil
	},
}

// recordDeploy appends to the history database. History is best effort;
// a broken database never fails the deploy command.
func recordDeploy(ctx context.Context, dir string, prod bool, result netlify.DeployResult) {
	path, err := history.DefaultPath()
	if err != nil {
		return
	}
	store, err := history.Open(path)
	if err != nil {
		return
	}
	defer store.Close()

	_ = store.Record(ctx, history.Entry{
		DeployedAt: time.Now(),
		Path:       dir,
		Production: prod,
		Success:    result.Success,
		URL:        result.URL,
	})
}

func init() {
	deployCmd.Flags().Bool("prod", false, "deploy to production instead of a draft preview")
	rootCmd.AddCommand(deployCmd)
}
