package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"deploykit/internal/netlify"
	"deploykit/internal/ui"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage environment variables on the linked site",
}

var envSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one environment variable on the linked site",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := netlify.NewClient(projectDir(), viper.GetBool("debug"))
		styles := ui.NewStyles()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if !client.SetEnv(ctx, args[0], args[1]) {
			return fmt.Errorf("failed to set %s", args[0])
		}
		styles.Successf("set %s", args[0])
		return nil
	},
}

var envImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import all variables from a .env file onto the linked site",
	Long: `Read a dotenv file (default: .env in the project directory) and set
every variable on the linked site, one env:set call per key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := projectDir()
		file := filepath.Join(dir, ".env")
		if len(args) > 0 {
			file = args[0]
		}

		vars, err := godotenv.Read(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if len(vars) == 0 {
			return fmt.Errorf("no variables found in %s", file)
		}

		keys := make([]string, 0, len(vars))
		for k := range vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		client := netlify.NewClient(dir, viper.GetBool("debug"))
		styles := ui.NewStyles()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		failed := 0
		for _, k := range keys {
			if client.SetEnv(ctx, k, vars[k]) {
				styles.Successf("set %s", k)
			} else {
				styles.Errorf("failed to set %s", k)
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d variables failed", failed, len(keys))
		}
		return nil
	},
}

func init() {
	envCmd.AddCommand(envSetCmd)
	envCmd.AddCommand(envImportCmd)
	rootCmd.AddCommand(envCmd)
}
