package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deploykit/internal/analyzer"
	"deploykit/internal/generator"
	"deploykit/internal/ui"
	"deploykit/internal/wizard"
)

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate netlify.toml and companion config files",
	Long: `Analyze the project and write the deployment configuration:
netlify.toml, .gitignore, .env.example (when environment variables are
referenced) and a functions requirements.txt (for python-functions
projects). Detected settings can be overridden per flag. Existing files
are kept unless confirmed or --force is set.

Examples:
  deploykit generate
  deploykit generate ./my-site --force
  deploykit generate --publish-dir dist --build-command "npm run build"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := projectDir()
		if len(args) > 0 {
			dir = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		noGitignore, _ := cmd.Flags().GetBool("no-gitignore")
		noEnvExample, _ := cmd.Flags().GetBool("no-env-example")
		noRequirements, _ := cmd.Flags().GetBool("no-requirements")
		styles := ui.NewStyles()

		analysis, err := analyzer.Analyze(dir)
		if err != nil {
			return err
		}
		styles.Infof("Detected: %s", analysis.TypeName)

		// Flag overrides win over detection.
		publishDir := analysis.PublishDir
		if v, _ := cmd.Flags().GetString("publish-dir"); v != "" {
			publishDir = v
		}
		functionsDir := analysis.FunctionsDir
		if v, _ := cmd.Flags().GetString("functions-dir"); v != "" {
			functionsDir = v
		}
		buildCommand := analysis.BuildCommand
		if v, _ := cmd.Flags().GetString("build-command"); v != "" {
			buildCommand = v
		}

		prompt := wizard.NewPrompter(os.Stdin, os.Stdout)
		confirm := func(name string) bool {
			ok, perr := prompt.YesNo(fmt.Sprintf("%s already exists. Overwrite?", name), false)
			return perr == nil && ok
		}

		type planned struct {
			name    string
			content string
		}
		plan := []planned{
			{"netlify.toml", generator.Manifest(generator.ManifestOptions{
				PublishDir:   publishDir,
				FunctionsDir: functionsDir,
				BuildCommand: buildCommand,
			})},
		}
		if !noGitignore && !analysis.Detected.Gitignore {
			plan = append(plan, planned{".gitignore", generator.Gitignore()})
		}
		if !noEnvExample && len(analysis.RequiredEnvVars) > 0 && !analysis.Detected.EnvExample {
			plan = append(plan, planned{".env.example", generator.EnvExample(analysis.RequiredEnvVars)})
		}
		if !noRequirements && functionsDir != "" && !analysis.Detected.Requirements {
			plan = append(plan, planned{functionsDir + "/requirements.txt", generator.Requirements(analysis.RequiredEnvVars)})
		}

		for _, p := range plan {
			status, werr := generator.WriteFile(dir, p.name, p.content, force, confirm)
			if werr != nil {
				return fmt.Errorf("failed to write %s: %w", p.name, werr)
			}
			if status == generator.Written {
				styles.Successf("wrote %s", p.name)
			} else {
				styles.Infof("kept existing %s", p.name)
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolP("force", "f", false, "overwrite existing files without asking")
	generateCmd.Flags().String("publish-dir", "", "override the detected publish directory")
	generateCmd.Flags().String("functions-dir", "", "override the detected functions directory")
	generateCmd.Flags().String("build-command", "", "override the detected build command")
	generateCmd.Flags().Bool("no-gitignore", false, "skip generating .gitignore")
	generateCmd.Flags().Bool("no-env-example", false, "skip generating .env.example")
	generateCmd.Flags().Bool("no-requirements", false, "skip generating requirements.txt")
	rootCmd.AddCommand(generateCmd)
}
