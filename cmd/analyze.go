package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"deploykit/internal/analyzer"
	"deploykit/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Detect the project type and deployment settings",
	Long: `Scan a project directory and report its detected type (static,
python-functions or node-project), publish and functions directories,
build command, and any environment variables the source references.

Examples:
  deploykit analyze
  deploykit analyze ./my-site
  deploykit analyze -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := projectDir()
		if len(args) > 0 {
			dir = args[0]
		}
		output, _ := cmd.Flags().GetString("output")

		analysis, err := analyzer.Analyze(dir)
		if err != nil {
			return err
		}

		switch output {
		case "json":
			data, err := json.MarshalIndent(analysis, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode analysis: %w", err)
			}
			fmt.Println(string(data))
		case "yaml":
			data, err := yaml.Marshal(analysis)
			if err != nil {
				return fmt.Errorf("failed to encode analysis: %w", err)
			}
			fmt.Print(string(data))
		case "text":
			printAnalysis(analysis)
		default:
			return fmt.Errorf("unknown output format: %s (want text, json or yaml)", output)
		}
		return nil
	},
}

func printAnalysis(a *analyzer.Analysis) {
	styles := ui.NewStyles()

	fmt.Println(styles.Header.Render("Project analysis"))
	styles.Infof("Path:         %s", a.Path)
	styles.Infof("Type:         %s", a.TypeName)
	styles.Infof("Publish dir:  %s", a.PublishDir)
	if a.FunctionsDir != "" {
		styles.Infof("Functions:    %s", a.FunctionsDir)
	}
	if a.BuildCommand != "" {
		styles.Infof("Build:        %s", a.BuildCommand)
	}
	styles.Infof("Files:        %d", a.FileCount)

	if len(a.PythonFiles) > 0 {
		styles.Infof("Python files: %s", strings.Join(a.PythonFiles, ", "))
	}
	if len(a.RequiredEnvVars) > 0 {
		styles.Warnf("Env vars referenced: %s", strings.Join(a.RequiredEnvVars, ", "))
	}
}

func init() {
	analyzeCmd.Flags().StringP("output", "o", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(analyzeCmd)
}
