package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deploykit",
	Short: "Analyze, configure and deploy static sites to Netlify",
	Long: `Deploykit inspects a project directory, figures out what kind of site it
is, generates the platform configuration files, and drives the Netlify CLI
through site creation and deploys. It also ships a local web UI and an AI
assistant for troubleshooting failed deploys.

Invoked with a bare path, it starts the guided wizard on that project:
  deploykit ./my-site`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		info, err := os.Stat(args[0])
		if err != nil || !info.IsDir() {
			return fmt.Errorf("unknown command or path: %s", args[0])
		}
		viper.Set("dir", args[0])
		return wizardCmd.RunE(cmd, nil)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.deploykit.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output (shows CLI invocations)")
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "project directory to operate on")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".deploykit")
	}

	viper.SetEnvPrefix("DEPLOYKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// configString reads a trimmed string from the merged config.
func configString(key string) string {
	return strings.TrimSpace(viper.GetString(key))
}

// projectDir resolves the project directory from the persistent flag.
func projectDir() string {
	dir := viper.GetString("dir")
	if dir == "" {
		return "."
	}
	return dir
}
