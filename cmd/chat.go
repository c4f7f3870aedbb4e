package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"deploykit/internal/ai"
	"deploykit/internal/analyzer"
	"deploykit/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the deployment assistant a question",
	Long: `Send one question to the configured AI provider. The current project
analysis is attached as context unless --no-context is set.

The API key is resolved from --api-key, then the
ai.providers.<provider>.api_key config entry, then the provider's usual
environment variable (OPENAI_API_KEY, ANTHROPIC_API_KEY, GOOGLE_API_KEY).

Examples:
  deploykit chat "why does my deploy 404"
  deploykit chat --provider anthropic "how do I add a redirect"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		provider, _ := cmd.Flags().GetString("provider")
		apiKey, _ := cmd.Flags().GetString("api-key")
		noContext, _ := cmd.Flags().GetBool("no-context")

		apiKey = resolveAPIKey(provider, apiKey)
		if apiKey == "" {
			return fmt.Errorf("no API key for %s (set --api-key or %s)", provider, apiKeyEnvVar(provider))
		}

		client, err := ai.NewClient(provider, apiKey)
		if err != nil {
			return err
		}

		projectContext := ""
		if !noContext {
			if analysis, aerr := analyzer.Analyze(projectDir()); aerr == nil {
				if data, jerr := json.Marshal(analysis); jerr == nil {
					projectContext = string(data)
				}
			}
		}

		reply, err := client.Chat(context.Background(), message, projectContext)
		if err != nil {
			return err
		}

		fmt.Println(reply)
		return nil
	},
}

var chatTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify the configured AI provider credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, _ := cmd.Flags().GetString("provider")
		apiKey, _ := cmd.Flags().GetString("api-key")

		apiKey = resolveAPIKey(provider, apiKey)
		if apiKey == "" {
			return fmt.Errorf("no API key for %s (set --api-key or %s)", provider, apiKeyEnvVar(provider))
		}

		client, err := ai.NewClient(provider, apiKey)
		if err != nil {
			return err
		}
		if err := client.TestConnection(context.Background()); err != nil {
			return err
		}

		ui.NewStyles().Successf("%s connection ok", provider)
		return nil
	},
}

func resolveAPIKey(provider, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if key := configString("ai.providers." + provider + ".api_key"); key != "" {
		return key
	}
	return os.Getenv(apiKeyEnvVar(provider))
}

func apiKeyEnvVar(provider string) string {
	switch provider {
	case ai.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ai.ProviderGoogle:
		return "GOOGLE_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func init() {
	for _, c := range []*cobra.Command{chatCmd, chatTestCmd} {
		c.Flags().StringP("provider", "p", ai.ProviderOpenAI, "AI provider: openai, anthropic or google")
		c.Flags().String("api-key", "", "provider API key (overrides config and environment)")
	}
	chatCmd.Flags().Bool("no-context", false, "do not attach the project analysis as context")
	chatCmd.AddCommand(chatTestCmd)
	rootCmd.AddCommand(chatCmd)
}
