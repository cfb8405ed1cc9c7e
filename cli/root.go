package cli

import (
	"github.com/spf13/cobra"

	"github.com/21R01A7263/docGPT/config"
	"github.com/21R01A7263/docGPT/pkg/logging"
)

var (
	// Global flags
	envFile  string
	provider string
)

var rootCmd = &cobra.Command{
	Use:   "docgpt",
	Short: "Chat with a single PDF or DOCX document",
	Long: `docgpt answers questions about one uploaded document.

The whole extracted text is sent to the configured model with every question,
and answers are grounded strictly in that text.

Run "docgpt serve" for the web UI or "docgpt ask" from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(envFile); err != nil {
			return err
		}
		logging.Init(config.LoadConfig().AppEnv)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "LLM provider (gemini or openai), overrides LLM_PROVIDER")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	if provider != "" {
		cfg.LLMProvider = config.NormalizeProvider(provider)
	}
	return cfg
}
