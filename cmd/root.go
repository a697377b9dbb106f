package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"promptforge/internal/config"
	"promptforge/internal/logger"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "promptforge",
	Short: "PromptForge - DeepSeek image-prompt connector node",
	Long: `PromptForge hosts the DeepSeek prompt-connector node: it rewrites or
invents image-generation prompts through the DeepSeek chat-completion API,
either as a one-shot CLI command or as an HTTP node host.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: built-in defaults plus DEEPSEEK_API_KEY)")
}

func initConfig() {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	logger.Init(cfg.Log)
	log.Debug().Str("config_file", cfgFile).Msg("configuration loaded")
}
