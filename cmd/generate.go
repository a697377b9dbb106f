package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"promptforge/internal/node"
	"promptforge/internal/node/deepseekprompt"
)

var generateFlags struct {
	apiKey             string
	model              string
	temperature        float64
	maxTokens          int
	outputLanguage     string
	targetModel        string
	promptStyle        string
	systemPromptMode   string
	customSystemPrompt string
	text               string
	quiet              bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the prompt connector once and print the result",
	Long: `Execute the DeepSeek prompt-connector node once from the command line.
With --text the input prompt is improved; without it a prompt is generated
from scratch. Prints the preview, or only the raw prompt with --quiet.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringVar(&generateFlags.apiKey, "api-key", "", "DeepSeek API key (default: config or DEEPSEEK_API_KEY)")
	flags.StringVar(&generateFlags.model, "model", "", "chat model (deepseek-chat/deepseek-reasoner)")
	flags.Float64Var(&generateFlags.temperature, "temperature", -1, "sampling temperature [0.0, 2.0]")
	flags.IntVar(&generateFlags.maxTokens, "max-tokens", 0, "maximum output tokens [1, 8192]")
	flags.StringVar(&generateFlags.outputLanguage, "language", "", "output language (english/chinese)")
	flags.StringVar(&generateFlags.targetModel, "target-model", "", "target image model preset")
	flags.StringVar(&generateFlags.promptStyle, "style", "", "prompt style preset")
	flags.StringVar(&generateFlags.systemPromptMode, "mode", "", "system prompt mode (preset name or Custom)")
	flags.StringVar(&generateFlags.customSystemPrompt, "custom-system-prompt", "", "system prompt override for Custom mode")
	flags.StringVarP(&generateFlags.text, "text", "t", "", "input prompt to improve (empty: generate from scratch)")
	flags.BoolVarP(&generateFlags.quiet, "quiet", "q", false, "print only the raw prompt, no preview header")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	promptNode, err := deepseekprompt.New(cfg.DeepSeek, cfg.Defaults)
	if err != nil {
		return fmt.Errorf("initialise prompt connector node: %w", err)
	}

	inputs := node.Inputs{}
	setIfPresent := func(key, value string) {
		if value != "" {
			inputs[key] = value
		}
	}
	setIfPresent("api_key", generateFlags.apiKey)
	setIfPresent("model", generateFlags.model)
	setIfPresent("output_language", generateFlags.outputLanguage)
	setIfPresent("target_model", generateFlags.targetModel)
	setIfPresent("prompt_style", generateFlags.promptStyle)
	setIfPresent("system_prompt_mode", generateFlags.systemPromptMode)
	setIfPresent("custom_system_prompt", generateFlags.customSystemPrompt)
	setIfPresent("text", generateFlags.text)
	if generateFlags.temperature >= 0 {
		inputs["temperature"] = generateFlags.temperature
	}
	if generateFlags.maxTokens > 0 {
		inputs["max_tokens"] = generateFlags.maxTokens
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	outputs, err := promptNode.Execute(ctx, inputs)
	if err != nil {
		return err
	}

	field := "preview"
	if generateFlags.quiet {
		field = "prompt"
	}
	fmt.Fprintln(cmd.OutOrStdout(), outputs[field])
	return nil
}
