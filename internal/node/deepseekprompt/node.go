// Package deepseekprompt implements the DeepSeek prompt-connector node: it
// rewrites (or invents) an image-generation prompt through the DeepSeek
// chat-completion API and formats a preview for the host UI.
package deepseekprompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"promptforge/internal/config"
	"promptforge/internal/deepseek"
	"promptforge/internal/node"
	"promptforge/internal/prompt"
)

const (
	// NodeID is the stable identifier the node registers under.
	NodeID = "deepseek-prompt-connector"

	displayName = "DeepSeek Prompt Connector"
	category    = "text/deepseek"
)

// Models selectable on the node.
const (
	ModelChat     = "deepseek-chat"
	ModelReasoner = "deepseek-reasoner"
)

const (
	minTemperature = 0.0
	maxTemperature = 2.0
	minMaxTokens   = 1
	maxMaxTokens   = 8192
)

// Node executes one prompt generation per invocation. Stateless apart from
// the client and configured defaults.
type Node struct {
	client      *deepseek.Client
	fallbackKey string
	defaults    config.DefaultsConfig
}

// New constructs the node. The configured API key, if any, is used when the
// invocation does not carry its own.
func New(cfg config.DeepSeekConfig, defaults config.DefaultsConfig) (*Node, error) {
	client, err := deepseek.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise deepseek client: %w", err)
	}

	return &Node{
		client:      client,
		fallbackKey: strings.TrimSpace(cfg.APIKey),
		defaults:    defaults,
	}, nil
}

// Spec declares the node's identity and field schema to the host.
func (n *Node) Spec() node.Spec {
	return node.Spec{
		ID:          NodeID,
		DisplayName: displayName,
		Category:    category,
		Inputs: []node.InputField{
			{Name: "api_key", Type: node.FieldString, Default: "", Secret: true},
			{Name: "model", Type: node.FieldString, Default: n.defaults.Model, Choices: []string{ModelChat, ModelReasoner}},
			{Name: "temperature", Type: node.FieldFloat, Default: n.defaults.Temperature, Min: floatPtr(minTemperature), Max: floatPtr(maxTemperature)},
			{Name: "max_tokens", Type: node.FieldInt, Default: n.defaults.MaxTokens, Min: floatPtr(minMaxTokens), Max: floatPtr(maxMaxTokens)},
			{Name: "output_language", Type: node.FieldString, Default: n.defaults.OutputLanguage, Choices: prompt.Languages()},
			{Name: "target_model", Type: node.FieldString, Default: n.defaults.TargetModel, Choices: prompt.TargetModels()},
			{Name: "prompt_style", Type: node.FieldString, Default: n.defaults.PromptStyle, Choices: prompt.Styles()},
			{Name: "system_prompt_mode", Type: node.FieldString, Default: n.defaults.SystemPromptMode, Choices: prompt.SystemPromptModes()},
			{Name: "custom_system_prompt", Type: node.FieldString, Default: "", Multiline: true},
			{Name: "text", Type: node.FieldString, Default: "", Multiline: true, Optional: true},
		},
		Outputs: []node.OutputField{
			{Name: "prompt", Type: node.FieldString},
			{Name: "preview", Type: node.FieldString},
		},
	}
}

// Execute validates the credential, composes the system and user prompts,
// performs the single API call and returns the prompt plus preview.
func (n *Node) Execute(ctx context.Context, in node.Inputs) (node.Outputs, error) {
	apiKey := n.fallbackKey
	if key, ok := in.String("api_key"); ok && strings.TrimSpace(key) != "" {
		apiKey = strings.TrimSpace(key)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api_key is required", node.ErrInvalidInput)
	}

	model := stringOr(in, "model", n.defaults.Model)
	temperature := node.ClampFloat(floatOr(in, "temperature", n.defaults.Temperature), minTemperature, maxTemperature)
	maxTokens := node.ClampInt(intOr(in, "max_tokens", n.defaults.MaxTokens), minMaxTokens, maxMaxTokens)
	outputLanguage := stringOr(in, "output_language", n.defaults.OutputLanguage)
	targetModel := stringOr(in, "target_model", n.defaults.TargetModel)
	promptStyle := stringOr(in, "prompt_style", n.defaults.PromptStyle)
	mode := stringOr(in, "system_prompt_mode", n.defaults.SystemPromptMode)
	customSystemPrompt, _ := in.String("custom_system_prompt")
	text, _ := in.String("text")

	systemPrompt, err := prompt.ResolveSystemPrompt(mode, customSystemPrompt)
	if err != nil {
		if errors.Is(err, prompt.ErrCustomPromptEmpty) {
			return nil, fmt.Errorf("%w: %v", node.ErrInvalidInput, err)
		}
		return nil, err
	}
	userMessage := prompt.BuildUserMessage(text, outputLanguage, targetModel, promptStyle)

	log.Debug().
		Str("node", NodeID).
		Str("model", model).
		Str("target_model", targetModel).
		Str("prompt_style", promptStyle).
		Str("output_language", outputLanguage).
		Msg("executing prompt generation")

	generated, err := n.client.WithAPIKey(apiKey).ChatCompletion(ctx, deepseek.ChatRequest{
		Model:        model,
		SystemPrompt: systemPrompt,
		UserMessage:  userMessage,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		return nil, err
	}

	preview := fmt.Sprintf("[model: %s] [style: %s] [lang: %s]\n\n%s",
		targetModel, promptStyle, outputLanguage, generated)

	return node.Outputs{
		"prompt":  generated,
		"preview": preview,
	}, nil
}

func stringOr(in node.Inputs, key, fallback string) string {
	if s, ok := in.String(key); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func floatOr(in node.Inputs, key string, fallback float64) float64 {
	if f, ok := in.Float(key); ok {
		return f
	}
	return fallback
}

func intOr(in node.Inputs, key string, fallback int) int {
	if i, ok := in.Int(key); ok {
		return i
	}
	return fallback
}

func floatPtr(v float64) *float64 {
	return &v
}
