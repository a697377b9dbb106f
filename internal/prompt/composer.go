// Package prompt composes the system and user messages sent to the
// chat-completion API from the node's configuration selections.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCustomPromptEmpty indicates Custom mode was selected without override text.
var ErrCustomPromptEmpty = errors.New("system_prompt_mode is Custom, but custom_system_prompt is empty")

// ResolveSystemPrompt returns the system instruction for the selected mode.
// In Custom mode the trimmed override text is required; any other mode looks
// up its preset, substituting the default preset for unknown mode names.
func ResolveSystemPrompt(mode, customSystemPrompt string) (string, error) {
	if mode == ModeCustom {
		custom := strings.TrimSpace(customSystemPrompt)
		if custom == "" {
			return "", ErrCustomPromptEmpty
		}
		return custom, nil
	}

	preset, ok := systemPromptPresets[mode]
	if !ok {
		return systemPromptPresets[DefaultMode], nil
	}
	return preset, nil
}

// BuildUserMessage assembles the task message: either an improvement
// instruction wrapping the user's text or a from-scratch instruction when the
// text is empty, followed by the generation-requirements block. Unknown keys
// fall back to the default hint, so this never fails.
func BuildUserMessage(text, outputLanguage, targetModel, promptStyle string) string {
	cleanText := strings.TrimSpace(text)
	languageHint := lookupHint(languageHints, outputLanguage, DefaultLanguage)
	targetModelHint := lookupHint(targetModelHints, targetModel, DefaultTargetModel)
	styleHint := lookupHint(promptStyleHints, promptStyle, DefaultStyle)

	controlBlock := fmt.Sprintf(
		"Generation requirements:\n"+
			"- Target image model: %s\n"+
			"- Model adaptation note: %s\n"+
			"- Prompt style: %s. %s\n"+
			"- Output language: %s. %s\n"+
			"- Return only the final prompt text with no explanation.",
		targetModel, targetModelHint, promptStyle, styleHint, outputLanguage, languageHint,
	)

	if cleanText != "" {
		return fmt.Sprintf(
			"Improve this prompt for image generation. "+
				"Keep intent, but increase quality and specificity:\n\n%s\n\n%s",
			cleanText, controlBlock,
		)
	}
	return fmt.Sprintf(
		"No input prompt was provided. "+
			"Generate a complete high-quality image-generation prompt from scratch.\n\n%s",
		controlBlock,
	)
}

func lookupHint(table map[string]string, key, fallback string) string {
	if hint, ok := table[key]; ok {
		return hint
	}
	return table[fallback]
}
