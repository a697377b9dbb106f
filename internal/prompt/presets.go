package prompt

// System-prompt modes selectable on the node. ModeCustom switches to the
// caller-supplied instruction instead of a canned preset.
const (
	ModeImprove        = "Improve prompt (default)"
	ModeCreate         = "Create prompt from idea"
	ModePhotorealistic = "Photorealistic refinement"
	ModeCinematic      = "Cinematic style"
	ModeAnime          = "Anime style"
	ModeCustom         = "Custom"
)

// Fallback keys used when a lookup misses. The original connector silently
// substitutes these rather than failing, and callers rely on that.
const (
	DefaultMode        = ModeImprove
	DefaultTargetModel = "sdxl"
	DefaultStyle       = "Detailed"
	DefaultLanguage    = "english"
)

var systemPromptPresets = map[string]string{
	ModeImprove: "You are an expert prompt engineer for image generation. " +
		"Rewrite and improve the user's prompt to be clearer, richer in visual details, " +
		"composition, lighting, style, quality tags, and camera/lens hints when relevant. " +
		"Return only the final improved prompt text.",
	ModeCreate: "You are an expert prompt engineer for image generation. " +
		"If user provides an idea, produce one strong, production-ready image prompt. " +
		"If input is empty, invent a compelling prompt yourself. " +
		"Return only the final prompt text.",
	ModePhotorealistic: "You improve prompts for photorealistic image generation. " +
		"Add scene detail, lens/camera cues, realistic lighting, textures, and composition. " +
		"Avoid fantasy terms unless user asks. Return only the final prompt text.",
	ModeCinematic: "You improve prompts in cinematic style. " +
		"Enhance storytelling, framing, mood, color grading, lighting direction, and shot type. " +
		"Return only the final prompt text.",
	ModeAnime: "You improve prompts for anime-style image generation. " +
		"Enhance character design, line style, palette, mood, and composition. " +
		"Return only the final prompt text.",
}

var targetModelHints = map[string]string{
	"z-image turbo":        "Prioritize concise but high-signal wording with strong visual anchors and minimal redundancy.",
	"nano banana pro":      "Use practical, concrete descriptors and stable composition instructions.",
	"seedream 4.5":         "Emphasize imaginative atmosphere, cinematic lighting, and rich scene storytelling.",
	"flux 2 klein 9b":      "Use clear structure with subject, environment, lighting, and style in predictable order.",
	"qwen image 2512":      "Provide balanced detail and explicit visual constraints for reliable output.",
	"qwen edit image 2511": "Write edit-oriented instructions, preserving base content while specifying precise changes.",
	"sdxl":                 "Use SDXL-friendly descriptive style with clear subject, style, composition, and quality cues.",
}

var promptStyleHints = map[string]string{
	"Short":     "Keep the output short and compact.",
	"Detailed":  "Provide a detailed, information-rich prompt.",
	"Artistic":  "Use expressive artistic language and mood-driven descriptors.",
	"Cinematic": "Use cinematic framing, shot language, and color-grading cues.",
	"Technical": "Use technical, precise wording focused on controllable visual attributes.",
}

var languageHints = map[string]string{
	"english": "Return the final prompt in English only.",
	"chinese": "Return the final prompt in Simplified Chinese only.",
}

// SystemPromptModes lists every selectable system-prompt mode in display order.
func SystemPromptModes() []string {
	return []string{
		ModeImprove,
		ModeCreate,
		ModePhotorealistic,
		ModeCinematic,
		ModeAnime,
		ModeCustom,
	}
}

// TargetModels lists the supported target image models in display order.
func TargetModels() []string {
	return []string{
		"z-image turbo",
		"nano banana pro",
		"seedream 4.5",
		"flux 2 klein 9b",
		"qwen image 2512",
		"qwen edit image 2511",
		"sdxl",
	}
}

// Styles lists the supported prompt styles in display order.
func Styles() []string {
	return []string{"Short", "Detailed", "Artistic", "Cinematic", "Technical"}
}

// Languages lists the supported output languages.
func Languages() []string {
	return []string{"english", "chinese"}
}
