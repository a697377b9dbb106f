package prompt

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveSystemPrompt(t *testing.T) {
	Convey("Given the preset system-prompt modes", t, func() {
		Convey("Each non-custom mode resolves to its canned instruction", func() {
			for _, mode := range SystemPromptModes() {
				if mode == ModeCustom {
					continue
				}
				got, err := ResolveSystemPrompt(mode, "")
				So(err, ShouldBeNil)
				So(got, ShouldEqual, systemPromptPresets[mode])
				So(got, ShouldNotBeBlank)
			}
		})

		Convey("An unrecognized mode falls back to the default preset", func() {
			got, err := ResolveSystemPrompt("No such mode", "")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, systemPromptPresets[DefaultMode])
		})
	})

	Convey("Given Custom mode", t, func() {
		Convey("An empty override fails", func() {
			_, err := ResolveSystemPrompt(ModeCustom, "")
			So(err, ShouldEqual, ErrCustomPromptEmpty)
		})

		Convey("A whitespace-only override fails", func() {
			_, err := ResolveSystemPrompt(ModeCustom, "   \n\t ")
			So(err, ShouldEqual, ErrCustomPromptEmpty)
		})

		Convey("A non-empty override is returned trimmed", func() {
			got, err := ResolveSystemPrompt(ModeCustom, "  Be terse.  ")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "Be terse.")
		})
	})
}

func TestBuildUserMessage(t *testing.T) {
	Convey("Given non-empty input text", t, func() {
		msg := BuildUserMessage("a cat", "english", "sdxl", "Detailed")

		Convey("The message wraps the user text in the improvement instruction", func() {
			So(msg, ShouldContainSubstring, "Improve this prompt for image generation.")
			So(msg, ShouldContainSubstring, "a cat")
		})

		Convey("The generation-requirements block names every selection with its hint", func() {
			So(msg, ShouldContainSubstring, "- Target image model: sdxl")
			So(msg, ShouldContainSubstring, targetModelHints["sdxl"])
			So(msg, ShouldContainSubstring, "- Prompt style: Detailed. "+promptStyleHints["Detailed"])
			So(msg, ShouldContainSubstring, "- Output language: english. "+languageHints["english"])
			So(msg, ShouldContainSubstring, "- Return only the final prompt text with no explanation.")
		})

		Convey("Surrounding whitespace in the text is trimmed", func() {
			padded := BuildUserMessage("  a cat \n", "english", "sdxl", "Detailed")
			So(padded, ShouldEqual, msg)
		})
	})

	Convey("Given empty input text", t, func() {
		msg := BuildUserMessage("", "english", "sdxl", "Detailed")

		Convey("The from-scratch instruction is used and no user text appears", func() {
			So(msg, ShouldContainSubstring, "Generate a complete high-quality image-generation prompt from scratch.")
			So(msg, ShouldNotContainSubstring, "Improve this prompt")
		})

		Convey("Whitespace-only text behaves like empty text", func() {
			So(BuildUserMessage("   ", "english", "sdxl", "Detailed"), ShouldEqual, msg)
		})
	})

	Convey("Given unrecognized selection keys", t, func() {
		msg := BuildUserMessage("a cat", "klingon", "no-such-model", "Baroque")

		Convey("Hints fall back to the defaults while the labels keep the caller's values", func() {
			So(msg, ShouldContainSubstring, "- Target image model: no-such-model")
			So(msg, ShouldContainSubstring, targetModelHints[DefaultTargetModel])
			So(msg, ShouldContainSubstring, promptStyleHints[DefaultStyle])
			So(msg, ShouldContainSubstring, languageHints[DefaultLanguage])
		})
	})
}

func TestHintTablesCoverExposedChoices(t *testing.T) {
	Convey("Every exposed choice has a table entry", t, func() {
		for _, mode := range SystemPromptModes() {
			if mode == ModeCustom {
				continue
			}
			So(systemPromptPresets, ShouldContainKey, mode)
		}
		for _, m := range TargetModels() {
			So(targetModelHints, ShouldContainKey, m)
		}
		for _, s := range Styles() {
			So(promptStyleHints, ShouldContainKey, s)
		}
		for _, l := range Languages() {
			So(languageHints, ShouldContainKey, l)
		}
	})

	Convey("No preset instruction carries stray surrounding whitespace", t, func() {
		for mode, preset := range systemPromptPresets {
			So(preset, ShouldEqual, strings.TrimSpace(preset))
			So(mode, ShouldNotBeBlank)
		}
	})
}
