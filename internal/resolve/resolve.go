package resolve

import (
	"github.com/rbright/animalese/internal/glyph"
	"github.com/rbright/animalese/internal/tone"
	"github.com/rbright/animalese/internal/voice"
)

// Resolve builds the fallback chain for class under cfg.
// It is pure: sample existence is checked later by whoever plays the chain.
func Resolve(class glyph.Class, cfg voice.Config, layout Layout) Chain {
	switch class.Kind {
	case glyph.Vowel, glyph.Consonant, glyph.Digit:
		return Chain{
			SampleFile{Path: layout.VoiceSample(cfg.Voice, class.Char)},
			synthesized(class, cfg),
		}
	case glyph.Special:
		if !cfg.SpecialSounds {
			return nil
		}
		name, ok := SymbolName(class.Char)
		if !ok {
			return Chain{synthesized(class, cfg)}
		}
		if class.Char == '!' || class.Char == '?' {
			return Chain{
				SampleFile{Path: layout.Vocal(cfg.Voice, name)},
				SampleFile{Path: layout.Effect(name)},
				synthesized(class, cfg),
			}
		}
		return Chain{
			SampleFile{Path: layout.Effect(name)},
			synthesized(class, cfg),
		}
	case glyph.Whitespace:
		return Chain{synthesized(class, cfg)}
	default:
		return nil
	}
}

// Backspace builds the deletion chain; it follows the special-sounds switch.
func Backspace(cfg voice.Config, layout Layout) Chain {
	if !cfg.SpecialSounds {
		return nil
	}
	spec := tone.Backspace(cfg)
	return Chain{
		SampleFile{Path: layout.Effect(BackspaceName)},
		SynthesizedTone{
			FrequencyHz:     spec.FrequencyHz,
			DurationSeconds: spec.DurationSeconds,
			PitchMultiplier: spec.Pitch,
			VolumeLevel:     cfg.Volume,
			Category:        BackspaceName,
		},
	}
}

func synthesized(class glyph.Class, cfg voice.Config) SynthesizedTone {
	spec, _ := tone.ForClass(class, cfg)
	return SynthesizedTone{
		FrequencyHz:     spec.FrequencyHz,
		DurationSeconds: spec.DurationSeconds,
		PitchMultiplier: spec.Pitch,
		VolumeLevel:     cfg.Volume,
		Category:        Category(class),
	}
}

// Category names the sound family of class for logs and visual feedback.
func Category(class glyph.Class) string {
	switch class.Kind {
	case glyph.Vowel:
		return "vowel"
	case glyph.Consonant:
		return "consonant"
	case glyph.Digit:
		return "note"
	case glyph.Whitespace:
		return "space"
	case glyph.Special:
		switch class.Char {
		case '!':
			return "exclamation"
		case '?':
			return "question"
		case '.':
			return "period"
		case ',':
			return "comma"
		default:
			return "special"
		}
	default:
		return ""
	}
}
