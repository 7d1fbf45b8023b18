// Package tone maps classified characters to synthesis frequency, duration, and pitch.
package tone

import (
	"github.com/rbright/animalese/internal/glyph"
	"github.com/rbright/animalese/internal/voice"
)

// Spec describes one synthesized blip before volume is applied.
type Spec struct {
	FrequencyHz     float64
	DurationSeconds float64
	Pitch           float64
}

const (
	vowelVariantStepHz     = 50
	consonantVariantStepHz = 30

	maleConsonantBaseHz   = 350
	femaleConsonantBaseHz = 500

	maleWhitespaceHz   = 100
	femaleWhitespaceHz = 150
	whitespaceDuration = 0.03
	whitespacePitch    = 0.5

	digitDuration = 0.2
)

var (
	maleVowels = map[rune]float64{'a': 600, 'e': 500, 'i': 700, 'o': 400, 'u': 300}

	femaleVowels = map[rune]float64{'a': 900, 'e': 800, 'i': 1000, 'o': 700, 'u': 600}

	// digitNotes runs C4..E5 for digits 1..9 then 0.
	digitNotes = [10]float64{261.63, 293.66, 329.63, 349.23, 392.00, 440.00, 493.88, 523.25, 587.33, 659.25}

	specialTones = map[rune]Spec{
		'@': {FrequencyHz: 800, DurationSeconds: 0.1},
		'#': {FrequencyHz: 600, DurationSeconds: 0.08},
		'!': {FrequencyHz: 1000, DurationSeconds: 0.15},
		'?': {FrequencyHz: 400, DurationSeconds: 0.12},
		'~': {FrequencyHz: 300, DurationSeconds: 0.2},
		'.': {FrequencyHz: 200, DurationSeconds: 0.1},
		',': {FrequencyHz: 250, DurationSeconds: 0.05},
	}
	defaultSpecialTone = Spec{FrequencyHz: 500, DurationSeconds: 0.06}

	// backspaceTone is a soft click for deletions.
	backspaceTone = Spec{FrequencyHz: 180, DurationSeconds: 0.05}
)

// consonantOffset returns the category offset: hard stops, fricatives, nasals, liquids.
func consonantOffset(c rune) float64 {
	switch c {
	case 'k', 'g', 't', 'd', 'p', 'b':
		return 100
	case 's', 'f', 'h':
		return 200
	case 'm', 'n':
		return -50
	case 'l', 'r':
		return 50
	default:
		return 0
	}
}

// VowelFrequency returns the synthesis frequency of a lower-case vowel for v.
// Unknown runes yield 0.
func VowelFrequency(vowel rune, v voice.Voice) float64 {
	table := maleVowels
	if v.IsFemale() {
		table = femaleVowels
	}
	base, ok := table[vowel]
	if !ok {
		return 0
	}
	return base + float64(v.Variant-1)*vowelVariantStepHz
}

// ConsonantFrequency returns the synthesis frequency of a lower-case consonant for v.
func ConsonantFrequency(consonant rune, v voice.Voice) float64 {
	base := float64(maleConsonantBaseHz)
	if v.IsFemale() {
		base = femaleConsonantBaseHz
	}
	return base + consonantOffset(consonant) + float64(v.Variant-1)*consonantVariantStepHz
}

// DigitFrequency returns the musical note for a digit, '1'..'9' then '0'.
func DigitFrequency(digit rune) (float64, bool) {
	switch {
	case digit == '0':
		return digitNotes[9], true
	case digit >= '1' && digit <= '9':
		return digitNotes[digit-'1'], true
	default:
		return 0, false
	}
}

// SpecialTone returns the fixed fallback tone of a symbol, or the shared default.
func SpecialTone(symbol rune) Spec {
	spec, ok := specialTones[symbol]
	if !ok {
		spec = defaultSpecialTone
	}
	spec.Pitch = 1.0
	return spec
}

// ForClass computes the synthesis spec for class under cfg.
// The returned pitch already includes the configured pitch multiplier.
// It reports false for classes that never sound.
func ForClass(class glyph.Class, cfg voice.Config) (Spec, bool) {
	switch class.Kind {
	case glyph.Vowel:
		spec := Spec{FrequencyHz: VowelFrequency(class.Lower(), cfg.Voice), DurationSeconds: 0.10, Pitch: cfg.Pitch}
		if class.Upper {
			spec.DurationSeconds = 0.15
			spec.Pitch = cfg.Pitch * 1.2
		}
		return spec, true
	case glyph.Consonant:
		spec := Spec{FrequencyHz: ConsonantFrequency(class.Lower(), cfg.Voice), DurationSeconds: 0.08, Pitch: cfg.Pitch}
		if class.Upper {
			spec.DurationSeconds = 0.12
			spec.Pitch = cfg.Pitch * 1.1
		}
		return spec, true
	case glyph.Digit:
		freq, ok := DigitFrequency(class.Char)
		if !ok {
			return Spec{}, false
		}
		return Spec{FrequencyHz: freq, DurationSeconds: digitDuration, Pitch: cfg.Pitch}, true
	case glyph.Special:
		spec := SpecialTone(class.Char)
		spec.Pitch = cfg.Pitch
		return spec, true
	case glyph.Whitespace:
		freq := float64(maleWhitespaceHz)
		if cfg.Voice.IsFemale() {
			freq = femaleWhitespaceHz
		}
		return Spec{FrequencyHz: freq, DurationSeconds: whitespaceDuration, Pitch: cfg.Pitch * whitespacePitch}, true
	default:
		return Spec{}, false
	}
}

// Backspace returns the deletion click for cfg.
func Backspace(cfg voice.Config) Spec {
	spec := backspaceTone
	spec.Pitch = cfg.Pitch
	return spec
}
