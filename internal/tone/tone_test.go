package tone

import (
	"testing"

	"github.com/rbright/animalese/internal/glyph"
	"github.com/rbright/animalese/internal/voice"
	"github.com/stretchr/testify/require"
)

var (
	male1   = voice.Voice{Gender: voice.Male, Variant: 1}
	male2   = voice.Voice{Gender: voice.Male, Variant: 2}
	female1 = voice.Voice{Gender: voice.Female, Variant: 1}
	female4 = voice.Voice{Gender: voice.Female, Variant: 4}
)

func TestVowelFrequency(t *testing.T) {
	tests := []struct {
		vowel rune
		v     voice.Voice
		want  float64
	}{
		{vowel: 'a', v: male1, want: 600},
		{vowel: 'e', v: male1, want: 500},
		{vowel: 'i', v: male1, want: 700},
		{vowel: 'o', v: male1, want: 400},
		{vowel: 'u', v: male1, want: 300},
		{vowel: 'a', v: male2, want: 650},
		{vowel: 'a', v: female1, want: 900},
		{vowel: 'i', v: female4, want: 1150},
		{vowel: 'u', v: female4, want: 750},
		{vowel: 'x', v: male1, want: 0},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, VowelFrequency(tc.vowel, tc.v), "%c %s", tc.vowel, tc.v)
	}
}

func TestConsonantFrequency(t *testing.T) {
	tests := []struct {
		consonant rune
		v         voice.Voice
		want      float64
	}{
		{consonant: 'k', v: male1, want: 450},
		{consonant: 's', v: male1, want: 550},
		{consonant: 'm', v: male1, want: 300},
		{consonant: 'l', v: male1, want: 400},
		{consonant: 'z', v: male1, want: 350},
		{consonant: 'b', v: female1, want: 600},
		{consonant: 'n', v: female4, want: 540},
		{consonant: 'w', v: male2, want: 380},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ConsonantFrequency(tc.consonant, tc.v), "%c %s", tc.consonant, tc.v)
	}
}

func TestDigitFrequency(t *testing.T) {
	got, ok := DigitFrequency('5')
	require.True(t, ok)
	require.Equal(t, 392.00, got)

	got, ok = DigitFrequency('0')
	require.True(t, ok)
	require.Equal(t, 659.25, got)

	got, ok = DigitFrequency('1')
	require.True(t, ok)
	require.Equal(t, 261.63, got)

	_, ok = DigitFrequency('a')
	require.False(t, ok)
}

func TestUpperCaseIsLongerAndHigherThanLower(t *testing.T) {
	cfg := voice.DefaultConfig()
	for _, pair := range [][2]rune{{'a', 'A'}, {'o', 'O'}, {'k', 'K'}, {'z', 'Z'}} {
		lower, ok := ForClass(glyph.Classify(pair[0]), cfg)
		require.True(t, ok)
		upper, ok := ForClass(glyph.Classify(pair[1]), cfg)
		require.True(t, ok)

		require.Greater(t, upper.DurationSeconds, lower.DurationSeconds, "%c", pair[0])
		require.Greater(t, upper.Pitch, lower.Pitch, "%c", pair[0])
		require.Equal(t, lower.FrequencyHz, upper.FrequencyHz, "%c", pair[0])
	}
}

func TestForClassCaseTable(t *testing.T) {
	cfg := voice.DefaultConfig()
	tests := []struct {
		input     rune
		wantDur   float64
		wantPitch float64
	}{
		{input: 'a', wantDur: 0.10, wantPitch: 1.0},
		{input: 'A', wantDur: 0.15, wantPitch: 1.2},
		{input: 'b', wantDur: 0.08, wantPitch: 1.0},
		{input: 'B', wantDur: 0.12, wantPitch: 1.1},
	}
	for _, tc := range tests {
		spec, ok := ForClass(glyph.Classify(tc.input), cfg)
		require.True(t, ok)
		require.Equal(t, tc.wantDur, spec.DurationSeconds, "%c", tc.input)
		require.InDelta(t, tc.wantPitch, spec.Pitch, 1e-12, "%c", tc.input)
	}
}

func TestForClassScalesConfiguredPitch(t *testing.T) {
	cfg := voice.NewConfig(male1, 1.5, 0.5, true)
	spec, ok := ForClass(glyph.Classify('A'), cfg)
	require.True(t, ok)
	require.InDelta(t, 1.8, spec.Pitch, 1e-12)

	spec, ok = ForClass(glyph.Classify(' '), cfg)
	require.True(t, ok)
	require.InDelta(t, 0.75, spec.Pitch, 1e-12)
}

func TestForClassWhitespace(t *testing.T) {
	spec, ok := ForClass(glyph.Classify(' '), voice.DefaultConfig())
	require.True(t, ok)
	require.Equal(t, Spec{FrequencyHz: 100, DurationSeconds: 0.03, Pitch: 0.5}, spec)

	spec, ok = ForClass(glyph.Classify(' '), voice.DefaultConfig().WithVoice(female1))
	require.True(t, ok)
	require.Equal(t, 150.0, spec.FrequencyHz)
}

func TestForClassDigitsIgnoreVoice(t *testing.T) {
	a, ok := ForClass(glyph.Classify('5'), voice.DefaultConfig())
	require.True(t, ok)
	b, ok := ForClass(glyph.Classify('5'), voice.DefaultConfig().WithVoice(female4))
	require.True(t, ok)
	require.Equal(t, a, b)
	require.Equal(t, 392.00, a.FrequencyHz)
}

func TestSpecialTone(t *testing.T) {
	tests := []struct {
		symbol rune
		want   Spec
	}{
		{symbol: '@', want: Spec{FrequencyHz: 800, DurationSeconds: 0.1, Pitch: 1}},
		{symbol: '#', want: Spec{FrequencyHz: 600, DurationSeconds: 0.08, Pitch: 1}},
		{symbol: '!', want: Spec{FrequencyHz: 1000, DurationSeconds: 0.15, Pitch: 1}},
		{symbol: '?', want: Spec{FrequencyHz: 400, DurationSeconds: 0.12, Pitch: 1}},
		{symbol: '~', want: Spec{FrequencyHz: 300, DurationSeconds: 0.2, Pitch: 1}},
		{symbol: '.', want: Spec{FrequencyHz: 200, DurationSeconds: 0.1, Pitch: 1}},
		{symbol: ',', want: Spec{FrequencyHz: 250, DurationSeconds: 0.05, Pitch: 1}},
		{symbol: '%', want: Spec{FrequencyHz: 500, DurationSeconds: 0.06, Pitch: 1}},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, SpecialTone(tc.symbol), "%c", tc.symbol)
	}
}

func TestForClassUnrecognized(t *testing.T) {
	_, ok := ForClass(glyph.Classify('\n'), voice.DefaultConfig())
	require.False(t, ok)
}
