package resolve

import (
	"path/filepath"
	"testing"

	"github.com/rbright/animalese/internal/glyph"
	"github.com/rbright/animalese/internal/voice"
	"github.com/stretchr/testify/require"
)

var testLayout = Layout{Root: "/assets/audio_wav"}

func TestResolveUpperVowelMale2EndToEnd(t *testing.T) {
	cfg := voice.NewConfig(voice.Voice{Gender: voice.Male, Variant: 2}, 1.0, 0.5, true)

	chain := Resolve(glyph.Classify('A'), cfg, testLayout)
	require.Len(t, chain, 2)
	require.Equal(t, SampleFile{Path: "/assets/audio_wav/animalese/male/voice_2/a.wav"}, chain[0])

	final, ok := chain.Final()
	require.True(t, ok)
	require.Equal(t, 650.0, final.FrequencyHz)
	require.Equal(t, 0.15, final.DurationSeconds)
	require.InDelta(t, 1.2, final.PitchMultiplier, 1e-12)
	require.Equal(t, 0.5, final.VolumeLevel)
	require.Equal(t, "vowel", final.Category)
}

func TestResolveDigitsReachNoteFrequencies(t *testing.T) {
	for _, v := range voice.Catalogue() {
		cfg := voice.DefaultConfig().WithVoice(v)

		chain := Resolve(glyph.Classify('5'), cfg, testLayout)
		require.Equal(t, SampleFile{Path: testLayout.VoiceSample(v, '5')}, chain[0])
		final, ok := chain.Final()
		require.True(t, ok)
		require.Equal(t, 392.00, final.FrequencyHz)

		final, ok = Resolve(glyph.Classify('0'), cfg, testLayout).Final()
		require.True(t, ok)
		require.Equal(t, 659.25, final.FrequencyHz)
	}
}

func TestResolveSpecialGatedBySetting(t *testing.T) {
	for _, v := range voice.Catalogue() {
		for _, pitch := range []float64{0.5, 1, 2} {
			cfg := voice.NewConfig(v, pitch, 0.7, false)
			require.True(t, Resolve(glyph.Classify('@'), cfg, testLayout).Silent())
			require.True(t, Resolve(glyph.Classify('?'), cfg, testLayout).Silent())
			require.True(t, Backspace(cfg, testLayout).Silent())
		}
	}
}

func TestResolveExclamationAndQuestionChains(t *testing.T) {
	cfg := voice.DefaultConfig().WithVoice(voice.Voice{Gender: voice.Female, Variant: 3})

	chain := Resolve(glyph.Classify('!'), cfg, testLayout)
	require.Len(t, chain, 3)
	require.Equal(t, SampleFile{Path: "/assets/audio_wav/vocals/female/voice_3/exclamation.wav"}, chain[0])
	require.Equal(t, SampleFile{Path: "/assets/audio_wav/sfx/exclamation.wav"}, chain[1])
	final, ok := chain.Final()
	require.True(t, ok)
	require.Equal(t, 1000.0, final.FrequencyHz)
	require.Equal(t, 0.15, final.DurationSeconds)

	chain = Resolve(glyph.Classify('?'), cfg, testLayout)
	require.Len(t, chain, 3)
	require.Equal(t, SampleFile{Path: "/assets/audio_wav/vocals/female/voice_3/question.wav"}, chain[0])
	require.Equal(t, SampleFile{Path: "/assets/audio_wav/sfx/question.wav"}, chain[1])
	final, ok = chain.Final()
	require.True(t, ok)
	require.Equal(t, 400.0, final.FrequencyHz)
	require.Equal(t, "question", final.Category)
}

func TestResolveOtherSpecialUsesSymbolEffect(t *testing.T) {
	chain := Resolve(glyph.Classify('@'), voice.DefaultConfig(), testLayout)
	require.Len(t, chain, 2)
	require.Equal(t, SampleFile{Path: "/assets/audio_wav/sfx/at.wav"}, chain[0])
	final, ok := chain.Final()
	require.True(t, ok)
	require.Equal(t, 800.0, final.FrequencyHz)

	chain = Resolve(glyph.Classify('%'), voice.DefaultConfig(), testLayout)
	require.Equal(t, SampleFile{Path: "/assets/audio_wav/sfx/percent.wav"}, chain[0])
	final, _ = chain.Final()
	require.Equal(t, 500.0, final.FrequencyHz)
	require.Equal(t, 0.06, final.DurationSeconds)
}

func TestResolveWhitespaceIsAlwaysSynthesized(t *testing.T) {
	chain := Resolve(glyph.Classify(' '), voice.DefaultConfig(), testLayout)
	require.Len(t, chain, 1)
	final, ok := chain.Final()
	require.True(t, ok)
	require.Equal(t, 100.0, final.FrequencyHz)
	require.Equal(t, 0.03, final.DurationSeconds)
	require.Equal(t, 0.5, final.PitchMultiplier)
}

func TestResolveUnrecognizedIsSilent(t *testing.T) {
	require.True(t, Resolve(glyph.Classify('\n'), voice.DefaultConfig(), testLayout).Silent())
	require.True(t, Resolve(glyph.Classify('é'), voice.DefaultConfig(), testLayout).Silent())
}

func TestEveryAudibleChainEndsInTone(t *testing.T) {
	cfg := voice.DefaultConfig()
	for _, r := range "aeiouAEIOUbcdfghjklmnpqrstvwxyzBCDFGHJKLMNPQRSTVWXYZ0123456789 " + string(glyph.Specials()) {
		chain := Resolve(glyph.Classify(r), cfg, testLayout)
		require.False(t, chain.Silent(), "char %q", r)
		_, ok := chain.Final()
		require.True(t, ok, "char %q", r)
	}
}

func TestEverySpecialHasSymbolName(t *testing.T) {
	seen := map[string]rune{}
	for _, r := range glyph.Specials() {
		name, ok := SymbolName(r)
		require.True(t, ok, "char %q", r)
		prev, dup := seen[name]
		require.False(t, dup, "name %q used by %q and %q", name, prev, r)
		seen[name] = r
	}
}

func TestLayoutPaths(t *testing.T) {
	layout := Layout{Root: filepath.Join("root")}
	v := voice.Voice{Gender: voice.Female, Variant: 4}
	require.Equal(t, filepath.Join("root", "animalese", "female", "voice_4", "q.wav"), layout.VoiceSample(v, 'Q'))
	require.Equal(t, filepath.Join("root", "animalese", "female", "voice_4"), layout.VoiceDir(v))
	require.Equal(t, filepath.Join("root", "sfx", "backspace.wav"), layout.Effect(BackspaceName))
}

func TestBackspaceChain(t *testing.T) {
	chain := Backspace(voice.DefaultConfig(), testLayout)
	require.Len(t, chain, 2)
	require.Equal(t, SampleFile{Path: "/assets/audio_wav/sfx/backspace.wav"}, chain[0])
	final, ok := chain.Final()
	require.True(t, ok)
	require.Equal(t, 180.0, final.FrequencyHz)
}

func TestRenderedFrequency(t *testing.T) {
	tone := SynthesizedTone{FrequencyHz: 650, PitchMultiplier: 1.2}
	require.InDelta(t, 780, tone.RenderedFrequency(), 1e-9)
	require.Equal(t, 650.0, SynthesizedTone{FrequencyHz: 650}.RenderedFrequency())
}
