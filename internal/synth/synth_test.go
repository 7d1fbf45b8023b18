package synth

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynthesizeIsDeterministic(t *testing.T) {
	first := Synthesize(440, 0.1, 1.0)
	second := Synthesize(440, 0.1, 1.0)
	require.True(t, bytes.Equal(first, second))
}

func TestSynthesizeLengthInvariant(t *testing.T) {
	tests := []struct {
		freq   float64
		dur    float64
		volume float64
	}{
		{freq: 440, dur: 0.1, volume: 1.0},
		{freq: 650, dur: 0.15, volume: 0.5},
		{freq: 100, dur: 0.03, volume: 0.25},
		{freq: 350, dur: 0.08, volume: 0},
		{freq: 261.63, dur: 0.2, volume: 0.9},
		{freq: 1000, dur: 0.0001, volume: 1},
	}
	for _, tc := range tests {
		got := Synthesize(tc.freq, tc.dur, tc.volume)
		require.Len(t, got, int(math.Floor(tc.dur*SampleRate))*2, "f=%v d=%v", tc.freq, tc.dur)
	}
}

func TestSynthesizeNonPositiveDurationIsEmpty(t *testing.T) {
	require.Empty(t, Synthesize(440, 0, 1))
	require.Empty(t, Synthesize(440, -1, 1))
	require.Equal(t, 0, SampleCount(0))
}

func TestSamplesMatchReferenceValues(t *testing.T) {
	samples := Samples(440, 0.1, 1.0)
	require.Len(t, samples, 2205)

	want := map[int]int16{
		0:    0,
		1:    35,
		10:   1591,
		100:  -810,
		220:  14284,
		500:  -9061,
		2000: -5631,
		2204: -7,
	}
	for index, value := range want {
		require.Equal(t, value, samples[index], "sample %d", index)
	}

	samples = Samples(650, 0.15, 0.5)
	require.Len(t, samples, 3307)
	require.Equal(t, int16(200), samples[3])
	require.Equal(t, int16(-18867), samples[300])
	require.Equal(t, int16(17347), samples[1500])
	require.Equal(t, int16(4), samples[3306])
}

func TestSynthesizeBytesAreLittleEndianSamples(t *testing.T) {
	samples := Samples(440, 0.1, 1.0)
	raw := Synthesize(440, 0.1, 1.0)
	for i, s := range samples {
		require.Equal(t, s, int16(binary.LittleEndian.Uint16(raw[2*i:])))
	}
}

func TestSynthesizeZeroVolumeIsSilent(t *testing.T) {
	for _, s := range Samples(440, 0.1, 0) {
		require.Zero(t, s)
	}
}

func TestSynthesizeStaysInInt16Range(t *testing.T) {
	// Harmonics plus vibrato can exceed 1.0 before scaling; output must clamp instead of wrapping.
	samples := Samples(100, 0.2, 1.0)
	maxAbs := 0
	for _, s := range samples {
		v := int(s)
		if v < 0 {
			v = -v
		}
		if v > maxAbs {
			maxAbs = v
		}
	}
	require.LessOrEqual(t, maxAbs, 32768)
	require.Greater(t, maxAbs, 20000)
}

func TestToInt16Clamps(t *testing.T) {
	require.Equal(t, int16(32767), toInt16(40000))
	require.Equal(t, int16(-32768), toInt16(-40000))
	require.Equal(t, int16(12), toInt16(12))
}

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blip.wav")
	samples := Samples(440, 0.1, 0.8)

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, EncodeWAV(f, samples, SampleRate))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	clip, err := DecodeWAV(f)
	require.NoError(t, err)
	require.Equal(t, SampleRate, clip.SampleRate)
	require.Equal(t, samples, clip.Samples)
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	_, err := DecodeWAV(bytes.NewReader([]byte("definitely not a riff file")))
	require.Error(t, err)
}

func TestRescale(t *testing.T) {
	require.Equal(t, 0, rescale(128, -8))
	require.Equal(t, 256, rescale(129, -8))
	require.Equal(t, 1, rescale(256, 8))
	require.Equal(t, 42, rescale(42, 0))
}
