// Package synth renders chatter blips as mono 16-bit PCM.
package synth

import (
	"encoding/binary"
	"math"
)

// SampleRate is the fixed output rate for every synthesized blip.
const SampleRate = 22050

const (
	attackSeconds  = 0.01
	releaseSeconds = 0.05

	vibratoHz    = 5
	vibratoDepth = 0.05

	secondHarmonic = 0.3
	thirdHarmonic  = 0.1
)

// SampleCount returns floor(duration × SampleRate), or 0 for non-positive durations.
func SampleCount(durationSeconds float64) int {
	if durationSeconds <= 0 {
		return 0
	}
	return int(math.Floor(durationSeconds * SampleRate))
}

// Samples renders one blip: fundamental plus two harmonics, 5 Hz vibrato,
// a 10ms attack and 50ms release, scaled by volume.
// Identical inputs always produce identical output.
func Samples(frequencyHz, durationSeconds, volume float64) []int16 {
	n := SampleCount(durationSeconds)
	if n <= 0 {
		return nil
	}

	pcm := make([]int16, n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate

		sample := math.Sin(2 * math.Pi * frequencyHz * t)
		sample += secondHarmonic * math.Sin(2*math.Pi*frequencyHz*2*t)
		sample += thirdHarmonic * math.Sin(2*math.Pi*frequencyHz*3*t)

		sample *= 1 + vibratoDepth*math.Sin(2*math.Pi*vibratoHz*t)

		envelope := 1.0
		if t < attackSeconds {
			envelope = t / attackSeconds
		} else if t > durationSeconds-releaseSeconds {
			envelope = (durationSeconds - t) / releaseSeconds
		}

		sample *= envelope * volume
		pcm[i] = toInt16(math.Round(sample * 32767))
	}

	return pcm
}

// Synthesize renders a blip as little-endian 16-bit PCM bytes.
// The buffer is always floor(duration × SampleRate) × 2 bytes long.
func Synthesize(frequencyHz, durationSeconds, volume float64) []byte {
	return Bytes(Samples(frequencyHz, durationSeconds, volume))
}

// Bytes packs samples as little-endian 16-bit PCM.
func Bytes(samples []int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func toInt16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
