// Package resolve turns a classified character into an ordered chain of sound candidates.
package resolve

import "fmt"

// Request is one playable candidate: a SampleFile or a SynthesizedTone.
type Request interface {
	isRequest()
	String() string
}

// SampleFile references a pre-recorded asset. Existence is not guaranteed.
type SampleFile struct {
	Path string
}

func (SampleFile) isRequest() {}

func (s SampleFile) String() string {
	return "sample " + s.Path
}

// SynthesizedTone is a synthesis instruction for the tone generator.
type SynthesizedTone struct {
	FrequencyHz     float64
	DurationSeconds float64
	PitchMultiplier float64
	VolumeLevel     float64
	// Category names the sound family for visual fallback (vowel, note, question, ...).
	Category string
}

func (SynthesizedTone) isRequest() {}

func (s SynthesizedTone) String() string {
	return fmt.Sprintf("tone %.2fHz %.3fs pitch=%.2f volume=%.2f", s.FrequencyHz, s.DurationSeconds, s.PitchMultiplier, s.VolumeLevel)
}

// RenderedFrequency is the frequency actually played once the pitch multiplier is applied.
func (s SynthesizedTone) RenderedFrequency() float64 {
	if s.PitchMultiplier <= 0 {
		return s.FrequencyHz
	}
	return s.FrequencyHz * s.PitchMultiplier
}

// Chain is an ordered candidate list. An empty chain means silence;
// a non-empty chain always ends in a SynthesizedTone.
type Chain []Request

// Silent reports whether the chain produces no sound.
func (c Chain) Silent() bool {
	return len(c) == 0
}

// Final returns the guaranteed synthesis default, if any.
func (c Chain) Final() (SynthesizedTone, bool) {
	if len(c) == 0 {
		return SynthesizedTone{}, false
	}
	tone, ok := c[len(c)-1].(SynthesizedTone)
	return tone, ok
}
