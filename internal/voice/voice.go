// Package voice defines the voice identity and the immutable playback configuration snapshot.
package voice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Gender selects the frequency tables and sample directory of a voice.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

const (
	MinVariant = 1
	MaxVariant = 4

	MinPitch  = 0.5
	MaxPitch  = 2.0
	MinVolume = 0.0
	MaxVolume = 1.0
)

var voicePattern = regexp.MustCompile(`^(male|female)([1-4])$`)

// Voice is one of the eight gender/variant presets.
type Voice struct {
	Gender  Gender
	Variant int
}

// Default is the voice used when nothing is configured.
var Default = Voice{Gender: Male, Variant: 1}

// Parse reads names such as "male1" or "female4".
func Parse(raw string) (Voice, error) {
	match := voicePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(raw)))
	if match == nil {
		return Voice{}, fmt.Errorf("voice %q must match (male|female)[1-4]", raw)
	}
	variant, _ := strconv.Atoi(match[2])
	return Voice{Gender: Gender(match[1]), Variant: variant}, nil
}

// String renders the config name form, e.g. "female2".
func (v Voice) String() string {
	return string(v.Gender) + strconv.Itoa(v.Variant)
}

// IsFemale reports whether the female tables apply.
func (v Voice) IsFemale() bool {
	return v.Gender == Female
}

// Label is the human-readable catalogue label.
func (v Voice) Label() string {
	if v.IsFemale() {
		return fmt.Sprintf("👩 Female Voice %d", v.Variant)
	}
	return fmt.Sprintf("👨 Male Voice %d", v.Variant)
}

// Catalogue lists every selectable voice in display order.
func Catalogue() []Voice {
	out := make([]Voice, 0, 2*MaxVariant)
	for _, gender := range []Gender{Male, Female} {
		for variant := MinVariant; variant <= MaxVariant; variant++ {
			out = append(out, Voice{Gender: gender, Variant: variant})
		}
	}
	return out
}

// Config is the playback snapshot consumed by the resolver and frequency model.
// It is replaced wholesale whenever configuration changes.
type Config struct {
	Voice         Voice
	Pitch         float64
	Volume        float64
	SpecialSounds bool
}

// NewConfig builds a snapshot, clamping pitch into [0.5, 2.0] and volume into [0.0, 1.0].
func NewConfig(v Voice, pitch, volume float64, specialSounds bool) Config {
	return Config{
		Voice:         v,
		Pitch:         ClampPitch(pitch),
		Volume:        ClampVolume(volume),
		SpecialSounds: specialSounds,
	}
}

// DefaultConfig mirrors the documented defaults: male1, pitch 1.0, volume 0.5, special sounds on.
func DefaultConfig() Config {
	return NewConfig(Default, 1.0, 0.5, true)
}

// WithVoice returns a copy of c using v.
func (c Config) WithVoice(v Voice) Config {
	c.Voice = v
	return c
}

// ClampPitch bounds a pitch multiplier.
func ClampPitch(pitch float64) float64 {
	return clamp(pitch, MinPitch, MaxPitch)
}

// ClampVolume bounds a volume level.
func ClampVolume(volume float64) float64 {
	return clamp(volume, MinVolume, MaxVolume)
}

func clamp(value, lo, hi float64) float64 {
	if value != value { // NaN
		return lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
