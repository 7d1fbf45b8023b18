package synth

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Clip is decoded mono PCM with its native sample rate.
type Clip struct {
	Samples    []int16
	SampleRate int
}

// EncodeWAV writes mono 16-bit samples as a RIFF/WAV stream.
func EncodeWAV(w io.WriteSeeker, samples []int16, sampleRate int) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buffer := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	if err := enc.Write(buffer); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}

// DecodeWAV reads a PCM WAV stream, downmixing to mono and normalizing to 16-bit.
func DecodeWAV(r io.ReadSeeker) (Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Clip{}, errors.New("not a valid wav file")
	}

	buffer, err := dec.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("decode wav pcm: %w", err)
	}
	if buffer == nil || buffer.Format == nil {
		return Clip{}, errors.New("wav file has no format chunk")
	}

	channels := buffer.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	shift := int(dec.BitDepth) - 16

	frames := len(buffer.Data) / channels
	samples := make([]int16, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += buffer.Data[i*channels+c]
		}
		samples[i] = toInt16(float64(rescale(sum/channels, shift)))
	}

	return Clip{Samples: samples, SampleRate: buffer.Format.SampleRate}, nil
}

// rescale maps a sample of arbitrary bit depth onto the 16-bit range.
// 8-bit wav data is unsigned and centered on 128.
func rescale(v int, shift int) int {
	switch {
	case shift == -8:
		return (v - 128) << 8
	case shift > 0:
		return v >> shift
	case shift < 0:
		return v << -shift
	default:
		return v
	}
}
