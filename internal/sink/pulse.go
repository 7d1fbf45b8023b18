package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jfreymuth/pulse"
	"github.com/rbright/animalese/internal/observe"
	"github.com/rbright/animalese/internal/resolve"
	"github.com/rbright/animalese/internal/synth"
)

// Pulse plays tones and WAV samples over a lazily-connected PulseAudio client.
type Pulse struct {
	device  string
	metrics *observe.Metrics

	mu     sync.Mutex
	client *pulse.Client
	sink   *pulse.Sink
}

// NewPulse creates a Pulse sink. device selects an output sink by ID; empty or
// "default" uses the server default.
func NewPulse(device string, metrics *observe.Metrics) *Pulse {
	return &Pulse{device: strings.TrimSpace(device), metrics: metrics}
}

// Name returns "pulse".
func (p *Pulse) Name() string {
	return "pulse"
}

// TryPlay starts playback and returns; draining happens in the background.
func (p *Pulse) TryPlay(ctx context.Context, req resolve.Request) error {
	var (
		samples []int16
		rate    int
	)
	switch r := req.(type) {
	case resolve.SynthesizedTone:
		start := time.Now()
		samples = synth.Samples(r.RenderedFrequency(), r.DurationSeconds, r.VolumeLevel)
		p.metrics.RecordSynth(ctx, start)
		rate = synth.SampleRate
	case resolve.SampleFile:
		clip, err := readClip(r.Path)
		if err != nil {
			return err
		}
		samples, rate = clip.Samples, clip.SampleRate
	default:
		return fmt.Errorf("pulse cannot play %v: %w", req, ErrSinkUnavailable)
	}
	if len(samples) == 0 {
		return nil
	}

	client, target, err := p.connect()
	if err != nil {
		return fmt.Errorf("connect pulse server: %v: %w", err, ErrSinkUnavailable)
	}

	opts := []pulse.PlaybackOption{
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(rate),
		pulse.PlaybackLatency(0.02),
		pulse.PlaybackMediaName("animalese " + req.String()),
	}
	if target != nil {
		opts = append(opts, pulse.PlaybackSink(target))
	}

	stream, err := client.NewPlayback(int16Reader(samples), opts...)
	if err != nil {
		p.reset()
		return fmt.Errorf("create pulse playback stream: %v: %w", err, ErrSinkInvocationFailed)
	}

	stream.Start()
	go func() {
		stream.Drain()
		stream.Close()
	}()
	return nil
}

// Close disconnects from the server. The next TryPlay reconnects.
func (p *Pulse) Close() {
	p.reset()
}

func (p *Pulse) connect() (*pulse.Client, *pulse.Sink, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, p.sink, nil
	}

	client, err := pulse.NewClient(
		pulse.ClientApplicationName("animalese"),
		pulse.ClientApplicationIconName("input-keyboard"),
	)
	if err != nil {
		return nil, nil, err
	}

	var target *pulse.Sink
	if p.device != "" && !strings.EqualFold(p.device, "default") {
		target, err = client.SinkByID(p.device)
		if err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("resolve sink %q: %w", p.device, err)
		}
	}

	p.client = client
	p.sink = target
	return client, target, nil
}

func (p *Pulse) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Close()
	}
	p.client = nil
	p.sink = nil
}

func readClip(path string) (synth.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return synth.Clip{}, fmt.Errorf("open %q: %w", path, ErrSampleMissing)
		}
		return synth.Clip{}, fmt.Errorf("open %q: %v: %w", path, err, ErrSampleMissing)
	}
	defer f.Close()

	clip, err := synth.DecodeWAV(f)
	if err != nil {
		return synth.Clip{}, fmt.Errorf("decode %q: %v: %w", path, err, ErrSinkInvocationFailed)
	}
	return clip, nil
}

func int16Reader(samples []int16) pulse.Reader {
	cursor := 0
	return pulse.Int16Reader(func(buf []int16) (int, error) {
		if cursor >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, samples[cursor:])
		cursor += n
		if cursor >= len(samples) {
			return n, pulse.EndOfData
		}
		return n, nil
	})
}
