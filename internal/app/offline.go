package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rbright/animalese/internal/audio"
	"github.com/rbright/animalese/internal/config"
	"github.com/rbright/animalese/internal/glyph"
	"github.com/rbright/animalese/internal/resolve"
	"github.com/rbright/animalese/internal/synth"
	"github.com/rbright/animalese/internal/voice"
)

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio output devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !device.Available {
			availability = "no"
		}
		muted := "no"
		if device.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			device.ID,
			device.Description,
			device.State,
			availability,
			muted,
		)
	}

	return 0
}

func (r Runner) commandVoices(cfg config.Config) int {
	active := cfg.VoiceConfig().Voice
	for _, v := range voice.Catalogue() {
		mark := " "
		if v == active {
			mark = "*"
		}
		fmt.Fprintf(r.Stdout, "%s %-8s %s\n", mark, v.String(), v.Label())
	}
	return 0
}

// commandResolve prints the fallback chain for char under the loaded config,
// marking which sample files exist.
func (r Runner) commandResolve(cfg config.Config, char string) int {
	layout, err := assetLayout(cfg)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	ch, _ := utf8.DecodeRuneInString(char)
	class := glyph.Classify(ch)
	chain := resolve.Resolve(class, cfg.VoiceConfig(), layout)

	fmt.Fprintf(r.Stdout, "%q %s\n", ch, class.Kind)
	if chain.Silent() {
		fmt.Fprintln(r.Stdout, "  silent")
		return 0
	}
	for i, req := range chain {
		status := ""
		if sample, ok := req.(resolve.SampleFile); ok {
			status = " (missing)"
			if info, statErr := os.Stat(sample.Path); statErr == nil && !info.IsDir() {
				status = " (present)"
			}
		}
		fmt.Fprintf(r.Stdout, "  %d. %s%s\n", i+1, req.String(), status)
	}
	return 0
}

// commandRender writes the synthesized default of char's chain as a WAV file.
func (r Runner) commandRender(cfg config.Config, char string, outPath string) int {
	ch, _ := utf8.DecodeRuneInString(char)
	tone, ok := resolve.Resolve(glyph.Classify(ch), cfg.VoiceConfig(), resolve.Layout{}).Final()
	if !ok {
		fmt.Fprintf(r.Stderr, "error: %q is silent under the current config\n", ch)
		return 1
	}

	samples := synth.Samples(tone.RenderedFrequency(), tone.DurationSeconds, tone.VolumeLevel)
	if err := writeWAV(outPath, samples); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintf(r.Stdout, "wrote %s (%s, %d samples)\n", outPath, tone.String(), len(samples))
	return 0
}

func writeWAV(path string, samples []int16) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := synth.EncodeWAV(f, samples, synth.SampleRate); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode wav: %w", err)
	}
	return f.Close()
}

func assetLayout(cfg config.Config) (resolve.Layout, error) {
	root, err := config.ResolveAssetsDir(cfg.AssetsDir)
	if err != nil {
		return resolve.Layout{}, err
	}
	return resolve.Layout{Root: root}, nil
}
