package sink

import (
	"context"
	"io"
	"sync"

	"github.com/rbright/animalese/internal/resolve"
)

// Flasher shows a short visual cue for a sound category.
type Flasher interface {
	Flash(ctx context.Context, category string)
}

// Bell is the last-resort sink: it rings the terminal bell and flashes a
// visual cue. It never fails.
type Bell struct {
	mu      sync.Mutex
	out     io.Writer
	flasher Flasher
}

// NewBell writes bells to out and flashes through flasher; either may be nil.
func NewBell(out io.Writer, flasher Flasher) *Bell {
	return &Bell{out: out, flasher: flasher}
}

// Name returns "bell".
func (b *Bell) Name() string {
	return "bell"
}

// TryPlay rings and flashes. Errors from the writer are ignored.
func (b *Bell) TryPlay(ctx context.Context, req resolve.Request) error {
	if b.out != nil {
		b.mu.Lock()
		_, _ = io.WriteString(b.out, "\a")
		b.mu.Unlock()
	}
	if b.flasher != nil {
		b.flasher.Flash(ctx, categoryOf(req))
	}
	return nil
}

func categoryOf(req resolve.Request) string {
	if tone, ok := req.(resolve.SynthesizedTone); ok && tone.Category != "" {
		return tone.Category
	}
	return "special"
}
