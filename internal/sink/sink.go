// Package sink plays resolved sound requests on concrete audio backends.
package sink

import (
	"context"
	"errors"

	"github.com/rbright/animalese/internal/resolve"
)

var (
	// ErrSinkUnavailable means the sink cannot serve this kind of request or is not reachable.
	ErrSinkUnavailable = errors.New("sink unavailable")
	// ErrSampleMissing means a sample file does not exist or cannot be read.
	ErrSampleMissing = errors.New("sample missing")
	// ErrSinkInvocationFailed means the sink accepted the request but failed to start playback.
	ErrSinkInvocationFailed = errors.New("sink invocation failed")
)

// Sink plays one request without blocking for the length of the sound.
type Sink interface {
	Name() string
	TryPlay(ctx context.Context, req resolve.Request) error
}

// Selective is implemented by sinks that only serve some request types.
type Selective interface {
	Accepts(req resolve.Request) bool
}

// Accepts reports whether s serves req at all. Sinks that are not Selective accept everything.
func Accepts(s Sink, req resolve.Request) bool {
	if sel, ok := s.(Selective); ok {
		return sel.Accepts(req)
	}
	return true
}

// Kind names the error class of err for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSampleMissing):
		return "sample_missing"
	case errors.Is(err, ErrSinkUnavailable):
		return "unavailable"
	case errors.Is(err, ErrSinkInvocationFailed):
		return "invocation_failed"
	default:
		return "unknown"
	}
}

// Discard accepts every request and plays nothing.
type Discard struct{}

func (Discard) Name() string { return "discard" }

func (Discard) TryPlay(context.Context, resolve.Request) error { return nil }
