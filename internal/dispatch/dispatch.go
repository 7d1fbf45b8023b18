// Package dispatch throttles keystroke events and walks resolved fallback
// chains across the configured sinks.
package dispatch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rbright/animalese/internal/glyph"
	"github.com/rbright/animalese/internal/observe"
	"github.com/rbright/animalese/internal/resolve"
	"github.com/rbright/animalese/internal/sink"
	"github.com/rbright/animalese/internal/voice"
)

// ThrottleMs is the minimum spacing between two dispatched events.
const ThrottleMs = 50

// State is the throttle state of the single typing stream.
// Callers own it and pass it to every dispatch call.
type State struct {
	LastPlayMs int64
}

// Kind is the outcome of one event.
type Kind int

const (
	Played Kind = iota + 1
	Throttled
	Silent
)

func (k Kind) String() string {
	switch k {
	case Played:
		return "played"
	case Throttled:
		return "throttled"
	case Silent:
		return "silent"
	default:
		return "unknown"
	}
}

// Effect describes what happened for one event.
type Effect struct {
	Kind Kind
	// Request is the candidate that was played; nil unless Kind is Played.
	Request resolve.Request
	// Sink is the name of the sink that accepted Request.
	Sink string
}

// Options configures a Dispatcher.
type Options struct {
	Layout resolve.Layout
	// Sinks are tried in order for every candidate.
	Sinks []sink.Sink
	// Fallback receives the final candidate when every sink rejects every
	// candidate. It must not fail. Defaults to sink.Discard.
	Fallback sink.Sink
	Logger   *slog.Logger
	Metrics  *observe.Metrics
}

// Dispatcher turns characters into played sounds.
type Dispatcher struct {
	layout   resolve.Layout
	sinks    []sink.Sink
	fallback sink.Sink
	logger   *slog.Logger
	metrics  *observe.Metrics
}

// New creates a dispatcher.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		layout:   opts.Layout,
		sinks:    append([]sink.Sink(nil), opts.Sinks...),
		fallback: opts.Fallback,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	if d.fallback == nil {
		d.fallback = sink.Discard{}
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	return d
}

// OnCharacter handles one typed character at nowMs.
// A throttled event leaves st untouched and skips classification.
func (d *Dispatcher) OnCharacter(ctx context.Context, st *State, r rune, cfg voice.Config, nowMs int64) Effect {
	if throttled(st, nowMs) {
		return d.record(ctx, Effect{Kind: Throttled})
	}
	st.LastPlayMs = nowMs

	class := glyph.Classify(r)
	if !class.Audible() {
		d.logger.Debug("character is unrecognized", "char", string(r))
		return d.record(ctx, Effect{Kind: Silent})
	}
	chain := resolve.Resolve(class, cfg, d.layout)
	if chain.Silent() {
		d.logger.Debug("character is silent", "char", string(r), "kind", class.Kind.String())
		return d.record(ctx, Effect{Kind: Silent})
	}
	return d.record(ctx, d.play(ctx, chain))
}

// OnDelete handles one deletion at nowMs. It shares the typing-stream throttle.
func (d *Dispatcher) OnDelete(ctx context.Context, st *State, cfg voice.Config, nowMs int64) Effect {
	if throttled(st, nowMs) {
		return d.record(ctx, Effect{Kind: Throttled})
	}
	st.LastPlayMs = nowMs

	chain := resolve.Backspace(cfg, d.layout)
	if chain.Silent() {
		return d.record(ctx, Effect{Kind: Silent})
	}
	return d.record(ctx, d.play(ctx, chain))
}

func throttled(st *State, nowMs int64) bool {
	return nowMs-st.LastPlayMs < ThrottleMs
}

// play walks candidates in order, trying each sink per candidate.
// Sinks that do not accept a candidate's type are skipped silently.
// A missing sample advances to the next candidate; any other sink error
// advances to the next sink.
func (d *Dispatcher) play(ctx context.Context, chain resolve.Chain) Effect {
	for _, req := range chain {
		for _, s := range d.sinks {
			if !sink.Accepts(s, req) {
				continue
			}
			err := s.TryPlay(ctx, req)
			if err == nil {
				return Effect{Kind: Played, Request: req, Sink: s.Name()}
			}
			d.metrics.RecordSinkFailure(ctx, s.Name(), sink.Kind(err))
			d.logger.Debug("sink rejected request",
				"sink", s.Name(),
				"request", req.String(),
				"error", err.Error(),
			)
			if errors.Is(err, sink.ErrSampleMissing) {
				break
			}
		}
	}

	final := chain[len(chain)-1]
	if err := d.fallback.TryPlay(ctx, final); err != nil {
		d.logger.Debug("fallback sink failed", "sink", d.fallback.Name(), "error", err.Error())
	}
	d.logger.Debug("all sinks exhausted", "fallback", d.fallback.Name(), "request", final.String())
	return Effect{Kind: Played, Request: final, Sink: d.fallback.Name()}
}

func (d *Dispatcher) record(ctx context.Context, effect Effect) Effect {
	d.metrics.RecordEvent(ctx, effect.Kind.String(), effect.Sink)
	return effect
}
