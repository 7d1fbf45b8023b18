// Package session runs the daemon event loop: keystrokes, toggles, voice
// switches, and config swaps are applied one at a time on a single goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rbright/animalese/internal/config"
	"github.com/rbright/animalese/internal/dispatch"
	"github.com/rbright/animalese/internal/fsm"
	"github.com/rbright/animalese/internal/glyph"
	"github.com/rbright/animalese/internal/ipc"
	"github.com/rbright/animalese/internal/voice"
)

// ErrStopped is returned by Handle once the event loop has exited.
var ErrStopped = errors.New("session stopped")

// Player is the session-facing subset of the dispatcher.
type Player interface {
	OnCharacter(ctx context.Context, st *dispatch.State, r rune, cfg voice.Config, nowMs int64) dispatch.Effect
	OnDelete(ctx context.Context, st *dispatch.State, cfg voice.Config, nowMs int64) dispatch.Effect
}

// Indicator is the session-facing subset of indicator behavior.
type Indicator interface {
	ShowEnabled(context.Context)
	ShowMuted(context.Context)
	ShowVoice(context.Context, voice.Voice)
	ShowError(context.Context, string)
	Hide(context.Context)
}

// Health receives listening/muted transitions.
type Health interface {
	SetServing(bool)
}

type noopIndicator struct{}

func (noopIndicator) ShowEnabled(context.Context)            {}
func (noopIndicator) ShowMuted(context.Context)              {}
func (noopIndicator) ShowVoice(context.Context, voice.Voice) {}
func (noopIndicator) ShowError(context.Context, string)      {}
func (noopIndicator) Hide(context.Context)                   {}

type noopHealth struct{}

func (noopHealth) SetServing(bool) {}

type envelope struct {
	ctx   context.Context
	req   ipc.Request
	reply chan ipc.Response
}

// Options configures a Controller.
type Options struct {
	Logger    *slog.Logger
	Player    Player
	Indicator Indicator
	Health    Health
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Controller owns the throttle state, the active voice snapshot, and the
// enabled state machine. Only Run mutates them.
type Controller struct {
	logger    *slog.Logger
	player    Player
	indicator Indicator
	health    Health
	clock     func() time.Time

	requests chan envelope
	configs  chan config.Config
	done     chan struct{}

	mu    sync.RWMutex
	state fsm.State
	voice voice.Config

	throttle dispatch.State
	// enabled and configVoice are the last values read from config. Reloads
	// only override runtime toggles and voice switches when these change.
	enabled     bool
	configVoice voice.Voice
}

// NewController constructs a controller for the initial configuration.
func NewController(cfg config.Config, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Indicator == nil {
		opts.Indicator = noopIndicator{}
	}
	if opts.Health == nil {
		opts.Health = noopHealth{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	initial := cfg.VoiceConfig()
	return &Controller{
		logger:      opts.Logger,
		player:      opts.Player,
		indicator:   opts.Indicator,
		health:      opts.Health,
		clock:       opts.Clock,
		requests:    make(chan envelope),
		configs:     make(chan config.Config, 1),
		done:        make(chan struct{}),
		state:       fsm.StateStopped,
		voice:       initial,
		enabled:     cfg.Enabled,
		configVoice: initial.Voice,
	}
}

// State returns the current FSM state snapshot.
func (c *Controller) State() fsm.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Voice returns the active voice configuration snapshot.
func (c *Controller) Voice() voice.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.voice
}

// Done is closed when Run returns.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Run processes requests until ctx is cancelled or a stop command arrives.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)

	if err := c.transition(fsm.EventStart); err != nil {
		return err
	}
	if c.State() != fsm.Initial(c.enabled) {
		if err := c.transition(fsm.EventToggle); err != nil {
			return err
		}
	}
	c.logger.Info("session listening", "state", string(c.State()), "voice", c.Voice().Voice.String())

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 800*time.Millisecond)
		defer cancel()
		c.indicator.Hide(cleanupCtx)
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.transition(fsm.EventStop)
			return nil
		case cfg := <-c.configs:
			c.applyConfig(ctx, cfg)
		case env := <-c.requests:
			resp := c.handle(env.ctx, env.req)
			env.reply <- resp
			if env.req.Command == ipc.CommandStop && resp.OK {
				return nil
			}
		}
	}
}

// Handle queues req on the event loop and waits for its response.
func (c *Controller) Handle(ctx context.Context, req ipc.Request) ipc.Response {
	env := envelope{ctx: ctx, req: req, reply: make(chan ipc.Response, 1)}
	select {
	case c.requests <- env:
	case <-c.done:
		return ipc.Response{OK: false, State: string(c.State()), Error: ErrStopped.Error()}
	case <-ctx.Done():
		return ipc.Response{OK: false, State: string(c.State()), Error: ctx.Err().Error()}
	}
	return <-env.reply
}

// ApplyConfig schedules a configuration swap between events.
// Only the newest pending configuration is kept.
func (c *Controller) ApplyConfig(cfg config.Config) {
	for {
		select {
		case c.configs <- cfg:
			return
		case <-c.done:
			return
		default:
		}
		select {
		case <-c.configs:
		default:
		}
	}
}

func (c *Controller) handle(ctx context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case ipc.CommandType:
		return c.typeText(ctx, req.Text)
	case ipc.CommandDelete:
		return c.deleteChar(ctx)
	case ipc.CommandToggle:
		return c.toggle(ctx)
	case ipc.CommandVoice:
		return c.switchVoice(ctx, req.Voice)
	case ipc.CommandStatus:
		return c.response("status")
	case ipc.CommandStop:
		if err := c.transition(fsm.EventStop); err != nil {
			return c.failure(err)
		}
		c.health.SetServing(false)
		return c.response("stopping")
	default:
		return c.failure(fmt.Errorf("unknown command: %s", req.Command))
	}
}

func (c *Controller) typeText(ctx context.Context, text string) ipc.Response {
	if c.State() != fsm.StateListening {
		return c.response("muted")
	}

	cfg := c.Voice()
	effects := make([]ipc.Effect, 0, len(text))
	for _, r := range text {
		if glyph.Skippable(r) {
			continue
		}
		effect := c.player.OnCharacter(ctx, &c.throttle, r, cfg, c.nowMs())
		effects = append(effects, report(string(r), effect))
	}

	resp := c.response("typed")
	resp.Effects = effects
	return resp
}

func (c *Controller) deleteChar(ctx context.Context) ipc.Response {
	if c.State() != fsm.StateListening {
		return c.response("muted")
	}

	effect := c.player.OnDelete(ctx, &c.throttle, c.Voice(), c.nowMs())
	resp := c.response("deleted")
	resp.Effects = []ipc.Effect{report("", effect)}
	return resp
}

func (c *Controller) toggle(ctx context.Context) ipc.Response {
	if err := c.transition(fsm.EventToggle); err != nil {
		return c.failure(err)
	}
	c.announce(ctx)
	return c.response("toggled")
}

func (c *Controller) switchVoice(ctx context.Context, raw string) ipc.Response {
	v, err := voice.Parse(raw)
	if err != nil {
		c.indicator.ShowError(ctx, err.Error())
		return c.failure(err)
	}

	c.mu.Lock()
	c.voice = c.voice.WithVoice(v)
	c.mu.Unlock()

	c.logger.Info("voice changed", "voice", v.String())
	c.indicator.ShowVoice(ctx, v)
	return c.response("voice changed")
}

func (c *Controller) applyConfig(ctx context.Context, cfg config.Config) {
	next := cfg.VoiceConfig()
	fileVoice := next.Voice

	c.mu.Lock()
	prev := c.voice
	if fileVoice == c.configVoice {
		next = next.WithVoice(prev.Voice)
	}
	c.configVoice = fileVoice
	c.voice = next
	c.mu.Unlock()

	c.logger.Info("config applied",
		"voice", next.Voice.String(),
		"pitch", next.Pitch,
		"volume", next.Volume,
		"special_sounds", next.SpecialSounds,
		"enabled", cfg.Enabled,
	)
	if prev.Voice != next.Voice {
		c.indicator.ShowVoice(ctx, next.Voice)
	}

	if cfg.Enabled == c.enabled {
		return
	}
	c.enabled = cfg.Enabled
	listening := c.State() == fsm.StateListening
	if listening == cfg.Enabled {
		return
	}
	if err := c.transition(fsm.EventToggle); err != nil {
		c.logger.Warn("config toggle rejected", "error", err.Error())
		return
	}
	c.announce(ctx)
}

func (c *Controller) announce(ctx context.Context) {
	state := c.State()
	c.logger.Info("sounds toggled", "state", string(state))
	if state == fsm.StateListening {
		c.indicator.ShowEnabled(ctx)
		return
	}
	c.indicator.ShowMuted(ctx)
}

// transition applies one FSM event and mirrors the result to health.
func (c *Controller) transition(event fsm.Event) error {
	c.mu.Lock()
	next, err := fsm.Transition(c.state, event)
	if err == nil {
		c.state = next
	}
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.health.SetServing(next == fsm.StateListening)
	return nil
}

func (c *Controller) nowMs() int64 {
	return c.clock().UnixMilli()
}

func (c *Controller) response(message string) ipc.Response {
	return ipc.Response{
		OK:      true,
		State:   string(c.State()),
		Voice:   c.Voice().Voice.String(),
		Message: message,
	}
}

func (c *Controller) failure(err error) ipc.Response {
	return ipc.Response{
		OK:    false,
		State: string(c.State()),
		Voice: c.Voice().Voice.String(),
		Error: err.Error(),
	}
}

func report(char string, effect dispatch.Effect) ipc.Effect {
	out := ipc.Effect{Char: char, Kind: effect.Kind.String(), Sink: effect.Sink}
	if effect.Request != nil {
		out.Request = effect.Request.String()
	}
	return out
}
