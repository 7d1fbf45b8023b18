// Package indicator shows visual keystroke cues and state notifications.
package indicator

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rbright/animalese/internal/config"
	"github.com/rbright/animalese/internal/hypr"
	"github.com/rbright/animalese/internal/voice"
)

const (
	stateTimeoutMS = 1500
	colorFlash     = "rgb(f9e2af)"
	colorEnabled   = "rgb(a6e3a1)"
	colorMuted     = "rgb(6c7086)"
	colorError     = "rgb(f38ba8)"
)

var icons = map[string]string{
	"vowel":       "🎵",
	"consonant":   "🎶",
	"note":        "🎹",
	"special":     "✨",
	"exclamation": "❗",
	"question":    "❓",
	"period":      "⏹️",
	"comma":       "⏸️",
	"space":       "␣",
	"backspace":   "⌫",
}

// Icon returns the visual cue for a sound category.
func Icon(category string) string {
	if icon, ok := icons[category]; ok {
		return icon
	}
	return icons["special"]
}

// Notifier routes cues to the configured backend: bell (no visual output),
// hypr (hyprctl notify), or desktop (freedesktop notifications over DBus).
type Notifier struct {
	cfg      config.IndicatorConfig
	logger   *slog.Logger
	messages messages

	mu                    sync.Mutex
	desktopNotificationID uint32

	flashMu  sync.Mutex
	inflight sync.WaitGroup
}

// NewNotifier creates a notifier from config.
func NewNotifier(cfg config.IndicatorConfig, logger *slog.Logger) *Notifier {
	return &Notifier{
		cfg:      cfg,
		logger:   logger,
		messages: defaultMessages,
	}
}

// Flash shows the category icon briefly. It returns immediately; a flash
// requested while another is still being delivered is dropped.
func (n *Notifier) Flash(ctx context.Context, category string) {
	if !n.visual() {
		return
	}
	if !n.flashMu.TryLock() {
		return
	}

	timeout := n.cfg.FlashMS
	if timeout <= 0 {
		timeout = 100
	}
	icon := Icon(category)

	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		defer n.flashMu.Unlock()
		n.run(context.WithoutCancel(ctx), func(ctx context.Context) error {
			return n.notify(ctx, hypr.IconNone, timeout, colorFlash, icon)
		})
	}()
}

// ShowEnabled announces that sounds were switched on.
func (n *Notifier) ShowEnabled(ctx context.Context) {
	n.show(ctx, hypr.IconInfo, colorEnabled, n.messages.enabled)
}

// ShowMuted announces that sounds were switched off.
func (n *Notifier) ShowMuted(ctx context.Context) {
	n.show(ctx, hypr.IconInfo, colorMuted, n.messages.muted)
}

// ShowVoice announces the active voice.
func (n *Notifier) ShowVoice(ctx context.Context, v voice.Voice) {
	n.show(ctx, hypr.IconInfo, colorEnabled, n.messages.voiceChanged+v.Label())
}

// ShowError displays an error-state message.
func (n *Notifier) ShowError(ctx context.Context, text string) {
	if text == "" {
		text = n.messages.errorText
	}
	n.show(ctx, hypr.IconError, colorError, text)
}

// Hide dismisses the active indicator surface.
func (n *Notifier) Hide(ctx context.Context) {
	if !n.visual() {
		return
	}
	n.run(ctx, n.dismiss)
}

// Wait blocks until in-flight flashes are delivered.
func (n *Notifier) Wait() {
	n.inflight.Wait()
}

func (n *Notifier) show(ctx context.Context, icon hypr.Icon, color string, text string) {
	if !n.visual() {
		return
	}
	n.run(ctx, func(ctx context.Context) error {
		return n.notify(ctx, icon, stateTimeoutMS, color, text)
	})
}

func (n *Notifier) backend() string {
	return strings.ToLower(strings.TrimSpace(n.cfg.Backend))
}

func (n *Notifier) visual() bool {
	if !n.cfg.Enable {
		return false
	}
	backend := n.backend()
	return backend == "hypr" || backend == "desktop"
}

// notify dispatches indicator output through the configured backend.
func (n *Notifier) notify(ctx context.Context, icon hypr.Icon, timeoutMS int, color string, text string) error {
	if n.backend() == "desktop" {
		return n.notifyDesktop(ctx, timeoutMS, text)
	}
	return hypr.Notify(ctx, icon, timeoutMS, color, text)
}

// dismiss removes indicator output from the configured backend.
func (n *Notifier) dismiss(ctx context.Context) error {
	if n.backend() == "desktop" {
		return n.dismissDesktop(ctx)
	}
	return hypr.DismissNotify(ctx)
}

// notifyDesktop sends a replaceable desktop notification and stores its ID.
func (n *Notifier) notifyDesktop(ctx context.Context, timeoutMS int, text string) error {
	n.mu.Lock()
	replaceID := n.desktopNotificationID
	n.mu.Unlock()

	appName := strings.TrimSpace(n.cfg.DesktopAppName)
	if appName == "" {
		appName = "animalese"
	}

	id, err := desktopNotify(ctx, appName, replaceID, text, timeoutMS)
	if err != nil {
		return err
	}

	n.mu.Lock()
	n.desktopNotificationID = id
	n.mu.Unlock()
	return nil
}

// dismissDesktop closes the current desktop notification ID when present.
func (n *Notifier) dismissDesktop(ctx context.Context) error {
	n.mu.Lock()
	id := n.desktopNotificationID
	n.desktopNotificationID = 0
	n.mu.Unlock()

	if id == 0 {
		return nil
	}
	return desktopDismiss(ctx, id)
}

// run executes an indicator operation with a bounded timeout.
func (n *Notifier) run(ctx context.Context, fn func(context.Context) error) {
	runCtx, cancel := context.WithTimeout(ctx, 400*time.Millisecond)
	defer cancel()
	if err := fn(runCtx); err != nil {
		n.log("indicator dispatch failed", err)
	}
}

// log emits debug-only indicator failures to the runtime logger.
func (n *Notifier) log(message string, err error) {
	if n.logger == nil || err == nil {
		return
	}
	n.logger.Debug(message, "error", err.Error())
}
