package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rbright/animalese/internal/resolve"
)

const defaultReapTimeout = time.Second

// Command plays sample files by spawning an external player with the path appended.
type Command struct {
	argv        []string
	reapTimeout time.Duration
}

// NewCommand builds a command sink from an already split player argv.
func NewCommand(argv []string) (*Command, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("player command is empty")
	}
	return &Command{argv: append([]string(nil), argv...), reapTimeout: defaultReapTimeout}, nil
}

// Name returns the player binary.
func (c *Command) Name() string {
	return "command:" + c.argv[0]
}

// Accepts reports true for sample files only.
func (c *Command) Accepts(req resolve.Request) bool {
	_, ok := req.(resolve.SampleFile)
	return ok
}

// TryPlay starts the player for a SampleFile and returns once it is running.
// The process is reaped in the background and killed after the reap timeout.
func (c *Command) TryPlay(_ context.Context, req resolve.Request) error {
	sample, ok := req.(resolve.SampleFile)
	if !ok {
		return fmt.Errorf("%s cannot play %s: %w", c.Name(), req, ErrSinkUnavailable)
	}

	info, err := os.Stat(sample.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %q: %w", sample.Path, ErrSampleMissing)
		}
		return fmt.Errorf("stat %q: %v: %w", sample.Path, err, ErrSampleMissing)
	}
	if info.IsDir() {
		return fmt.Errorf("%q is a directory: %w", sample.Path, ErrSampleMissing)
	}

	if _, err := exec.LookPath(c.argv[0]); err != nil {
		return fmt.Errorf("%s: %v: %w", c.argv[0], err, ErrSinkInvocationFailed)
	}

	// Playback outlives ctx; only the reap timeout stops it.
	runCtx, cancel := context.WithTimeout(context.Background(), c.reapTimeout)
	args := append(append([]string(nil), c.argv[1:]...), sample.Path)
	cmd := exec.CommandContext(runCtx, c.argv[0], args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start %s: %v: %w", c.argv[0], err, ErrSinkInvocationFailed)
	}

	go func() {
		defer cancel()
		_ = cmd.Wait()
	}()
	return nil
}
