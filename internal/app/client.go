package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rbright/animalese/internal/fsm"
	"github.com/rbright/animalese/internal/ipc"
	"github.com/rbright/animalese/internal/voice"
)

const (
	runeBackspace = '\b'
	runeDelete    = 0x7f
)

func (r Runner) commandStatus(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, fsm.StateStopped)
		return 0
	}

	resp, handled, err := tryForward(ctx, socketPath, ipc.Request{Command: ipc.CommandStatus})
	if !handled {
		fmt.Fprintln(r.Stdout, fsm.StateStopped)
		return 0
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.State == "" {
		resp.State = string(fsm.StateStopped)
	}
	if resp.Voice != "" {
		fmt.Fprintf(r.Stdout, "%s voice=%s\n", resp.State, resp.Voice)
		return 0
	}
	fmt.Fprintln(r.Stdout, resp.State)
	return 0
}

func (r Runner) commandType(ctx context.Context, text string) int {
	resp, code := r.forward(ctx, ipc.Request{Command: ipc.CommandType, Text: text})
	if code != 0 {
		return code
	}
	r.printEffects(resp.Effects)
	return 0
}

func (r Runner) commandVoice(ctx context.Context, name string) int {
	if _, err := voice.Parse(name); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	resp, code := r.forward(ctx, ipc.Request{Command: ipc.CommandVoice, Voice: name})
	if code != 0 {
		return code
	}
	fmt.Fprintf(r.Stdout, "voice=%s\n", resp.Voice)
	return 0
}

// commandPipe streams stdin to the daemon over one connection, one request per rune.
// Backspace and DEL become delete requests.
func (r Runner) commandPipe(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	client, err := ipc.Dial(ctx, socketPath, forwardTimeout)
	if err != nil {
		if isSocketMissing(err) || isConnectionRefused(err) {
			fmt.Fprintln(r.Stderr, "error: no running animalese daemon")
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	in := bufio.NewReader(r.Stdin)
	for {
		if ctx.Err() != nil {
			return 0
		}
		ch, _, readErr := in.ReadRune()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return 0
			}
			fmt.Fprintf(r.Stderr, "error: read stdin: %v\n", readErr)
			return 1
		}

		req := ipc.Request{Command: ipc.CommandType, Text: string(ch)}
		if ch == runeBackspace || ch == runeDelete {
			req = ipc.Request{Command: ipc.CommandDelete}
		}
		resp, doErr := client.Do(req)
		if doErr != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", doErr)
			return 1
		}
		if !resp.OK {
			fmt.Fprintf(r.Stderr, "error: %s\n", resp.Error)
			return 1
		}
	}
}

func (r Runner) forwardOrFail(ctx context.Context, req ipc.Request) int {
	resp, code := r.forward(ctx, req)
	if code != 0 {
		return code
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return 0
}

func (r Runner) forward(ctx context.Context, req ipc.Request) (ipc.Response, int) {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return ipc.Response{}, 1
	}

	resp, handled, err := tryForward(ctx, socketPath, req)
	if !handled {
		fmt.Fprintln(r.Stderr, "error: no running animalese daemon")
		return ipc.Response{}, 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return ipc.Response{}, 1
	}
	return resp, 0
}

func (r Runner) printEffects(effects []ipc.Effect) {
	for _, effect := range effects {
		line := fmt.Sprintf("%q %s", effect.Char, effect.Kind)
		if effect.Sink != "" {
			line += " via " + effect.Sink
		}
		if effect.Request != "" {
			line += ": " + effect.Request
		}
		fmt.Fprintln(r.Stdout, line)
	}
}
