// Package doctor runs readiness diagnostics for config, player, audio, assets, and health.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rbright/animalese/internal/audio"
	"github.com/rbright/animalese/internal/config"
	"github.com/rbright/animalese/internal/health"
	"github.com/rbright/animalese/internal/resolve"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(ctx context.Context, loaded config.Loaded) Report {
	cfg := loaded.Config
	checks := []Check{checkConfig(loaded)}

	checks = append(checks, checkCommand(cfg.Audio.Player.Argv, "player_cmd"))
	if cfg.Audio.Pulse {
		checks = append(checks, checkAudioSelection(ctx, cfg))
	}
	checks = append(checks, checkAssets(cfg)...)
	if strings.TrimSpace(cfg.Health.GRPCAddr) != "" {
		checks = append(checks, checkHealth(ctx, cfg.Health.GRPCAddr))
	}

	return Report{Checks: checks}
}

func checkConfig(loaded config.Loaded) Check {
	message := fmt.Sprintf("loaded %q", loaded.Path)
	if !loaded.Exists {
		message = fmt.Sprintf("%q not found; using defaults", loaded.Path)
	}
	if n := len(loaded.Warnings); n > 0 {
		message = fmt.Sprintf("%s (%d warning(s))", message, n)
	}
	return Check{Name: "config", Pass: true, Message: message}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkAudioSelection runs live output selection to surface PulseAudio and fallback issues.
func checkAudioSelection(ctx context.Context, cfg config.Config) Check {
	selection, err := audio.SelectDevice(ctx, cfg.Audio.Device)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	message := fmt.Sprintf("selected %q", selection.Device.ID)
	if selection.Warning != "" {
		message = message + " (" + selection.Warning + ")"
	}
	return Check{Name: "audio.device", Pass: true, Message: message}
}

// checkAssets verifies the asset root and the active voice's sample directory.
func checkAssets(cfg config.Config) []Check {
	root, err := config.ResolveAssetsDir(cfg.AssetsDir)
	if err != nil {
		return []Check{{Name: "assets_dir", Pass: false, Message: err.Error()}}
	}

	checks := []Check{checkDir("assets_dir", root)}
	layout := resolve.Layout{Root: root}
	v := cfg.VoiceConfig().Voice
	checks = append(checks, checkDir("voice."+v.String(), layout.VoiceDir(v)))
	return checks
}

func checkDir(name string, path string) Check {
	info, err := os.Stat(path)
	if err != nil {
		return Check{Name: name, Pass: false, Message: fmt.Sprintf("%s: %v", path, err)}
	}
	if !info.IsDir() {
		return Check{Name: name, Pass: false, Message: fmt.Sprintf("%s is not a directory", path)}
	}
	return Check{Name: name, Pass: true, Message: path}
}

// checkHealth probes the daemon's gRPC health endpoint.
func checkHealth(ctx context.Context, addr string) Check {
	status, err := health.Check(ctx, addr, 2*time.Second)
	if err != nil {
		return Check{Name: "health.grpc", Pass: false, Message: err.Error()}
	}
	return Check{Name: "health.grpc", Pass: true, Message: fmt.Sprintf("%s at %s", status.String(), addr)}
}
