package indicator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rbright/animalese/internal/config"
	"github.com/rbright/animalese/internal/voice"
	"github.com/stretchr/testify/require"
)

func TestHyprNotifierFlashAndStateMessages(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "hypr-args.log")
	t.Setenv("HYPR_ARGS_FILE", argsFile)
	installStub(t, "hyprctl", `
printf '%s\n' "$*" >> "${HYPR_ARGS_FILE}"
`)

	cfg := config.Default().Indicator
	cfg.Backend = "hypr"

	notify := NewNotifier(cfg, nil)
	notify.Flash(context.Background(), "question")
	notify.Wait()
	notify.ShowEnabled(context.Background())
	notify.ShowVoice(context.Background(), voice.Voice{Gender: voice.Female, Variant: 2})
	notify.ShowMuted(context.Background())
	notify.ShowError(context.Background(), "")
	notify.Hide(context.Background())

	lines := readLines(t, argsFile)
	require.Equal(t, []string{
		"--quiet dispatch notify -1 100 rgb(f9e2af) ❓",
		"--quiet dispatch notify 1 1500 rgb(a6e3a1) Animalese sounds enabled",
		"--quiet dispatch notify 1 1500 rgb(a6e3a1) Voice: 👩 Female Voice 2",
		"--quiet dispatch notify 1 1500 rgb(6c7086) Animalese sounds disabled",
		"--quiet dispatch notify 3 1500 rgb(f38ba8) Animalese playback error",
		"--quiet dispatch dismissnotify",
	}, lines)
}

func TestBellBackendSkipsVisualDispatch(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "hypr-args.log")
	t.Setenv("HYPR_ARGS_FILE", argsFile)
	installStub(t, "hyprctl", `
printf '%s\n' "$*" >> "${HYPR_ARGS_FILE}"
`)

	for _, cfg := range []config.IndicatorConfig{
		config.Default().Indicator,
		{Enable: false, Backend: "hypr"},
	} {
		notify := NewNotifier(cfg, nil)
		notify.Flash(context.Background(), "vowel")
		notify.Wait()
		notify.ShowEnabled(context.Background())
		notify.Hide(context.Background())
	}

	_, err := os.Stat(argsFile)
	require.True(t, os.IsNotExist(err))
}

func TestDesktopNotifierReplacesAndDismisses(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "busctl-args.log")
	t.Setenv("BUSCTL_ARGS_FILE", argsFile)
	installStub(t, "busctl", `
printf '%s\n' "$*" >> "${BUSCTL_ARGS_FILE}"
if [[ "$*" == *" Notify "* ]]; then
  echo 'u 42'
fi
`)

	cfg := config.Default().Indicator
	cfg.Backend = "desktop"

	notify := NewNotifier(cfg, nil)
	notify.Flash(context.Background(), "vowel")
	notify.Wait()
	notify.ShowMuted(context.Background())
	notify.Hide(context.Background())

	lines := readLines(t, argsFile)
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "Notify susssasa{sv}i animalese 0  🎵  0 1 transient b true 100")
	require.Contains(t, lines[1], "Notify susssasa{sv}i animalese 42  Animalese sounds disabled  0 1 transient b true 1500")
	require.Contains(t, lines[2], "CloseNotification u 42")
}

func TestFlashFailureIsSwallowed(t *testing.T) {
	installStub(t, "hyprctl", `
exit 1
`)

	cfg := config.Default().Indicator
	cfg.Backend = "hypr"
	notify := NewNotifier(cfg, nil)
	notify.Flash(context.Background(), "space")
	notify.Wait()
}

func TestIconFallsBackToSpecial(t *testing.T) {
	require.Equal(t, "🎵", Icon("vowel"))
	require.Equal(t, "🎹", Icon("note"))
	require.Equal(t, "␣", Icon("space"))
	require.Equal(t, "✨", Icon("unknown"))
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func installStub(t *testing.T, name string, body string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	script := "#!/usr/bin/env bash\nset -euo pipefail\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}
