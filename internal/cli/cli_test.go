package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.True(t, parsed.ShowHelp)
	require.Equal(t, CommandHelp, parsed.Command)
}

func TestParseCommandWithConfig(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/animalese.jsonc", "doctor"})
	require.NoError(t, err)
	require.Equal(t, CommandDoctor, parsed.Command)
	require.Equal(t, "/tmp/animalese.jsonc", parsed.ConfigPath)
	require.False(t, parsed.ShowHelp)
}

func TestParseArgMatrix(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCmd  Command
		wantHelp bool
		wantPath string
		wantArg  string
		wantOut  string
	}{
		{name: "help short flag", args: []string{"-h"}, wantCmd: CommandHelp, wantHelp: true},
		{name: "help long flag", args: []string{"--help"}, wantCmd: CommandHelp, wantHelp: true},
		{name: "version flag", args: []string{"--version"}, wantCmd: CommandVersion},
		{name: "config after command", args: []string{"status", "--config", "/tmp/cfg"}, wantErr: "unexpected arguments after command"},
		{name: "missing config path", args: []string{"--config"}, wantErr: "requires a path"},
		{name: "unknown flag", args: []string{"--bogus"}, wantErr: "unknown flag"},
		{name: "unknown command", args: []string{"bogus"}, wantErr: "unknown command"},
		{name: "extra args after command", args: []string{"doctor", "extra"}, wantErr: "unexpected arguments"},
		{name: "serve", args: []string{"serve"}, wantCmd: CommandServe},
		{name: "type text", args: []string{"type", "Hello, world!"}, wantCmd: CommandType, wantArg: "Hello, world!"},
		{name: "type text starting with dash", args: []string{"type", "-->"}, wantCmd: CommandType, wantArg: "-->"},
		{name: "type missing text", args: []string{"type"}, wantErr: "type requires TEXT"},
		{name: "type two args", args: []string{"type", "a", "b"}, wantErr: "unexpected arguments"},
		{name: "voice with config", args: []string{"--config", "/tmp/cfg", "voice", "female2"}, wantCmd: CommandVoice, wantArg: "female2", wantPath: "/tmp/cfg"},
		{name: "voice missing name", args: []string{"voice"}, wantErr: "voice requires NAME"},
		{name: "resolve char", args: []string{"resolve", "A"}, wantCmd: CommandResolve, wantArg: "A"},
		{name: "resolve multibyte char", args: []string{"resolve", "é"}, wantCmd: CommandResolve, wantArg: "é"},
		{name: "resolve word", args: []string{"resolve", "AB"}, wantErr: "single character"},
		{name: "render with out", args: []string{"render", "?", "--out", "/tmp/q.wav"}, wantCmd: CommandRender, wantArg: "?", wantOut: "/tmp/q.wav"},
		{name: "render out first", args: []string{"render", "--out", "/tmp/q.wav", "?"}, wantCmd: CommandRender, wantArg: "?", wantOut: "/tmp/q.wav"},
		{name: "render missing out", args: []string{"render", "a"}, wantErr: "render requires --out PATH"},
		{name: "render dangling out", args: []string{"render", "a", "--out"}, wantErr: "--out requires a path"},
		{name: "out on other command", args: []string{"type", "a", "--out", "x"}, wantErr: "unexpected arguments"},
		{name: "valid stop with config", args: []string{"--config", "/tmp/cfg", "stop"}, wantCmd: CommandStop, wantPath: "/tmp/cfg"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantCmd, parsed.Command)
			require.Equal(t, tc.wantHelp, parsed.ShowHelp)
			require.Equal(t, tc.wantPath, parsed.ConfigPath)
			require.Equal(t, tc.wantArg, parsed.Arg)
			require.Equal(t, tc.wantOut, parsed.OutPath)
		})
	}
}

func TestHelpTextIncludesCoreCommands(t *testing.T) {
	text := HelpText("animalese")
	for _, cmd := range []string{"serve", "type TEXT", "voice NAME", "voices", "resolve CHAR", "render CHAR", "doctor", "--config PATH"} {
		require.Contains(t, text, cmd)
	}
}

func TestEveryCommandIsDocumented(t *testing.T) {
	text := HelpText("animalese")
	for cmd := range validCommands {
		require.Contains(t, text, "  "+string(cmd), "command %s", cmd)
	}
}
