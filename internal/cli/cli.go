package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

type Command string

const (
	CommandServe   Command = "serve"
	CommandType    Command = "type"
	CommandPipe    Command = "pipe"
	CommandDelete  Command = "delete"
	CommandToggle  Command = "toggle"
	CommandVoice   Command = "voice"
	CommandVoices  Command = "voices"
	CommandStatus  Command = "status"
	CommandStop    Command = "stop"
	CommandResolve Command = "resolve"
	CommandRender  Command = "render"
	CommandDevices Command = "devices"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

// validCommands maps each command to its positional argument name, if any.
var validCommands = map[Command]string{
	CommandServe:   "",
	CommandType:    "TEXT",
	CommandPipe:    "",
	CommandDelete:  "",
	CommandToggle:  "",
	CommandVoice:   "NAME",
	CommandVoices:  "",
	CommandStatus:  "",
	CommandStop:    "",
	CommandResolve: "CHAR",
	CommandRender:  "CHAR",
	CommandDevices: "",
	CommandDoctor:  "",
	CommandVersion: "",
	CommandHelp:    "",
}

type Parsed struct {
	Command    Command
	ConfigPath string
	ShowHelp   bool
	// Arg is the positional argument of type, voice, resolve, and render.
	Arg string
	// OutPath is the render destination.
	OutPath string
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			argName, ok := validCommands[cmd]
			if !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			if err := parseCommandArgs(&parsed, argName, args[i+1:]); err != nil {
				return Parsed{}, err
			}
			return parsed, nil
		}
	}

	return parsed, nil
}

func parseCommandArgs(parsed *Parsed, argName string, rest []string) error {
	var positional []string
	for i := 0; i < len(rest); i++ {
		if rest[i] == "--out" && parsed.Command == CommandRender {
			i++
			if i >= len(rest) {
				return errors.New("--out requires a path")
			}
			parsed.OutPath = rest[i]
			continue
		}
		positional = append(positional, rest[i])
	}

	if argName == "" {
		if len(positional) > 0 {
			return fmt.Errorf("unexpected arguments after command %q", parsed.Command)
		}
		return nil
	}

	switch len(positional) {
	case 0:
		return fmt.Errorf("%s requires %s", parsed.Command, argName)
	case 1:
		parsed.Arg = positional[0]
	default:
		return fmt.Errorf("unexpected arguments after command %q", parsed.Command)
	}

	if argName == "CHAR" && utf8.RuneCountInString(parsed.Arg) != 1 {
		return fmt.Errorf("%s expects a single character, got %q", parsed.Command, parsed.Arg)
	}
	if parsed.Command == CommandRender && parsed.OutPath == "" {
		return errors.New("render requires --out PATH")
	}
	return nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] <command> [args]

Commands:
  serve               Run the chatter daemon in the foreground
  type TEXT           Play the chatter for TEXT as if typed
  pipe                Forward stdin to the daemon as it is typed
  delete              Play the deletion sound
  toggle              Enable or mute sounds
  voice NAME          Switch voice (male1..male4, female1..female4)
  voices              List available voices
  status              Print daemon state and voice
  stop                Stop the daemon
  resolve CHAR        Print the fallback chain for CHAR
  render CHAR --out PATH
                      Write the synthesized tone for CHAR as a WAV file
  devices             List audio output devices
  doctor              Run configuration and environment checks
  version             Print version information
  help                Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/animalese/config.jsonc)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
