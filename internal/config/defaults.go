package config

const defaultPlayerCommand = "pw-play --media-role Notification"

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		Enabled:       true,
		Voice:         "male1",
		Pitch:         1.0,
		Volume:        0.5,
		SpecialSounds: true,
		Debug:         false,
		Audio: AudioConfig{
			Player: CommandConfig{Raw: defaultPlayerCommand, Argv: mustParseArgv(defaultPlayerCommand)},
			Pulse:  true,
			Device: "default",
		},
		Indicator: IndicatorConfig{
			Enable:         true,
			Backend:        "bell",
			DesktopAppName: "animalese",
			FlashMS:        100,
		},
	}
}
