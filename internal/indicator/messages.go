package indicator

type messages struct {
	enabled      string
	muted        string
	voiceChanged string
	errorText    string
}

var defaultMessages = messages{
	enabled:      "Animalese sounds enabled",
	muted:        "Animalese sounds disabled",
	voiceChanged: "Voice: ",
	errorText:    "Animalese playback error",
}
