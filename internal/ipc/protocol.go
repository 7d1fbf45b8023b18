package ipc

// Commands understood by the daemon.
const (
	CommandType   = "type"
	CommandDelete = "delete"
	CommandToggle = "toggle"
	CommandVoice  = "voice"
	CommandStatus = "status"
	CommandStop   = "stop"
)

type Request struct {
	Command string `json:"command"`
	Text    string `json:"text,omitempty"`
	Voice   string `json:"voice,omitempty"`
}

type Response struct {
	OK      bool     `json:"ok"`
	State   string   `json:"state,omitempty"`
	Voice   string   `json:"voice,omitempty"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Effects []Effect `json:"effects,omitempty"`
}

// Effect reports what happened to one keystroke of a type or delete request.
type Effect struct {
	Char    string `json:"char,omitempty"`
	Kind    string `json:"kind"`
	Sink    string `json:"sink,omitempty"`
	Request string `json:"request,omitempty"`
}
