package resolve

import (
	"path/filepath"
	"strconv"
	"unicode"

	"github.com/rbright/animalese/internal/voice"
)

// Layout maps sounds onto an asset pack rooted at Root:
//
//	Root/animalese/{male|female}/voice_{n}/{char}.wav
//	Root/sfx/{name}.wav
//	Root/vocals/{male|female}/voice_{n}/{exclamation|question}.wav
type Layout struct {
	Root string
}

// BackspaceName is the sfx file played for deletions.
const BackspaceName = "backspace"

var symbolNames = map[rune]string{
	'@':  "at",
	'#':  "hash",
	'$':  "dollar",
	'%':  "percent",
	'^':  "caret",
	'&':  "ampersand",
	'*':  "asterisk",
	'(':  "paren_left",
	')':  "paren_right",
	'-':  "minus",
	'_':  "underscore",
	'+':  "plus",
	'=':  "equals",
	'[':  "bracket_left",
	']':  "bracket_right",
	'{':  "brace_left",
	'}':  "brace_right",
	'\\': "backslash",
	'|':  "pipe",
	';':  "semicolon",
	':':  "colon",
	'"':  "quote_double",
	'\'': "quote_single",
	'<':  "less_than",
	'>':  "greater_than",
	',':  "comma",
	'.':  "period",
	'/':  "slash",
	'?':  "question",
	'~':  "tilde",
	'`':  "backtick",
	'!':  "exclamation",
}

// SymbolName returns the sfx file stem for a special symbol.
func SymbolName(symbol rune) (string, bool) {
	name, ok := symbolNames[symbol]
	return name, ok
}

// VoiceSample is the per-character sample of v.
func (l Layout) VoiceSample(v voice.Voice, char rune) string {
	return filepath.Join(l.voiceDir("animalese", v), string(unicode.ToLower(char))+".wav")
}

// Vocal is the voice-specific exclamation or question sample.
func (l Layout) Vocal(v voice.Voice, name string) string {
	return filepath.Join(l.voiceDir("vocals", v), name+".wav")
}

// Effect is a generic symbol-effect sample.
func (l Layout) Effect(name string) string {
	return filepath.Join(l.Root, "sfx", name+".wav")
}

// VoiceDir is the directory holding the per-character samples of v.
func (l Layout) VoiceDir(v voice.Voice) string {
	return l.voiceDir("animalese", v)
}

func (l Layout) voiceDir(family string, v voice.Voice) string {
	return filepath.Join(l.Root, family, string(v.Gender), "voice_"+strconv.Itoa(v.Variant))
}
