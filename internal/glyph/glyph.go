// Package glyph classifies typed characters into the sound categories used by the chatter engine.
package glyph

import "unicode"

// Kind is the sound category of one typed character.
type Kind int

const (
	Unrecognized Kind = iota
	Vowel
	Consonant
	Digit
	Special
	Whitespace
)

func (k Kind) String() string {
	switch k {
	case Vowel:
		return "vowel"
	case Consonant:
		return "consonant"
	case Digit:
		return "digit"
	case Special:
		return "special"
	case Whitespace:
		return "whitespace"
	default:
		return "unrecognized"
	}
}

// Class is the classification result for one character.
type Class struct {
	Kind Kind
	Char rune
	// Upper is only ever set for vowels and consonants.
	Upper bool
}

// Lower returns the lower-cased character.
func (c Class) Lower() rune {
	return unicode.ToLower(c.Char)
}

// Audible reports whether the class can ever produce a sound.
func (c Class) Audible() bool {
	return c.Kind != Unrecognized
}

// specialSymbols is the 31-symbol punctuation set plus '!'.
const specialSymbols = "@#$%^&*()-_+=[]{}\\|;:\"'<>,./?~`!"

var (
	vowels     = setOf("aeiou")
	consonants = setOf("bcdfghjklmnpqrstvwxyz")
	specials   = setOf(specialSymbols)
)

func setOf(chars string) map[rune]struct{} {
	out := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		out[r] = struct{}{}
	}
	return out
}

// Classify maps one character to its class. Rules are checked in priority order and the first match wins.
func Classify(r rune) Class {
	lower := unicode.ToLower(r)

	if _, ok := vowels[lower]; ok {
		return Class{Kind: Vowel, Char: r, Upper: r != lower}
	}
	if _, ok := consonants[lower]; ok {
		return Class{Kind: Consonant, Char: r, Upper: r != lower}
	}
	if r >= '0' && r <= '9' {
		return Class{Kind: Digit, Char: r}
	}
	if IsSpecial(r) {
		return Class{Kind: Special, Char: r}
	}
	if r == ' ' {
		return Class{Kind: Whitespace, Char: r}
	}
	return Class{Kind: Unrecognized, Char: r}
}

// IsSpecial reports whether r belongs to the special symbol set.
func IsSpecial(r rune) bool {
	_, ok := specials[r]
	return ok
}

// Specials returns the special symbol set in a stable order.
func Specials() []rune {
	return []rune(specialSymbols)
}

// Skippable reports characters the host never forwards as typing events.
func Skippable(r rune) bool {
	return r == '\n' || r == '\r' || r == '\t'
}
