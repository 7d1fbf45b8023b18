package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

func decodeJSONC(content string) (fileConfig, error) {
	normalized, err := normalizeJSONC(content)
	if err != nil {
		return fileConfig{}, err
	}

	decoder := json.NewDecoder(strings.NewReader(normalized))
	decoder.DisallowUnknownFields()

	var payload fileConfig
	if err := decoder.Decode(&payload); err != nil {
		return fileConfig{}, wrapJSONDecodeError(normalized, err)
	}
	if err := ensureSingleJSONValue(decoder); err != nil {
		return fileConfig{}, wrapJSONDecodeError(normalized, err)
	}
	return payload, nil
}

// normalizeJSONC blanks comments and trailing commas in one pass. Every
// removed byte becomes a space (newlines are kept), so decoder offsets still
// point at the original line and column.
func normalizeJSONC(content string) (string, error) {
	out := []byte(content)
	pendingComma := -1

	for i := 0; i < len(out); i++ {
		switch ch := out[i]; {
		case ch == '"':
			i = skipJSONString(out, i)
			pendingComma = -1
		case ch == '/' && i+1 < len(out) && out[i+1] == '/':
			i = blankUntil(out, i, func(j int) bool { return out[j] == '\n' || out[j] == '\r' }) - 1
		case ch == '/' && i+1 < len(out) && out[i+1] == '*':
			end := strings.Index(string(out[i+2:]), "*/")
			if end < 0 {
				return "", errors.New("unterminated block comment in JSONC")
			}
			stop := i + 2 + end + 2
			blankUntil(out, i, func(j int) bool { return j == stop })
			i = stop - 1
		case isJSONWhitespace(ch):
		case ch == ',':
			pendingComma = i
		case ch == '}' || ch == ']':
			if pendingComma >= 0 {
				out[pendingComma] = ' '
			}
			pendingComma = -1
		default:
			pendingComma = -1
		}
	}

	return string(out), nil
}

// skipJSONString returns the index of the closing quote of the string opening at start.
func skipJSONString(b []byte, start int) int {
	for i := start + 1; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(b) - 1
}

// blankUntil overwrites bytes from start with spaces until stop reports true,
// keeping line breaks and tabs. It returns the stop index.
func blankUntil(b []byte, start int, stop func(int) bool) int {
	i := start
	for ; i < len(b) && !stop(i); i++ {
		if b[i] != '\n' && b[i] != '\r' && b[i] != '\t' {
			b[i] = ' '
		}
	}
	return i
}

func isJSONWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\n', '\r', '\t':
		return true
	default:
		return false
	}
}

func ensureSingleJSONValue(decoder *json.Decoder) error {
	var extra struct{}
	err := decoder.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return fmt.Errorf("multiple JSON values are not allowed")
	}
	return err
}

func wrapJSONDecodeError(content string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(content, syntaxErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(content, typeErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	return err
}

func offsetToLineCol(content string, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}

	limit := int(offset)
	if limit > len(content) {
		limit = len(content)
	}

	line := 1
	col := 1
	for i := 0; i < limit-1; i++ {
		if content[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
