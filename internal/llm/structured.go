package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed value after JSON extraction.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object found in raw model output into
// T. Markdown fences, prose around the object, comments, trailing commas
// and numbers like ".5" are tolerated. A non-nil validator runs on the
// decoded value; every failure wraps ErrInvalidOutput.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := extractJSONBlock(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(cleanJSON(block)), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// stripCodeFences drops markdown fence lines (``` or ```json), keeping
// their content.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// extractJSONBlock returns the first balanced { ... } block, ignoring braces
// inside string literals.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	var lit literalTracker
	for i := start; i < len(s); i++ {
		if lit.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// cleanJSON repairs the common ways models break JSON: // and /* */
// comments, trailing commas before a closing bracket, and numbers written
// with a bare leading decimal point. String literals are left untouched.
func cleanJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var lit literalTracker
	for i := 0; i < len(s); i++ {
		c := s[i]
		if lit.step(c) {
			b.WriteByte(c)
			continue
		}

		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end == -1 {
				i = len(s)
			} else {
				i += end + 3
			}
			continue
		case c == ',' && closesNext(s, i+1):
			continue
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(b.String())):
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// literalTracker follows JSON string literal boundaries byte by byte.
type literalTracker struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it belongs to a string literal,
// including its quotes.
func (l *literalTracker) step(c byte) bool {
	switch {
	case l.escaped:
		l.escaped = false
		return true
	case c == '\\' && l.inString:
		l.escaped = true
		return true
	case c == '"':
		l.inString = !l.inString
		return true
	}
	return l.inString
}

// closesNext reports whether the next non-space byte at or after i closes an
// object or array.
func closesNext(s string, i int) bool {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
			continue
		case '}', ']':
			return true
		}
		return false
	}
	return false
}

func prevNonSpace(s string) byte {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != ' ' && s[i] != '\n' && s[i] != '\r' && s[i] != '\t' {
			return s[i]
		}
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
