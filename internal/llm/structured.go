package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded value after extraction.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls the first JSON object or array out of raw model output
// and decodes it into T. Code fences, chatter around the JSON, comments and
// numbers like ".5" are tolerated. If validator is non-nil it must accept
// the decoded value.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := extractJSONBlock(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON found in response", ErrInvalidOutput)
	}
	block = normalizeLeadingDecimalNumbers(stripJSONComments(block))

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// stripCodeFences drops ``` fence lines and keeps what they enclose.
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

// extractJSONBlock returns the first balanced {...} or [...] block, whichever
// opens first.
func extractJSONBlock(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}

	var stack []byte
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			stack = append(stack, '}')
		case c == '[':
			stack = append(stack, ']')
		case c == '}' || c == ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return ""
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}

// stripJSONComments removes // and /* */ comments outside string values.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if inString {
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// normalizeLeadingDecimalNumbers rewrites ".8" and "-.3" outside strings to
// "0.8" and "-0.3".
func normalizeLeadingDecimalNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(s, i-1)):
			b.WriteByte('0')
		}

		b.WriteByte(c)
	}

	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
			continue
		}
		return s[i]
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
