package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when no JSON object can be found in a model response.
var ErrNoJSON = errors.New("no JSON object in response")

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// DecodeLenient extracts candidates from a raw model response. Models wrap
// JSON in prose or code fences and leave trailing commas, so the raw text is
// cleaned up before the strict parse: the first balanced {...} span is
// extracted and trailing commas stripped. The parse itself stays strict.
func DecodeLenient(raw string) (*Candidates, error) {
	span, ok := firstObject(raw)
	if !ok {
		return nil, fmt.Errorf("decode response: %w", ErrNoJSON)
	}
	span = trailingComma.ReplaceAllString(span, "$1")

	var c Candidates
	if err := json.Unmarshal([]byte(span), &c); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &c, nil
}

// firstObject returns the first balanced top-level {...} span, tracking
// string literals so braces inside values don't unbalance the scan.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// flexBool tolerates the boolean shapes models actually emit: true, "true",
// "yes", 1. Anything unrecognized decodes as false rather than failing the
// batch.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(strings.Trim(string(data), `"`)) {
	case "true", "yes", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}
