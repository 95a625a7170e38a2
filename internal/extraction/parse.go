package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/infews/parkive/internal/document"
)

var codeFence = regexp.MustCompile("(?i)```(?:json)?\\s*")

// ParseResponse turns a raw model response into fields. It tolerates
// markdown code fences and prose around the JSON object. Known fields are
// converted to strings, missing ones are left empty and unknown keys are
// dropped.
func ParseResponse(raw string) (document.Fields, error) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(strings.TrimSpace(raw), ""))
	if cleaned == "" {
		return document.Fields{}, errors.New("empty response")
	}

	var (
		value any
		err   error
	)
	if object, ok := firstObject(cleaned); ok {
		value, err = decode(object)
	}
	if value == nil {
		value, err = decode(cleaned)
	}
	if err != nil {
		return document.Fields{}, fmt.Errorf("unmarshaling json: %w", err)
	}

	if err := validator.Validate(value); err != nil {
		return document.Fields{}, fmt.Errorf("json does not match schema: %w", err)
	}

	m := value.(map[string]any)
	var fields document.Fields
	for _, name := range document.FieldOrder {
		fields.Set(name, stringify(m[name]))
	}
	return fields, nil
}

func decode(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	}
	return ""
}

// firstObject returns the first balanced {...} in s, skipping braces
// inside JSON strings
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
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
