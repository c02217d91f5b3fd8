// Package recovery parses nominally-JSON model responses that may be
// wrapped in extraneous text, fenced code markers, or truncated
// mid-structure, recovering the longest valid prefix of structured
// data instead of discarding the whole response.
package recovery

import (
	"encoding/json"
	"strings"
)

// ExtractValidJSON returns a syntactically valid JSON document
// recovered from the input. It never fails: when nothing can be
// recovered it returns an empty array or object, so malformed provider
// output surfaces as zero records rather than a pipeline error.
func ExtractValidJSON(s string) string {
	cleaned := stripWrapping(s)
	if cleaned == "" {
		return "[]"
	}

	if json.Valid([]byte(cleaned)) {
		return cleaned
	}

	switch cleaned[0] {
	case '[':
		return recoverArray(cleaned)
	case '{':
		return recoverObject(cleaned)
	}
	return "[]"
}

// stripWrapping removes fenced code markers and any extraneous text
// before the first JSON structure.
func stripWrapping(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	// Drop any prose preamble before the first structure.
	if i := strings.IndexAny(s, "[{"); i > 0 {
		s = s[i:]
	} else if i < 0 {
		return ""
	}
	return s
}

// recoverArray scans an array-shaped input character by character,
// tracking string-escape state and brace depth. Every span where the
// depth returns to zero after having been positive is a syntactically
// complete object; objects that parse in isolation are kept, the rest
// discarded. The survivors are assembled into a new, valid array even
// when later objects in the stream were truncated.
func recoverArray(s string) string {
	content := s[1:] // past the opening bracket

	var valid []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(content); i++ {
		c := content[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start != -1 {
				obj := content[start : i+1]
				if json.Valid([]byte(obj)) {
					valid = append(valid, obj)
				}
				start = -1
			}
		}
	}

	if len(valid) == 0 {
		return "[]"
	}
	return "[" + strings.Join(valid, ",") + "]"
}

// recoverObject parses an object-shaped input line by line, keeping
// "key": value pairs whose value is structurally complete (closed
// quotes, matched brackets, or a complete primitive) and discarding
// incomplete trailing fields.
func recoverObject(s string) string {
	type pair struct {
		key   string
		value json.RawMessage
	}
	var pairs []pair
	seen := make(map[string]bool)

	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "{" || line == "}" || !strings.HasPrefix(line, `"`) {
			continue
		}

		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}

		keyPart := strings.TrimSpace(line[:colon])
		valuePart := strings.TrimSuffix(strings.TrimSpace(line[colon+1:]), ",")

		var key string
		if err := json.Unmarshal([]byte(keyPart), &key); err != nil {
			continue
		}
		if !isCompleteValue(valuePart) || !json.Valid([]byte(valuePart)) {
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, pair{key: key, value: json.RawMessage(valuePart)})
	}

	if len(pairs) == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte(',')
		}
		k, _ := json.Marshal(p.key)
		sb.Write(k)
		sb.WriteByte(':')
		sb.Write(p.value)
	}
	sb.WriteByte('}')
	return sb.String()
}

// isCompleteValue reports whether a single-line value is structurally
// complete: closed quotes, matched brackets, or a complete primitive.
func isCompleteValue(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}

	if strings.HasPrefix(v, `"`) {
		return len(v) >= 2 && strings.HasSuffix(v, `"`) && !strings.HasSuffix(v, `\"`)
	}
	if v == "true" || v == "false" || v == "null" {
		return true
	}
	if strings.HasPrefix(v, "[") {
		return strings.HasSuffix(v, "]")
	}
	if strings.HasPrefix(v, "{") {
		return strings.HasSuffix(v, "}")
	}
	// Primitive number.
	return json.Valid([]byte(v))
}
