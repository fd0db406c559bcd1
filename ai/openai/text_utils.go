package openai

import (
	"strings"
	"unicode"
)

// cleanResponse extracts the JSON object from a model reply.
// Markdown fences and any prose around the outermost braces are dropped,
// then common formatting slips are repaired.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}'); start >= 0 && end > start {
		s = s[start : end+1]
	}
	return repairJSON(s)
}

// repairJSON fixes two mistakes small models make often: a key missing its
// opening quote (`{keywords": []}`) and a trailing comma before a closing
// brace or bracket. String contents are never modified.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+8)
	inString, escaped := false, false

	for i := 0; i < len(in); i++ {
		ch := in[i]

		if inString {
			out = append(out, ch)
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
			out = append(out, ch)
			continue
		case ',':
			if next := nextNonSpace(in, i+1); next == '}' || next == ']' {
				continue
			}
		}

		out = append(out, ch)
		if ch != '{' && ch != ',' {
			continue
		}

		// Look for `word":` after optional whitespace
		j := i + 1
		for j < len(in) && unicode.IsSpace(in[j]) {
			j++
		}
		k := j
		for k < len(in) && (isLetter(in[k]) || in[k] == '_') {
			k++
		}
		if k > j && k+1 < len(in) && in[k] == '"' && in[k+1] == ':' {
			out = append(out, in[i+1:j]...)
			out = append(out, '"')
			out = append(out, in[j:k]...)
			// The existing quote at in[k] closes the key
			inString = true
			i = k - 1
		}
	}

	return string(out)
}

// nextNonSpace returns the first non-whitespace rune at or after i, or 0.
func nextNonSpace(in []rune, i int) rune {
	for ; i < len(in); i++ {
		if !unicode.IsSpace(in[i]) {
			return in[i]
		}
	}
	return 0
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
