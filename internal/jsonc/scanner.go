// Package jsonc provides lexical helpers for JSON-with-comments documents.
// Nothing here parses JSON semantically: the functions only locate syntactic
// landmarks (last meaningful character, trailing separators, indentation),
// so they stay usable on partial or invalid documents mid-edit.
package jsonc

import "strings"

// LastMeaningfulIndex returns the index of the last character that is not
// whitespace and not part of a // or /* */ comment. Characters inside string
// literals count as meaningful even when they look like comment syntax.
// Returns -1 when the document has no meaningful character.
func LastMeaningfulIndex(s string) int {
	last := -1
	inString := false
	inBlock := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			last = i
			if c == '\\' && i+1 < len(s) {
				i++
				last = i
			} else if c == '"' {
				inString = false
			}
		case inBlock:
			if c == '*' && i+1 < len(s) && s[i+1] == '/' {
				inBlock = false
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			inBlock = true
			i++
		case c == '"':
			inString = true
			last = i
		default:
			if !isSpace(c) {
				last = i
			}
		}
	}

	return last
}

// TrimTrailingComma removes a dangling field separator: either the comma is
// itself the last meaningful character, or the last meaningful character is a
// closing brace/bracket whose preceding meaningful character is a comma.
// Commas inside strings or comments are never touched. Returns the document
// unchanged when there is nothing to remove.
func TrimTrailingComma(s string) string {
	last := LastMeaningfulIndex(s)
	if last < 0 {
		return s
	}

	switch s[last] {
	case ',':
		return s[:last] + s[last+1:]
	case '}', ']':
		prev := LastMeaningfulIndex(s[:last])
		if prev >= 0 && s[prev] == ',' {
			return s[:prev] + s[prev+1:]
		}
	}

	return s
}

// SniffIndent inspects the document for its indentation unit: the first line
// with leading whitespace decides. A leading tab selects tab indentation;
// leading spaces select a run of that exact width. Documents with no indented
// line fall back to four spaces.
func SniffIndent(s string) string {
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || len(trimmed) == len(line) {
			continue
		}
		if line[0] == '\t' {
			return "\t"
		}
		n := 0
		for n < len(line) && line[n] == ' ' {
			n++
		}
		return strings.Repeat(" ", n)
	}
	return "    "
}

// StripComments blanks out // and /* */ comments and dangling commas before a
// closing brace/bracket, replacing them with spaces so byte offsets and line
// numbers survive. The residue is plain JSON that encoding/json will accept,
// assuming the document was well-formed JSONC to begin with.
func StripComments(s string) []byte {
	out := []byte(s)
	inString := false

	for i := 0; i < len(out); i++ {
		c := out[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(out) && out[i+1] == '/':
			for i < len(out) && out[i] != '\n' {
				out[i] = ' '
				i++
			}
		case c == '/' && i+1 < len(out) && out[i+1] == '*':
			out[i], out[i+1] = ' ', ' '
			i += 2
			for i < len(out) {
				if out[i] == '*' && i+1 < len(out) && out[i+1] == '/' {
					out[i], out[i+1] = ' ', ' '
					i++
					break
				}
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
		}
	}

	blankTrailingCommas(out)
	return out
}

// blankTrailingCommas replaces commas whose next meaningful character is a
// closing brace/bracket. Runs after comment stripping, so only string state
// needs tracking.
func blankTrailingCommas(out []byte) {
	inString := false
	pending := -1

	for i := 0; i < len(out); i++ {
		c := out[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if isSpace(c) {
			continue
		}
		if c == ',' {
			pending = i
			continue
		}
		if (c == '}' || c == ']') && pending >= 0 {
			out[pending] = ' '
		}
		pending = -1
		if c == '"' {
			inString = true
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
