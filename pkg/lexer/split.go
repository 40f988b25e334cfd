package lexer

import "strings"

// walk calls fn for every byte of s that lies outside string and character
// literals, together with the bracket nesting depth at that byte. Walking
// stops when fn returns false.
func walk(s string, fn func(i, depth int) bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\'' {
			i = SkipQuoted(s, i) - 1
			continue
		}
		switch c {
		case '(', '[', '{':
			if !fn(i, depth) {
				return
			}
			depth++
			continue
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		}
		if !fn(i, depth) {
			return
		}
	}
}

// SplitArgs splits an argument list on commas that are outside literals and
// brackets. Parts are trimmed; a trailing empty part is dropped.
func SplitArgs(s string) []string {
	var parts []string
	last := 0
	walk(s, func(i, depth int) bool {
		if depth == 0 && s[i] == ',' {
			parts = append(parts, strings.TrimSpace(s[last:i]))
			last = i + 1
		}
		return true
	})
	if tail := strings.TrimSpace(s[last:]); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}

// SplitTopLevel splits s on every occurrence of op that is outside literals
// and brackets, trimming the parts. It is used for stream operator chains.
func SplitTopLevel(s, op string) []string {
	var parts []string
	last := 0
	skipTo := 0
	walk(s, func(i, depth int) bool {
		if i < skipTo || depth != 0 {
			return true
		}
		if strings.HasPrefix(s[i:], op) {
			parts = append(parts, strings.TrimSpace(s[last:i]))
			last = i + len(op)
			skipTo = last
		}
		return true
	})
	return append(parts, strings.TrimSpace(s[last:]))
}

// IndexTopLevel returns the index of the first c in s at or after from that
// is outside literals and brackets, or -1.
func IndexTopLevel(s string, from int, c byte) int {
	if from >= len(s) {
		return -1
	}
	idx := -1
	walk(s[from:], func(i, depth int) bool {
		if depth == 0 && s[from+i] == c {
			idx = from + i
			return false
		}
		return true
	})
	return idx
}

// MatchParen returns the index of the bracket closing the one at s[open],
// skipping over literals, or -1 when it is never closed.
func MatchParen(s string, open int) int {
	if open >= len(s) {
		return -1
	}
	switch s[open] {
	case '(', '[', '{':
	default:
		return -1
	}
	closeAt := -1
	walk(s[open:], func(i, depth int) bool {
		if i > 0 && depth == 0 && isCloser(s[open+i]) {
			closeAt = open + i
			return false
		}
		return true
	})
	return closeAt
}

func isCloser(c byte) bool {
	return c == ')' || c == ']' || c == '}'
}

// TrimParens removes one layer of parentheses wrapping all of s, as in
// "(x)" -> "x". "(a) + (b)" is returned unchanged.
func TrimParens(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || MatchParen(s, 0) != len(s)-1 {
		return s
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}

// StringBody returns the text between the outer double quotes of a string
// literal. Adjacent literals ("a" "b") come back with their inner quotes, so
// the body stays a valid literal once requoted.
func StringBody(lit string) (string, bool) {
	lit = strings.TrimSpace(lit)
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", false
	}
	return lit[1 : len(lit)-1], true
}
