// Package lexer holds the low-level scanners shared by the rewriters: a
// lossless tokenizer and quote-aware splitting and bracket matching helpers.
// Nothing here keeps state between calls.
package lexer

import "strings"

// Lexer splits C or C++ source into tokens without dropping anything:
// whitespace, newlines and comments come back as tokens of their own.
type Lexer struct {
	input string
	pos   int
	line  int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos, Line: l.line}
	}

	c := l.peek()
	switch {
	case c == '\n':
		return l.take(TokenNewline, l.pos+1)
	case isSpace(c):
		end := l.pos
		for end < len(l.input) && isSpace(l.input[end]) {
			end++
		}
		return l.take(TokenWhitespace, end)
	case c == '/' && l.peekAt(1) == '/':
		end := strings.IndexByte(l.input[l.pos:], '\n')
		if end < 0 {
			end = len(l.input)
		} else {
			end += l.pos
		}
		return l.take(TokenComment, end)
	case c == '/' && l.peekAt(1) == '*':
		end := strings.Index(l.input[l.pos+2:], "*/")
		if end < 0 {
			end = len(l.input)
		} else {
			end += l.pos + 4
		}
		return l.take(TokenComment, end)
	case c == '"':
		return l.take(TokenString, SkipQuoted(l.input, l.pos))
	case c == '\'':
		return l.take(TokenChar, SkipQuoted(l.input, l.pos))
	case IsDigit(c) || (c == '.' && IsDigit(l.peekAt(1))):
		end := l.pos
		for end < len(l.input) && (IsIdentChar(l.input[end]) || l.input[end] == '.') {
			end++
		}
		return l.take(TokenNumber, end)
	case IsIdentStart(c):
		end := l.pos
		for end < len(l.input) && IsIdentChar(l.input[end]) {
			end++
		}
		return l.take(TokenIdent, end)
	}
	return l.take(TokenPunct, l.pos+punctLen(l.input[l.pos:]))
}

// AllTokens returns all tokens from the input, not including EOF.
func (l *Lexer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) take(tt TokenType, end int) Token {
	tok := Token{Type: tt, Text: l.input[l.pos:end], Pos: l.pos, Line: l.line}
	l.line += strings.Count(tok.Text, "\n")
	l.pos = end
	return tok
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func punctLen(s string) int {
	if len(s) >= 3 {
		switch s[:3] {
		case "<<=", ">>=", "...":
			return 3
		}
	}
	if len(s) >= 2 {
		switch s[:2] {
		case "->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "::",
			"&&", "||", "*=", "/=", "%=", "+=", "-=", "&=", "^=", "|=":
			return 2
		}
	}
	return 1
}

// SkipQuoted returns the offset just past the string or character literal
// opening at s[start]. An unterminated literal ends at the newline or at the
// end of input.
func SkipQuoted(s string, start int) int {
	quote := s[start]
	i := start + 1
	for i < len(s) {
		switch s[i] {
		case quote:
			return i + 1
		case '\\':
			i += 2
			continue
		case '\n':
			return i
		}
		i++
	}
	return len(s)
}

// TokensToString converts a slice of tokens back to source text.
func TokensToString(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// IsIdentifier checks if a string is a valid C identifier.
func IsIdentifier(s string) bool {
	if len(s) == 0 || !IsIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// LeadingIdent returns the identifier at the start of s, or "".
func LeadingIdent(s string) string {
	if len(s) == 0 || !IsIdentStart(s[0]) {
		return ""
	}
	end := 1
	for end < len(s) && IsIdentChar(s[end]) {
		end++
	}
	return s[:end]
}

// WordStart reports whether s[i] can begin a whole word, that is, the byte
// before it is not part of an identifier.
func WordStart(s string, i int) bool {
	return i == 0 || !IsIdentChar(s[i-1])
}

func IsIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func IsIdentChar(c byte) bool {
	return IsIdentStart(c) || IsDigit(c)
}

func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'
}
