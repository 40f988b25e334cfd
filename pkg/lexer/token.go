package lexer

// TokenType represents the type of a source token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenChar
	TokenComment
	TokenWhitespace
	TokenNewline
	TokenPunct
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "IDENT"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenChar:
		return "CHAR"
	case TokenComment:
		return "COMMENT"
	case TokenWhitespace:
		return "WHITESPACE"
	case TokenNewline:
		return "NEWLINE"
	case TokenPunct:
		return "PUNCT"
	default:
		return "UNKNOWN"
	}
}

// Token is a slice of the input. Concatenating the Text of every token
// returned by a Lexer reproduces the input byte for byte.
type Token struct {
	Type TokenType
	Text string
	Pos  int // byte offset in the input
	Line int
}

// IsCode reports whether the token is program text rather than a literal,
// a comment or layout.
func (t Token) IsCode() bool {
	switch t.Type {
	case TokenIdent, TokenNumber, TokenPunct:
		return true
	}
	return false
}
