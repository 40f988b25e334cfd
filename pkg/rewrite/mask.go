package rewrite

import (
	"sort"

	"github.com/raymyers/cconv/pkg/lexer"
)

// Mask records where the string and character literals and the comments of
// a source text lie, so rules can ignore look-alike text inside them.
type Mask struct {
	spans [][2]int // sorted, non-overlapping [start, end)
}

// NewMask scans src once and returns its mask.
func NewMask(src string) *Mask {
	m := &Mask{}
	l := lexer.New(src)
	for {
		tok := l.NextToken()
		switch tok.Type {
		case lexer.TokenEOF:
			return m
		case lexer.TokenString, lexer.TokenChar, lexer.TokenComment:
			m.spans = append(m.spans, [2]int{tok.Pos, tok.Pos + len(tok.Text)})
		}
	}
}

// InCode reports whether pos lies outside every literal and comment. A nil
// mask treats everything as code.
func (m *Mask) InCode(pos int) bool {
	if m == nil {
		return true
	}
	i := sort.Search(len(m.spans), func(i int) bool { return m.spans[i][1] > pos })
	return i == len(m.spans) || pos < m.spans[i][0]
}
