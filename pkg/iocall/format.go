package iocall

import (
	"regexp"
	"strings"
)

var specRe = regexp.MustCompile(`%%|%\d*\.?\d*l?[dfcsg]`)

// Segment is one piece of a printf format string: either literal text or a
// conversion specifier that consumes one argument.
type Segment struct {
	Text string // literal text, escapes kept as written
	Spec string // conversion such as %d or %.2f; empty for literal text
}

// ParseFormat splits the body of a format literal into segments. A \n at
// the very end of the body is removed and reported separately. %% becomes a
// literal percent sign; a lone % that starts no known conversion stays
// literal text.
func ParseFormat(body string) (segs []Segment, newline bool) {
	if strings.HasSuffix(body, `\n`) && !escapedAt(body, len(body)-2) {
		body = body[:len(body)-2]
		newline = true
	}
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			segs = append(segs, Segment{Text: text.String()})
			text.Reset()
		}
	}
	last := 0
	for _, loc := range specRe.FindAllStringIndex(body, -1) {
		if escapedAt(body, loc[0]) {
			continue
		}
		text.WriteString(body[last:loc[0]])
		last = loc[1]
		spec := body[loc[0]:loc[1]]
		if spec == "%%" {
			text.WriteByte('%')
			continue
		}
		flush()
		segs = append(segs, Segment{Spec: spec})
	}
	text.WriteString(body[last:])
	flush()
	return segs, newline
}

// escapedAt reports whether s[i] is preceded by an odd run of backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
