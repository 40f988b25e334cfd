// Package surface handles the spelling differences between the two
// dialects that need no knowledge of types: headers, null pointers,
// booleans and struct tags in pointer types.
package surface

import (
	"regexp"

	"github.com/raymyers/cconv/pkg/lexer"
	"github.com/raymyers/cconv/pkg/rewrite"
)

// Result is the outcome of one surface pass.
type Result struct {
	Output  string
	Applied []rewrite.Applied
}

var (
	stdioIncludeRe    = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*include[ \t]*<stdio\.h>[ \t]*$`)
	iostreamIncludeRe = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*include[ \t]*<iostream>[ \t]*$`)
	usingStdRe        = regexp.MustCompile(`(?m)^[ \t]*using[ \t]+namespace[ \t]+std[ \t]*;[ \t]*(?:\n|$)`)

	structPtrRe = regexp.MustCompile(`struct\s+([A-Za-z_]\w*)\s*(\*+)`)
)

// IncludesToCpp swaps #include <stdio.h> lines for #include <iostream>.
func IncludesToCpp(src string) Result {
	return apply(src, []rewrite.Rule{
		lineRule("include-iostream", stdioIncludeRe, "#include <iostream>"),
	})
}

// IncludesToC swaps #include <iostream> lines for the stdio and stdlib
// headers and drops using namespace std; lines.
func IncludesToC(src string) Result {
	return apply(src, []rewrite.Rule{
		lineRule("include-stdio", iostreamIncludeRe, "#include <stdio.h>\n#include <stdlib.h>"),
		lineRule("using-namespace", usingStdRe, ""),
	})
}

// ToCpp drops the struct keyword from pointer types and spells NULL as
// nullptr.
func ToCpp(src string) Result {
	mask := rewrite.NewMask(src)
	return apply(src, []rewrite.Rule{
		&rewrite.RegexpRule{RuleName: "struct-pointer", Re: structPtrRe, Mask: mask, Build: buildStructPointer},
		word("nullptr", "NULL", "nullptr", mask),
	})
}

// ToC spells nullptr as NULL and lowers bool, true and false to int, 1
// and 0.
func ToC(src string) Result {
	mask := rewrite.NewMask(src)
	return apply(src, []rewrite.Rule{
		word("null", "nullptr", "NULL", mask),
		word("bool", "bool", "int", mask),
		word("true", "true", "1", mask),
		word("false", "false", "0", mask),
	})
}

func apply(src string, rules []rewrite.Rule) Result {
	out, applied := rewrite.Apply(src, rules)
	return Result{Output: out, Applied: applied}
}

// lineRule replaces whole lines matched by re. Matches that do not begin a
// line are ignored.
func lineRule(name string, re *regexp.Regexp, text string) rewrite.Rule {
	return &rewrite.RegexpRule{
		RuleName: name,
		Re:       re,
		Build: func(src string, m []int) (rewrite.Rewrite, bool) {
			if m[0] > 0 && src[m[0]-1] != '\n' {
				return rewrite.Rewrite{}, false
			}
			return rewrite.Rewrite{Start: m[0], End: m[1], Text: text}, true
		},
	}
}

// word replaces the identifier from with to.
func word(name, from, to string, mask *rewrite.Mask) rewrite.Rule {
	return &rewrite.RegexpRule{
		RuleName: name,
		Re:       regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`),
		Mask:     mask,
		Build: func(src string, m []int) (rewrite.Rewrite, bool) {
			return rewrite.Rewrite{Start: m[0], End: m[1], Text: to}, true
		},
	}
}

func buildStructPointer(src string, m []int) (rewrite.Rewrite, bool) {
	text := rewrite.Group(src, m, 1) + rewrite.Group(src, m, 2)
	if m[1] < len(src) && lexer.IsIdentChar(src[m[1]]) {
		text += " "
	}
	return rewrite.Rewrite{Start: m[0], End: m[1], Text: text}, true
}
