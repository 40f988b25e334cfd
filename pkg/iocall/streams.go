package iocall

import (
	"regexp"
	"strings"

	"github.com/raymyers/cconv/pkg/lexer"
	"github.com/raymyers/cconv/pkg/rewrite"
)

var (
	printfRe = regexp.MustCompile(`printf\s*\(`)
	scanfRe  = regexp.MustCompile(`scanf\s*\(`)
)

// ToStreams rewrites printf and scanf statements into std::cout and
// std::cin chains. A call whose format is not a string literal is left as
// written.
func ToStreams(src string) Result {
	out, applied := rewrite.Apply(src, StreamRules(rewrite.NewMask(src)))
	return Result{Output: out, Applied: applied}
}

// StreamRules returns the printf and scanf rules.
func StreamRules(mask *rewrite.Mask) []rewrite.Rule {
	return []rewrite.Rule{
		&rewrite.RegexpRule{RuleName: "printf", Re: printfRe, Mask: mask, Build: callBuilder(printfToCout)},
		&rewrite.RegexpRule{RuleName: "scanf", Re: scanfRe, Mask: mask, Build: callBuilder(scanfToCin)},
	}
}

// callBuilder locates the argument list and terminating ';' of the call
// matched by m and hands the split arguments to conv.
func callBuilder(conv func(args []string) (string, bool)) func(string, []int) (rewrite.Rewrite, bool) {
	return func(src string, m []int) (rewrite.Rewrite, bool) {
		open := m[1] - 1
		closeAt := lexer.MatchParen(src, open)
		if closeAt < 0 || src[closeAt] != ')' {
			return rewrite.Rewrite{}, false
		}
		end := statementEnd(src, closeAt)
		if end < 0 || !sameLine(src, m[0], end) {
			return rewrite.Rewrite{}, false
		}
		text, ok := conv(lexer.SplitArgs(src[open+1 : closeAt]))
		if !ok {
			return rewrite.Rewrite{}, false
		}
		return rewrite.Rewrite{Start: m[0], End: end, Text: text}, true
	}
}

func printfToCout(args []string) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	body, ok := lexer.StringBody(args[0])
	if !ok {
		return "", false
	}
	segs, newline := ParseFormat(body)
	values := args[1:]

	var sb strings.Builder
	sb.WriteString("std::cout")
	for _, seg := range segs {
		sb.WriteString(" << ")
		switch {
		case seg.Spec == "":
			sb.WriteString(quote(seg.Text))
		case len(values) > 0:
			sb.WriteString("(" + values[0] + ")")
			values = values[1:]
		default:
			// no argument left for this conversion
			sb.WriteString(quote(seg.Spec))
		}
	}
	if newline {
		sb.WriteString(" << std::endl")
	} else if len(segs) == 0 {
		sb.WriteString(` << ""`)
	}
	sb.WriteString(";")
	return sb.String(), true
}

func scanfToCin(args []string) (string, bool) {
	if len(args) < 2 {
		return "", false
	}
	if _, ok := lexer.StringBody(args[0]); !ok {
		return "", false
	}
	var sb strings.Builder
	sb.WriteString("std::cin")
	for _, target := range args[1:] {
		target = strings.TrimSpace(strings.TrimPrefix(target, "&"))
		sb.WriteString(" >> (" + target + ")")
	}
	sb.WriteString(";")
	return sb.String(), true
}
