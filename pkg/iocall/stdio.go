package iocall

import (
	"regexp"
	"strings"

	"github.com/raymyers/cconv/pkg/ctypes"
	"github.com/raymyers/cconv/pkg/decls"
	"github.com/raymyers/cconv/pkg/lexer"
	"github.com/raymyers/cconv/pkg/rewrite"
)

var (
	coutRe = regexp.MustCompile(`(?:std\s*::\s*)?cout`)
	cinRe  = regexp.MustCompile(`(?:std\s*::\s*)?cin`)
)

// ToStdio rewrites std::cout and std::cin statements into printf and scanf
// calls. Conversions for printed values come from the declarations found
// in src; values it cannot type print with %d. Every scanf conversion is %d.
func ToStdio(src string) Result {
	// One index for the whole pass: a rewritten statement never declares
	// anything, so rebuilding it after each one would find the same names.
	out, applied := rewrite.Apply(src, StdioRules(decls.Build(src), rewrite.NewMask(src)))
	return Result{Output: out, Applied: applied}
}

// StdioRules returns the cout and cin rules typed against ix.
func StdioRules(ix *decls.Index, mask *rewrite.Mask) []rewrite.Rule {
	return []rewrite.Rule{
		&rewrite.RegexpRule{RuleName: "cout", Re: coutRe, Mask: mask, Build: chainBuilder("<<", func(items []string) (string, bool) {
			return coutToPrintf(items, ix)
		})},
		&rewrite.RegexpRule{RuleName: "cin", Re: cinRe, Mask: mask, Build: chainBuilder(">>", cinToScanf)},
	}
}

// chainBuilder takes the stream operands following the matched stream name
// up to the statement's ';' and hands them to conv.
func chainBuilder(op string, conv func(items []string) (string, bool)) func(string, []int) (rewrite.Rewrite, bool) {
	return func(src string, m []int) (rewrite.Rewrite, bool) {
		if m[1] < len(src) && lexer.IsIdentChar(src[m[1]]) {
			return rewrite.Rewrite{}, false
		}
		semi := lexer.IndexTopLevel(src, m[1], ';')
		if semi < 0 || !sameLine(src, m[0], semi) {
			return rewrite.Rewrite{}, false
		}
		chain := strings.TrimSpace(src[m[1]:semi])
		if !strings.HasPrefix(chain, op) {
			return rewrite.Rewrite{}, false
		}
		items := lexer.SplitTopLevel(chain, op)[1:]
		for _, it := range items {
			if it == "" {
				return rewrite.Rewrite{}, false
			}
		}
		text, ok := conv(items)
		if !ok {
			return rewrite.Rewrite{}, false
		}
		return rewrite.Rewrite{Start: m[0], End: semi + 1, Text: text}, true
	}
}

func isEndl(item string) bool {
	switch item {
	case "std::endl", "endl", `'\n'`, `"\n"`:
		return true
	}
	return false
}

func coutToPrintf(items []string, ix *decls.Index) (string, bool) {
	var (
		format strings.Builder
		args   []string
	)
	for _, item := range items {
		if isEndl(item) {
			format.WriteString(`\n`)
			continue
		}
		if item == "std::flush" || item == "flush" {
			continue
		}
		if body, ok := lexer.StringBody(item); ok {
			format.WriteString(strings.ReplaceAll(body, "%", "%%"))
			continue
		}
		value := lexer.TrimParens(item)
		spec := "%d"
		if ix != nil {
			if t, ok := ix.ExprType(value); ok {
				spec = ctypes.FormatSpecifier(t)
			}
		}
		format.WriteString(spec)
		args = append(args, value)
	}
	call := "printf(" + quote(format.String())
	for _, a := range args {
		call += ", " + a
	}
	return call + ");", true
}

func cinToScanf(items []string) (string, bool) {
	specs := make([]string, len(items))
	targets := make([]string, len(items))
	for i, item := range items {
		specs[i] = "%d"
		targets[i] = "&" + lexer.TrimParens(item)
	}
	return "scanf(" + quote(strings.Join(specs, " ")) + ", " + strings.Join(targets, ", ") + ");", true
}
