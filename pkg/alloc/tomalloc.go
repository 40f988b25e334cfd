package alloc

import (
	"regexp"
	"strings"

	"github.com/raymyers/cconv/pkg/lexer"
	"github.com/raymyers/cconv/pkg/rewrite"
)

var (
	newArrayRe     = regexp.MustCompile(`new\s+((?:struct\s+)?` + ident + `)\s*\[`)
	newScalarRe    = regexp.MustCompile(`new\s+((?:struct\s+)?` + ident + `)(?:\s*\(\s*\))?`)
	deleteArrayRe  = regexp.MustCompile(`delete\s*\[\s*\]\s*(` + ident + `)\s*;`)
	deleteScalarRe = regexp.MustCompile(`delete\s+(` + ident + `)\s*;`)
)

// ToMallocFree rewrites new expressions into casted malloc calls and
// delete statements into free calls.
func ToMallocFree(src string) Result {
	out, applied := rewrite.Apply(src, MallocFreeRules(rewrite.NewMask(src)))
	return Result{Output: out, Applied: applied}
}

// MallocFreeRules returns the new/delete rules in priority order.
func MallocFreeRules(mask *rewrite.Mask) []rewrite.Rule {
	return []rewrite.Rule{
		&rewrite.RegexpRule{RuleName: "new-array", Re: newArrayRe, Mask: mask, Build: buildNewArray},
		&rewrite.RegexpRule{RuleName: "new-scalar", Re: newScalarRe, Mask: mask, Build: buildNewScalar},
		&rewrite.RegexpRule{RuleName: "delete-array", Re: deleteArrayRe, Mask: mask, Build: buildFree},
		&rewrite.RegexpRule{RuleName: "delete-scalar", Re: deleteScalarRe, Mask: mask, Build: buildFree},
	}
}

func buildNewArray(src string, m []int) (rewrite.Rewrite, bool) {
	typ := normalizeSpace(rewrite.Group(src, m, 1))
	open := m[1] - 1
	closeAt := lexer.MatchParen(src, open)
	if closeAt < 0 || src[closeAt] != ']' {
		return rewrite.Rewrite{}, false
	}
	n := strings.TrimSpace(src[open+1 : closeAt])
	if n == "" {
		return rewrite.Rewrite{}, false
	}
	return rewrite.Rewrite{
		Start: m[0],
		End:   closeAt + 1,
		Text:  "(" + typ + "*) malloc(sizeof(" + typ + ") * (" + n + "))",
	}, true
}

func buildNewScalar(src string, m []int) (rewrite.Rewrite, bool) {
	typ := normalizeSpace(rewrite.Group(src, m, 1))
	// new T[...], new T(args), new T*[...] and qualified or templated names
	// stay as written
	rest := strings.TrimLeft(src[m[1]:], " \t")
	if rest != "" && strings.ContainsRune("[(:<*", rune(rest[0])) {
		return rewrite.Rewrite{}, false
	}
	return rewrite.Rewrite{
		Start: m[0],
		End:   m[1],
		Text:  "(" + typ + "*) malloc(sizeof(" + typ + "))",
	}, true
}

func buildFree(src string, m []int) (rewrite.Rewrite, bool) {
	return rewrite.Rewrite{Start: m[0], End: m[1], Text: "free(" + rewrite.Group(src, m, 1) + ");"}, true
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
