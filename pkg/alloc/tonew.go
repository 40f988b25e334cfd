package alloc

import (
	"regexp"
	"strings"

	"github.com/raymyers/cconv/pkg/decls"
	"github.com/raymyers/cconv/pkg/lexer"
	"github.com/raymyers/cconv/pkg/rewrite"
)

const (
	// optional (T*) or (struct T *) cast, group captures T
	castOpt = `(?:\(\s*(?:struct\s+)?(` + ident + `)\s*\*\s*\)\s*)?`
	// sizeof(T) or sizeof(struct T), group captures T
	sizeofType = `sizeof\s*\(\s*(?:struct\s+)?(` + ident + `)\s*\)`
	count      = `([^;\n]+?)`
)

var (
	arrayRe = regexp.MustCompile(`(` + ident + `)\s*=\s*` + castOpt +
		`malloc\s*\(\s*` + sizeofType + `\s*\*\s*` + count + `\s*\)\s*;`)
	arrayCountFirstRe = regexp.MustCompile(`(` + ident + `)\s*=\s*` + castOpt +
		`malloc\s*\(\s*` + count + `\s*\*\s*` + sizeofType + `\s*\)\s*;`)
	scalarRe = regexp.MustCompile(`(` + ident + `)\s*=\s*` + castOpt +
		`malloc\s*\(\s*` + sizeofType + `\s*\)\s*;`)
	derefRe = regexp.MustCompile(`(` + ident + `)\s*=\s*` + castOpt +
		`malloc\s*\(\s*(?:` + count + `\s*\*\s*)?sizeof\s*\(\s*\*\s*(` + ident + `)\s*\)\s*(?:\*\s*` + count + `\s*)?\)\s*;`)
	declRe = regexp.MustCompile(`(?:struct\s+)?(` + ident + `)\s*\*\s*(` + ident + `)\s*=\s*` + castOpt +
		`(malloc)\s*\(\s*` + sizeofType + `\s*(?:\*\s*` + count + `\s*)?\)\s*;`)
	callocRe = regexp.MustCompile(`(` + ident + `)\s*=\s*` + castOpt +
		`calloc\s*\(\s*([^,;\n]+?)\s*,\s*sizeof\s*\(\s*(\*\s*)?(?:struct\s+)?(` + ident + `)\s*\)\s*\)\s*;`)
	freeRe = regexp.MustCompile(`free\s*\(\s*(` + ident + `)\s*\)\s*;`)
)

// ToNewDelete rewrites malloc/calloc allocations into new expressions and
// free calls into delete or delete[], pairing each free with the kind its
// identifier was allocated as. ix supplies pointee types for the
// sizeof(*p) forms; it may be nil. Identifiers passed to realloc are left
// alone everywhere.
func ToNewDelete(src string, ix *decls.Index) Result {
	excluded := ReallocNames(src)
	mask := rewrite.NewMask(src)

	out, applied := rewrite.Apply(src, NewDeleteRules(excluded, ix, mask))
	record := make(Record)
	guessed := make(map[string]bool)
	for _, a := range applied {
		if v, ok := a.Value.(allocation); ok {
			record[v.name] = v.kind
			if v.guessed {
				guessed[v.name] = true
			}
		}
	}

	out, freed := rewrite.Apply(out, []rewrite.Rule{freeRule(record, excluded, rewrite.NewMask(out))})
	return Result{
		Output:   out,
		Applied:  append(applied, freed...),
		Record:   record,
		Excluded: sortedNames(excluded),
		Guessed:  sortedNames(guessed),
	}
}

// NewDeleteRules returns the allocation rules in priority order.
func NewDeleteRules(excluded map[string]bool, ix *decls.Index, mask *rewrite.Mask) []rewrite.Rule {
	rule := func(name string, re *regexp.Regexp, build func(string, []int) (rewrite.Rewrite, bool)) rewrite.Rule {
		return &rewrite.RegexpRule{RuleName: name, Re: re, Mask: mask, Build: build}
	}
	return []rewrite.Rule{
		rule("malloc-array", arrayRe, func(src string, m []int) (rewrite.Rewrite, bool) {
			name, cast, typ, n := rewrite.Group(src, m, 1), rewrite.Group(src, m, 2), rewrite.Group(src, m, 3), rewrite.Group(src, m, 4)
			if excluded[name] || !castAgrees(cast, typ) || !balanced(n) {
				return rewrite.Rewrite{}, false
			}
			return assign(m, name, typ, n, Array), true
		}),
		rule("malloc-array-count-first", arrayCountFirstRe, func(src string, m []int) (rewrite.Rewrite, bool) {
			name, cast, n, typ := rewrite.Group(src, m, 1), rewrite.Group(src, m, 2), rewrite.Group(src, m, 3), rewrite.Group(src, m, 4)
			if excluded[name] || !castAgrees(cast, typ) || !balanced(n) || strings.Contains(n, "sizeof") {
				return rewrite.Rewrite{}, false
			}
			return assign(m, name, typ, n, Array), true
		}),
		rule("malloc-scalar", scalarRe, func(src string, m []int) (rewrite.Rewrite, bool) {
			name, cast, typ := rewrite.Group(src, m, 1), rewrite.Group(src, m, 2), rewrite.Group(src, m, 3)
			if excluded[name] || !castAgrees(cast, typ) {
				return rewrite.Rewrite{}, false
			}
			return assign(m, name, typ, "", Scalar), true
		}),
		rule("malloc-sizeof-deref", derefRe, func(src string, m []int) (rewrite.Rewrite, bool) {
			name, cast, target := rewrite.Group(src, m, 1), rewrite.Group(src, m, 2), rewrite.Group(src, m, 4)
			n := rewrite.Group(src, m, 3)
			if n == "" {
				n = rewrite.Group(src, m, 5)
			}
			if excluded[name] || target != name || !balanced(n) {
				return rewrite.Rewrite{}, false
			}
			typ, guessed := cast, false
			if typ == "" {
				typ, guessed = pointeeName(ix, name)
			}
			kind := Scalar
			if n != "" {
				kind = Array
			}
			return guess(assign(m, name, typ, n, kind), guessed), true
		}),
		rule("malloc-decl", declRe, func(src string, m []int) (rewrite.Rewrite, bool) {
			declType, name, cast, typ, n := rewrite.Group(src, m, 1), rewrite.Group(src, m, 2), rewrite.Group(src, m, 3), rewrite.Group(src, m, 5), rewrite.Group(src, m, 6)
			if excluded[name] || declType != typ || !castAgrees(cast, typ) || !balanced(n) {
				return rewrite.Rewrite{}, false
			}
			kind := Scalar
			if n != "" {
				kind = Array
			}
			// keep "T* name =" as written, drop any cast
			end := m[2*4]
			if cast != "" {
				end = strings.LastIndexByte(src[:m[2*3]], '(')
			}
			decl := strings.TrimRight(src[m[0]:end], " \t")
			return rewrite.Rewrite{
				Start: m[0],
				End:   m[1],
				Text:  decl + " " + newExpr(typ, n) + ";",
				Value: allocation{name: name, kind: kind},
			}, true
		}),
		rule("calloc", callocRe, func(src string, m []int) (rewrite.Rewrite, bool) {
			name, cast, n := rewrite.Group(src, m, 1), rewrite.Group(src, m, 2), rewrite.Group(src, m, 3)
			deref, typ := rewrite.Group(src, m, 4) != "", rewrite.Group(src, m, 5)
			guessed := false
			if excluded[name] || !balanced(n) {
				return rewrite.Rewrite{}, false
			}
			if deref {
				if typ != name {
					return rewrite.Rewrite{}, false
				}
				typ = cast
				if typ == "" {
					typ, guessed = pointeeName(ix, name)
				}
			} else if !castAgrees(cast, typ) {
				return rewrite.Rewrite{}, false
			}
			if n == "1" {
				return guess(assign(m, name, typ, "", Scalar), guessed), true
			}
			return guess(assign(m, name, typ, n, Array), guessed), true
		}),
	}
}

// freeRule turns free(name); into delete[] for recorded arrays and into
// delete for everything else.
func freeRule(record Record, excluded map[string]bool, mask *rewrite.Mask) rewrite.Rule {
	return &rewrite.RegexpRule{
		RuleName: "free",
		Re:       freeRe,
		Mask:     mask,
		Build: func(src string, m []int) (rewrite.Rewrite, bool) {
			name := rewrite.Group(src, m, 1)
			if excluded[name] {
				return rewrite.Rewrite{}, false
			}
			text := "delete " + name + ";"
			if record[name] == Array {
				text = "delete[] " + name + ";"
			}
			return rewrite.Rewrite{Start: m[0], End: m[1], Text: text}, true
		},
	}
}

func assign(m []int, name, typ, n string, kind Kind) rewrite.Rewrite {
	return rewrite.Rewrite{
		Start: m[0],
		End:   m[1],
		Text:  name + " = " + newExpr(typ, n) + ";",
		Value: allocation{name: name, kind: kind},
	}
}

// guess marks an allocation whose type fell back to int.
func guess(rw rewrite.Rewrite, guessed bool) rewrite.Rewrite {
	if a, ok := rw.Value.(allocation); ok && guessed {
		a.guessed = true
		rw.Value = a
	}
	return rw
}

func newExpr(typ, n string) string {
	if n == "" {
		return "new " + typ
	}
	return "new " + typ + "[" + lexer.TrimParens(n) + "]"
}

func castAgrees(cast, typ string) bool {
	return cast == "" || cast == typ
}

// pointeeName is the bare type name p points to. When p is not indexed it
// falls back to int and reports the guess.
func pointeeName(ix *decls.Index, p string) (string, bool) {
	if ix == nil {
		return "int", true
	}
	t, ok := ix.Lookup(p)
	if !ok {
		return "int", true
	}
	return t.Elem().Bare(), false
}

// balanced reports whether the parentheses in an element count pair up.
func balanced(n string) bool {
	depth := 0
	for i := 0; i < len(n); i++ {
		switch n[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
