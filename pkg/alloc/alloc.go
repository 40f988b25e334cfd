// Package alloc rewrites heap allocation statements between the C style
// (malloc, calloc, free) and the C++ style (new, delete).
package alloc

import (
	"regexp"
	"sort"

	"github.com/raymyers/cconv/pkg/lexer"
	"github.com/raymyers/cconv/pkg/rewrite"
)

// Kind says how a pointer was allocated.
type Kind int

const (
	Scalar Kind = iota
	Array
)

func (k Kind) String() string {
	if k == Array {
		return "array"
	}
	return "scalar"
}

// Record maps each identifier allocated in one pass to the kind of its most
// recent allocation. It lives for a single ToNewDelete call.
type Record map[string]Kind

// Result is the outcome of one allocation pass.
type Result struct {
	Output   string
	Applied  []rewrite.Applied
	Record   Record   // nil for ToMallocFree
	Excluded []string // identifiers passed to realloc, sorted
	Guessed  []string // sizeof(*p) allocations typed as int for lack of a declaration, sorted
}

// allocation is the Value carried by allocation rewrites.
type allocation struct {
	name    string
	kind    Kind
	guessed bool
}

const ident = `[A-Za-z_]\w*`

var reallocRe = regexp.MustCompile(`realloc\s*\(\s*(` + ident + `)\s*,`)

// ReallocNames returns every identifier used as the first argument of a
// realloc call outside literals and comments.
func ReallocNames(src string) map[string]bool {
	mask := rewrite.NewMask(src)
	names := make(map[string]bool)
	for _, m := range reallocRe.FindAllStringSubmatchIndex(src, -1) {
		if lexer.WordStart(src, m[0]) && mask.InCode(m[0]) {
			names[src[m[2]:m[3]]] = true
		}
	}
	return names
}

func sortedNames(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
