// Package decls builds the declared-type index: a best-effort map from
// variable name to the type it was declared with, recovered by scanning
// typedefs and declaration lines textually. Scopes are not tracked; a later
// declaration of the same name replaces an earlier one.
package decls

import (
	"regexp"
	"sort"
	"strings"

	"github.com/raymyers/cconv/pkg/ctypes"
	"github.com/raymyers/cconv/pkg/lexer"
)

var (
	// typedef struct Tag Alias;
	typedefStructRe = regexp.MustCompile(`typedef\s+struct\s+([A-Za-z_]\w*)\s+([A-Za-z_]\w*)\s*;`)
	// typedef struct Tag { ... } Alias;
	typedefStructBodyRe = regexp.MustCompile(`typedef\s+struct\s+([A-Za-z_]\w*)\s*\{[^}]*\}\s*([A-Za-z_]\w*)\s*;`)
	// typedef struct { ... } Alias;
	typedefAnonStructRe = regexp.MustCompile(`typedef\s+struct\s*\{[^}]*\}\s*([A-Za-z_]\w*)\s*;`)
	// typedef Base Alias; typedef Base *Alias;
	typedefGenericRe = regexp.MustCompile(`typedef\s+((?:(?:unsigned|signed|const|long|short)\s+)*(?:struct\s+)?[A-Za-z_]\w*)((?:\s*\*)+\s*|\s+)([A-Za-z_]\w*)\s*;`)

	structTagRe = regexp.MustCompile(`struct\s+([A-Za-z_]\w*)\s*\{`)

	declRe = regexp.MustCompile(`(?m)^[ \t]*(?:(?:static|const|extern|register|volatile|signed|unsigned)[ \t]+)*((?:struct[ \t]+)?[A-Za-z_]\w*)((?:[ \t]*\*)+[ \t]*|[ \t]+)([^;\n]+);`)

	derefRe = regexp.MustCompile(`^\*\s*\(?\s*([A-Za-z_]\w*)\s*\)?$`)
	indexRe = regexp.MustCompile(`^([A-Za-z_]\w*)\s*\[.+\]$`)
)

// Index maps identifiers to their declared types.
type Index struct {
	vars     map[string]ctypes.Type
	typedefs map[string]ctypes.Type
	tags     map[string]bool
}

// Build scans source and returns its declaration index.
func Build(source string) *Index {
	ix := &Index{
		vars:     make(map[string]ctypes.Type),
		typedefs: collectTypedefs(source),
		tags:     make(map[string]bool),
	}
	for _, m := range structTagRe.FindAllStringSubmatch(source, -1) {
		ix.tags[m[1]] = true
	}
	for _, m := range declRe.FindAllStringSubmatch(source, -1) {
		typeName, rest := m[1], strings.TrimSpace(m[2])+m[3]
		typeName, rest = foldLongSpellings(typeName, rest)
		base, ok := ix.resolve(typeName)
		if !ok {
			continue
		}
		ix.addDeclarators(base, rest)
	}
	return ix
}

// collectTypedefs gathers alias -> type. The struct shapes overwrite, the
// generic shape only fills aliases that are still free.
func collectTypedefs(source string) map[string]ctypes.Type {
	tdefs := make(map[string]ctypes.Type)
	for _, m := range typedefStructRe.FindAllStringSubmatch(source, -1) {
		tdefs[m[2]] = ctypes.Named("struct " + m[1])
	}
	for _, m := range typedefStructBodyRe.FindAllStringSubmatch(source, -1) {
		tdefs[m[2]] = ctypes.Named("struct " + m[1])
	}
	for _, m := range typedefGenericRe.FindAllStringSubmatch(source, -1) {
		alias := m[3]
		if _, exists := tdefs[alias]; exists {
			continue
		}
		t := ctypes.Parse(m[1])
		t.Depth += strings.Count(m[2], "*")
		tdefs[alias] = t
	}
	for _, m := range typedefAnonStructRe.FindAllStringSubmatch(source, -1) {
		if _, exists := tdefs[m[1]]; !exists {
			tdefs[m[1]] = ctypes.Named(m[1])
		}
	}
	return tdefs
}

// foldLongSpellings moves the second word of "long long x" or "long int x"
// from the declarator list back into the type.
func foldLongSpellings(typeName, rest string) (string, string) {
	if typeName != "long" && typeName != "short" {
		return typeName, rest
	}
	for {
		word := lexer.LeadingIdent(rest)
		if word != "long" && word != "int" && word != "double" {
			return ctypes.Parse(typeName).Base, rest
		}
		typeName += " " + word
		rest = strings.TrimLeft(rest[len(word):], " \t")
	}
}

// resolve maps a type token to its canonical form, going through at most one
// typedef hop.
func (ix *Index) resolve(typeName string) (ctypes.Type, bool) {
	if ctypes.IsPrimitive(typeName) {
		return ctypes.Named(typeName), true
	}
	if f := strings.Fields(typeName); len(f) == 2 && f[0] == "struct" {
		tag := f[1]
		if ix.tags[tag] {
			return ctypes.Named("struct " + tag), true
		}
		return ctypes.Type{}, false
	}
	t, ok := ix.typedefs[typeName]
	return t, ok
}

func (ix *Index) addDeclarators(base ctypes.Type, list string) {
	for _, decl := range lexer.SplitArgs(list) {
		depth := 0
		for strings.HasPrefix(decl, "*") {
			depth++
			decl = strings.TrimSpace(decl[1:])
		}
		name := lexer.LeadingIdent(decl)
		if name == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(decl[len(name):]), "[") {
			depth++
		}
		ix.vars[name] = ctypes.Type{Base: base.Base, Depth: base.Depth + depth}
	}
}

// Lookup returns the declared type of name.
func (ix *Index) Lookup(name string) (ctypes.Type, bool) {
	t, ok := ix.vars[name]
	return t, ok
}

// Typedef returns what alias was declared as.
func (ix *Index) Typedef(alias string) (ctypes.Type, bool) {
	t, ok := ix.typedefs[alias]
	return t, ok
}

// HasStructTag reports whether a struct Tag { ... } definition was seen.
func (ix *Index) HasStructTag(tag string) bool {
	return ix.tags[tag]
}

// Len returns the number of indexed variables.
func (ix *Index) Len() int {
	return len(ix.vars)
}

// Names returns the indexed variable names in sorted order.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.vars))
	for name := range ix.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExprType infers the type of a simple expression: a bare identifier, a
// dereference *p or *(p), or an index a[i]. The last two yield the pointee
// type and fail when the operand is not declared as a pointer.
func (ix *Index) ExprType(expr string) (ctypes.Type, bool) {
	expr = strings.TrimSpace(expr)
	if lexer.IsIdentifier(expr) {
		return ix.Lookup(expr)
	}
	name := ""
	if m := derefRe.FindStringSubmatch(expr); m != nil {
		name = m[1]
	} else if m := indexRe.FindStringSubmatch(expr); m != nil {
		name = m[1]
	} else {
		return ctypes.Type{}, false
	}
	t, ok := ix.Lookup(name)
	if !ok || !t.IsPointer() {
		return ctypes.Type{}, false
	}
	return t.Elem(), true
}
