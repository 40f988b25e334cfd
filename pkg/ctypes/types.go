// Package ctypes defines the C types a textual declaration scan can recover:
// a base type name plus a pointer depth.
package ctypes

import "strings"

// Type is a declared type as written in source. Base never contains a star;
// indirection lives in Depth.
type Type struct {
	Base  string // int, char, struct Node, Alias
	Depth int    // number of pointer levels, >= 0
}

// Primitives are the base types recognized without a typedef or struct tag.
var Primitives = []string{"int", "long", "float", "double", "char"}

// IsPrimitive reports whether name is one of Primitives.
func IsPrimitive(name string) bool {
	for _, p := range Primitives {
		if p == name {
			return true
		}
	}
	return false
}

// Named returns the non-pointer type with the given base.
func Named(base string) Type {
	return Type{Base: base}
}

// Pointer returns a pointer to t.
func Pointer(t Type) Type {
	return Type{Base: t.Base, Depth: t.Depth + 1}
}

// Elem strips one pointer level. A non-pointer is returned unchanged.
func (t Type) Elem() Type {
	if t.Depth == 0 {
		return t
	}
	return Type{Base: t.Base, Depth: t.Depth - 1}
}

func (t Type) IsPointer() bool {
	return t.Depth > 0
}

// Bare renders t without the struct keyword, the way C++ names a type.
func (t Type) Bare() string {
	return strings.TrimPrefix(t.Base, "struct ") + strings.Repeat("*", t.Depth)
}

func (t Type) String() string {
	return t.Base + strings.Repeat("*", t.Depth)
}

// qualifiers carry no information the rewriters use.
var qualifiers = map[string]bool{
	"const": true, "volatile": true, "static": true, "extern": true,
	"register": true, "signed": true, "unsigned": true, "inline": true,
}

// Parse reads a type spelling such as "unsigned int", "struct Node *" or
// "char**". Qualifiers are dropped and long/short spellings are folded into
// long and int. An empty base is reported as int.
func Parse(s string) Type {
	depth := strings.Count(s, "*")
	var words []string
	for _, w := range strings.Fields(strings.ReplaceAll(s, "*", " ")) {
		if !qualifiers[w] {
			words = append(words, w)
		}
	}
	return Type{Base: foldBase(words), Depth: depth}
}

func foldBase(words []string) string {
	switch {
	case len(words) == 0:
		return "int"
	case words[0] == "struct" && len(words) > 1:
		return "struct " + words[1]
	case words[0] == "long":
		if len(words) > 1 && words[len(words)-1] == "double" {
			return "double"
		}
		return "long"
	case words[0] == "short":
		return "int"
	}
	return strings.Join(words, " ")
}

// FormatSpecifier maps a type to the printf conversion that prints it.
// Pointers other than char* use the mapping of their base; anything
// unrecognized prints as %d.
func FormatSpecifier(t Type) string {
	if t.Base == "char" && t.Depth == 1 {
		return "%s"
	}
	switch t.Base {
	case "long":
		return "%ld"
	case "float":
		return "%f"
	case "double":
		return "%lf"
	case "char":
		return "%c"
	}
	return "%d"
}
