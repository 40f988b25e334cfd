package decls

import (
	"reflect"
	"testing"

	"github.com/raymyers/cconv/pkg/ctypes"
)

func TestTypedefs(t *testing.T) {
	source := `
typedef struct Node Node;
typedef struct Tree { int key; struct Tree* left; } TreeT;
typedef int i32;
typedef unsigned long ulong;
typedef char *string;
typedef struct { double x, y; } Point;
typedef double i32;
typedef Node NodeAlias;
`
	ix := Build(source)

	tests := []struct {
		alias string
		want  ctypes.Type
	}{
		{"Node", ctypes.Named("struct Node")},
		{"TreeT", ctypes.Named("struct Tree")},
		{"i32", ctypes.Named("int")},
		{"ulong", ctypes.Named("long")},
		{"string", ctypes.Type{Base: "char", Depth: 1}},
		{"Point", ctypes.Named("Point")},
		{"NodeAlias", ctypes.Named("Node")},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			got, ok := ix.Typedef(tt.alias)
			if !ok {
				t.Fatalf("alias %q not collected", tt.alias)
			}
			if got != tt.want {
				t.Errorf("Typedef(%q) = %v, want %v", tt.alias, got, tt.want)
			}
		})
	}
}

func TestStructTypedefOverridesGeneric(t *testing.T) {
	ix := Build("typedef int Node;\ntypedef struct Node Node;\nstruct Node { int v; };\n")
	got, _ := ix.Typedef("Node")
	if got != ctypes.Named("struct Node") {
		t.Errorf("Typedef(Node) = %v, want struct Node", got)
	}
}

func TestDeclarations(t *testing.T) {
	source := `#include <stdio.h>
struct Node {
    int data;
    struct Node* next;
};
typedef struct Node Node;

int count, *ptr, **grid;
static const char *name = "x;y";
double values[16];
long long big;
unsigned int flags;
Node* head = NULL;
struct Node *tail;
struct Unknown *u;
Mystery m;

int main(void) {
    float f = 1.0f, g;
    char c;
    return 0;
}
`
	ix := Build(source)

	tests := []struct {
		name string
		want ctypes.Type
	}{
		{"data", ctypes.Named("int")},
		{"next", ctypes.Type{Base: "struct Node", Depth: 1}},
		{"count", ctypes.Named("int")},
		{"ptr", ctypes.Type{Base: "int", Depth: 1}},
		{"grid", ctypes.Type{Base: "int", Depth: 2}},
		{"name", ctypes.Type{Base: "char", Depth: 1}},
		{"values", ctypes.Type{Base: "double", Depth: 1}},
		{"big", ctypes.Named("long")},
		{"flags", ctypes.Named("int")},
		{"head", ctypes.Type{Base: "struct Node", Depth: 1}},
		{"tail", ctypes.Type{Base: "struct Node", Depth: 1}},
		{"f", ctypes.Named("float")},
		{"g", ctypes.Named("float")},
		{"c", ctypes.Named("char")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ix.Lookup(tt.name)
			if !ok {
				t.Fatalf("%q not indexed", tt.name)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	for _, missing := range []string{"u", "m", "main", "Node"} {
		if got, ok := ix.Lookup(missing); ok {
			t.Errorf("Lookup(%q) = %v, want not indexed", missing, got)
		}
	}
	if !ix.HasStructTag("Node") || ix.HasStructTag("Unknown") {
		t.Errorf("struct tags wrong: Node=%v Unknown=%v", ix.HasStructTag("Node"), ix.HasStructTag("Unknown"))
	}
}

func TestNamesSorted(t *testing.T) {
	ix := Build("int b;\nint a, c;\n")
	if got, want := ix.Names(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if ix.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ix.Len())
	}
}

func TestExprType(t *testing.T) {
	ix := Build("int x;\nint *p;\nchar *s;\ndouble arr[4];\nchar **argv;\n")

	tests := []struct {
		expr   string
		want   ctypes.Type
		wantOK bool
	}{
		{"x", ctypes.Named("int"), true},
		{" s ", ctypes.Type{Base: "char", Depth: 1}, true},
		{"*p", ctypes.Named("int"), true},
		{"*(p)", ctypes.Named("int"), true},
		{"arr[i + 1]", ctypes.Named("double"), true},
		{"argv[0]", ctypes.Type{Base: "char", Depth: 1}, true},
		{"*x", ctypes.Type{}, false},
		{"x[0]", ctypes.Type{}, false},
		{"x + 1", ctypes.Type{}, false},
		{"undeclared", ctypes.Type{}, false},
	}
	for _, tt := range tests {
		got, ok := ix.ExprType(tt.expr)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ExprType(%q) = (%v, %v), want (%v, %v)", tt.expr, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBuildMalformedInput(t *testing.T) {
	inputs := []string{"", ";;;", "typedef", "int ;", "int *;", "struct {", "int x = (;"}
	for _, in := range inputs {
		ix := Build(in)
		if ix == nil {
			t.Fatalf("Build(%q) returned nil", in)
		}
	}
}
