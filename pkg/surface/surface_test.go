package surface

import (
	"testing"

	"github.com/raymyers/cconv/pkg/rewrite"
)

func TestIncludesToCpp(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#include <stdio.h>\nint x;\n", "#include <iostream>\nint x;\n"},
		{"  #include <stdio.h>  \n", "#include <iostream>\n"},
		{"# include<stdio.h>", "#include <iostream>"},
		{"#include <stdlib.h>\n", "#include <stdlib.h>\n"},
		{"#include <stdio.h> // io\n", "#include <stdio.h> // io\n"},
		{`const char *h = "#include <stdio.h>";`, `const char *h = "#include <stdio.h>";`},
	}
	for _, tt := range tests {
		if got := IncludesToCpp(tt.input).Output; got != tt.want {
			t.Errorf("IncludesToCpp(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIncludesToC(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#include <iostream>\nint x;\n", "#include <stdio.h>\n#include <stdlib.h>\nint x;\n"},
		{"#include <iostream>\nusing namespace std;\n\nint main() {}\n", "#include <stdio.h>\n#include <stdlib.h>\n\nint main() {}\n"},
		{"using namespace std;", ""},
		{"#include <vector>\n", "#include <vector>\n"},
		{"// using namespace std;\n", "// using namespace std;\n"},
	}
	for _, tt := range tests {
		if got := IncludesToC(tt.input).Output; got != tt.want {
			t.Errorf("IncludesToC(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToCpp(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"struct Node* next;", "Node* next;"},
		{"struct Node *next;", "Node* next;"},
		{"struct Node **pp;", "Node** pp;"},
		{"n = (struct Node*) p;", "n = (Node*) p;"},
		{"struct Node { int v; };", "struct Node { int v; };"},
		{"sizeof(struct Node)", "sizeof(struct Node)"},
		{"p = NULL;", "p = nullptr;"},
		{"if (p == NULL_PTR) {}", "if (p == NULL_PTR) {}"},
		{`puts("NULL");`, `puts("NULL");`},
		{"/* struct Node *n = NULL; */", "/* struct Node *n = NULL; */"},
	}
	for _, tt := range tests {
		if got := ToCpp(tt.input).Output; got != tt.want {
			t.Errorf("ToCpp(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToC(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"p = nullptr;", "p = NULL;"},
		{"bool done = false;", "int done = 0;"},
		{"while (true) {}", "while (1) {}"},
		{"bool_t truely = falsey;", "bool_t truely = falsey;"},
		{`puts("true or false");`, `puts("true or false");`},
		{"char c = 't'; // true", "char c = 't'; // true"},
	}
	for _, tt := range tests {
		if got := ToC(tt.input).Output; got != tt.want {
			t.Errorf("ToC(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToCCounts(t *testing.T) {
	res := ToC("bool a = true, b = false, c = true;\n")
	got := rewrite.Count(res.Applied)
	if got["bool"] != 1 || got["true"] != 2 || got["false"] != 1 || got["null"] != 0 {
		t.Errorf("counts = %v", got)
	}
}
