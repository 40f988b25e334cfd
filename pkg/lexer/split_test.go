package lexer

import (
	"reflect"
	"testing"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`"x=%d\n", x`, []string{`"x=%d\n"`, "x"}},
		{`"a, b", f(1, 2), arr[i, j]`, []string{`"a, b"`, "f(1, 2)", "arr[i, j]"}},
		{`"%c", ','`, []string{`"%c"`, "','"}},
		{`"esc \", still", y`, []string{`"esc \", still"`, "y"}},
		{"", nil},
		{"  ", nil},
		{"a,", []string{"a"}},
	}
	for _, tt := range tests {
		if got := SplitArgs(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitArgs(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		input string
		op    string
		want  []string
	}{
		{`<< "a" << (x) << std::endl`, "<<", []string{"", `"a"`, "(x)", "std::endl"}},
		{`"a << b" << (1 << 2)`, "<<", []string{`"a << b"`, "(1 << 2)"}},
		{" a >> b ", ">>", []string{"a", "b"}},
		{"x", "<<", []string{"x"}},
	}
	for _, tt := range tests {
		if got := SplitTopLevel(tt.input, tt.op); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTopLevel(%q, %q) = %#v, want %#v", tt.input, tt.op, got, tt.want)
		}
	}
}

func TestIndexTopLevel(t *testing.T) {
	tests := []struct {
		input string
		from  int
		want  int
	}{
		{`a << "x;y";`, 0, 10},
		{`f(a; b); c;`, 0, 7},
		{`no semicolon`, 0, -1},
		{`a; b;`, 2, 4},
		{`a;`, 5, -1},
	}
	for _, tt := range tests {
		if got := IndexTopLevel(tt.input, tt.from, ';'); got != tt.want {
			t.Errorf("IndexTopLevel(%q, %d) = %d, want %d", tt.input, tt.from, got, tt.want)
		}
	}
}

func TestMatchParen(t *testing.T) {
	tests := []struct {
		input string
		open  int
		want  int
	}{
		{"(a)", 0, 2},
		{"f(g(x), \")\")", 1, 11},
		{"(a[1)", 0, -1},
		{"(unclosed", 0, -1},
		{"abc", 0, -1},
		{"", 0, -1},
	}
	for _, tt := range tests {
		if got := MatchParen(tt.input, tt.open); got != tt.want {
			t.Errorf("MatchParen(%q, %d) = %d, want %d", tt.input, tt.open, got, tt.want)
		}
	}
}

func TestTrimParens(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(x)", "x"},
		{" ( a + b ) ", "a + b"},
		{"((x))", "(x)"},
		{"(a) + (b)", "(a) + (b)"},
		{"x", "x"},
		{"(", "("},
	}
	for _, tt := range tests {
		if got := TrimParens(tt.input); got != tt.want {
			t.Errorf("TrimParens(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStringBody(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{`"hello\n"`, `hello\n`, true},
		{` "" `, "", true},
		{`"a" "b"`, `a" "b`, true},
		{"fmt", "", false},
		{`'c'`, "", false},
		{`"`, "", false},
	}
	for _, tt := range tests {
		got, ok := StringBody(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("StringBody(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
