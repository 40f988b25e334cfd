package rewrite

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// wordRule replaces every whole occurrence of from with to.
func wordRule(name, from, to string) Rule {
	return &RegexpRule{
		RuleName: name,
		Re:       regexp.MustCompile(regexp.QuoteMeta(from)),
		Build: func(src string, m []int) (Rewrite, bool) {
			return Rewrite{Start: m[0], End: m[1], Text: to}, true
		},
	}
}

func TestApplyNoRules(t *testing.T) {
	out, applied := Apply("int x;", nil)
	if out != "int x;" || applied != nil {
		t.Errorf("Apply with no rules = (%q, %v)", out, applied)
	}
}

func TestApplyLeftmostWins(t *testing.T) {
	rules := []Rule{
		wordRule("second", "bb", "B"),
		wordRule("first", "aa", "A"),
	}
	out, applied := Apply("aa bb aa", rules)
	if out != "A B A" {
		t.Errorf("output = %q, want %q", out, "A B A")
	}
	var order []string
	for _, a := range applied {
		order = append(order, a.Rule)
	}
	if want := []string{"first", "second", "first"}; !reflect.DeepEqual(order, want) {
		t.Errorf("applied order = %v, want %v", order, want)
	}
}

func TestApplyPriorityAtSameOffset(t *testing.T) {
	rules := []Rule{
		wordRule("long", "malloc(n)", "LONG"),
		wordRule("short", "malloc", "SHORT"),
	}
	out, _ := Apply("malloc(n); malloc(m);", rules)
	if want := "LONG; SHORT(m);"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	// Reversing the list reverses the precedence.
	out, _ = Apply("malloc(n);", []Rule{rules[1], rules[0]})
	if want := "SHORT(n);"; out != want {
		t.Errorf("reversed output = %q, want %q", out, want)
	}
}

func TestApplyNoOverlap(t *testing.T) {
	rules := []Rule{wordRule("aa", "aa", "X")}
	out, applied := Apply("aaa", rules)
	if out != "Xa" || len(applied) != 1 {
		t.Errorf("Apply = (%q, %d rewrites), want (\"Xa\", 1)", out, len(applied))
	}
}

func TestRegexpRuleWordStart(t *testing.T) {
	rule := wordRule("free", "free(", "release(")
	out, applied := Apply("free(a); myfree(b); xfree(c); free(d);", []Rule{rule})
	if want := "release(a); myfree(b); xfree(c); release(d);"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if len(applied) != 2 {
		t.Errorf("applied %d rewrites, want 2", len(applied))
	}
}

func TestRegexpRuleRejectResumes(t *testing.T) {
	// Only rewrite calls whose argument is not "skip".
	rule := &RegexpRule{
		RuleName: "call",
		Re:       regexp.MustCompile(`f\((\w+)\)`),
		Build: func(src string, m []int) (Rewrite, bool) {
			if Group(src, m, 1) == "skip" {
				return Rewrite{}, false
			}
			return Rewrite{Start: m[0], End: m[1], Text: "g(" + Group(src, m, 1) + ")"}, true
		},
	}
	out, _ := Apply("f(skip) f(x) f(skip) f(y)", []Rule{rule})
	if want := "f(skip) g(x) f(skip) g(y)"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

type brokenRule struct{}

func (brokenRule) Name() string { return "broken" }

func (brokenRule) TryMatch(src string, from int) (Rewrite, bool) {
	return Rewrite{Start: from, End: from, Text: "!"}, true
}

func TestApplyIgnoresEmptyRewrites(t *testing.T) {
	out, applied := Apply("abc", []Rule{brokenRule{}})
	if out != "abc" || len(applied) != 0 {
		t.Errorf("Apply = (%q, %v), want input unchanged", out, applied)
	}
}

func TestCount(t *testing.T) {
	_, applied := Apply("a b a", []Rule{wordRule("a", "a", "1"), wordRule("b", "b", "2")})
	if got, want := Count(applied), map[string]int{"a": 2, "b": 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Count = %v, want %v", got, want)
	}
}

func TestGroup(t *testing.T) {
	re := regexp.MustCompile(`(a)(x)?`)
	src := "ba"
	m := re.FindStringSubmatchIndex(src)
	if got := Group(src, m, 1); got != "a" {
		t.Errorf("Group 1 = %q, want a", got)
	}
	if got := Group(src, m, 2); got != "" {
		t.Errorf("Group 2 = %q, want empty", got)
	}
	if got := Group(src, m, 7); got != "" {
		t.Errorf("Group 7 = %q, want empty", got)
	}
}

func TestApplyLargeInput(t *testing.T) {
	src := strings.Repeat("x = NULL;\n", 5000)
	out, applied := Apply(src, []Rule{wordRule("null", "NULL", "nullptr")})
	if len(applied) != 5000 || strings.Contains(out, "NULL") {
		t.Errorf("applied %d rewrites, want 5000", len(applied))
	}
}

func TestMaskInCode(t *testing.T) {
	src := `x = "NULL"; // NULL
y = 'N'; /* NULL */ NULL`
	m := NewMask(src)
	tests := []struct {
		sub  string
		nth  int
		want bool
	}{
		{"x", 0, true},
		{"NULL", 0, false}, // in the string
		{"NULL", 1, false}, // in the line comment
		{"N", 2, false},    // in the char literal
		{"NULL", 2, false}, // in the block comment
		{"NULL", 3, true},
		{"y", 0, true},
	}
	for _, tt := range tests {
		pos := -1
		for i := 0; i <= tt.nth; i++ {
			next := strings.Index(src[pos+1:], tt.sub)
			if next < 0 {
				t.Fatalf("occurrence %d of %q not found", tt.nth, tt.sub)
			}
			pos += next + 1
		}
		if got := m.InCode(pos); got != tt.want {
			t.Errorf("InCode(%d) for %q #%d = %v, want %v", pos, tt.sub, tt.nth, got, tt.want)
		}
	}

	var nilMask *Mask
	if !nilMask.InCode(3) {
		t.Error("nil mask should treat everything as code")
	}
}

func TestRegexpRuleSkipsMasked(t *testing.T) {
	src := `p = NULL; puts("NULL"); /* NULL */ q = NULL;`
	rule := &RegexpRule{
		RuleName: "null",
		Re:       regexp.MustCompile(`NULL`),
		Mask:     NewMask(src),
		Build: func(src string, m []int) (Rewrite, bool) {
			return Rewrite{Start: m[0], End: m[1], Text: "nullptr"}, true
		},
	}
	out, applied := Apply(src, []Rule{rule})
	if want := `p = nullptr; puts("NULL"); /* NULL */ q = nullptr;`; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if len(applied) != 2 {
		t.Errorf("applied %d rewrites, want 2", len(applied))
	}
}
