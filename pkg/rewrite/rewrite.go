// Package rewrite applies an ordered list of rewrite rules to source text in
// one left-to-right pass. Rules always match against the original text, so
// a rule never sees another rule's output.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/raymyers/cconv/pkg/lexer"
)

// Rewrite replaces src[Start:End] with Text.
type Rewrite struct {
	Start int
	End   int
	Text  string
	Value any // rule specific detail, e.g. the allocation kind recorded
}

// Rule finds the leftmost place at or after from where it applies.
type Rule interface {
	Name() string
	TryMatch(src string, from int) (Rewrite, bool)
}

// Applied is a rewrite together with the name of the rule that produced it.
type Applied struct {
	Rule string
	Rewrite
}

type candidate struct {
	rw       Rewrite
	ok       bool
	searched bool
}

// Apply runs rules over src. The match starting earliest wins; when two
// rules match at the same offset the one listed first wins. Text between
// matches is copied unchanged.
func Apply(src string, rules []Rule) (string, []Applied) {
	var (
		sb      strings.Builder
		applied []Applied
		pos     int
	)
	cands := make([]candidate, len(rules))
	for {
		best := -1
		for i, r := range rules {
			c := &cands[i]
			if !c.searched || (c.ok && c.rw.Start < pos) {
				c.rw, c.ok = r.TryMatch(src, pos)
				c.searched = true
				if c.ok && (c.rw.Start < pos || c.rw.End <= c.rw.Start || c.rw.End > len(src)) {
					c.ok = false
				}
			}
			if c.ok && (best < 0 || c.rw.Start < cands[best].rw.Start) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		rw := cands[best].rw
		sb.WriteString(src[pos:rw.Start])
		sb.WriteString(rw.Text)
		applied = append(applied, Applied{Rule: rules[best].Name(), Rewrite: rw})
		pos = rw.End
	}
	if len(applied) == 0 {
		return src, nil
	}
	sb.WriteString(src[pos:])
	return sb.String(), applied
}

// Count tallies applied rewrites per rule name.
func Count(applied []Applied) map[string]int {
	counts := make(map[string]int)
	for _, a := range applied {
		counts[a.Rule]++
	}
	return counts
}

// RegexpRule is a Rule driven by a regular expression. Build receives the
// absolute submatch offsets of a candidate and may reject it, in which case
// the search resumes one byte after the candidate's start. A candidate that
// begins inside an identifier, or inside a literal or comment of Mask, is
// never offered to Build.
type RegexpRule struct {
	RuleName string
	Re       *regexp.Regexp
	Mask     *Mask
	Build    func(src string, m []int) (Rewrite, bool)
}

func (r *RegexpRule) Name() string {
	return r.RuleName
}

func (r *RegexpRule) TryMatch(src string, from int) (Rewrite, bool) {
	for from < len(src) {
		loc := r.Re.FindStringSubmatchIndex(src[from:])
		if loc == nil {
			return Rewrite{}, false
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += from
			}
		}
		start := loc[0]
		if start >= len(src) {
			return Rewrite{}, false
		}
		if r.Mask.InCode(start) && (!lexer.IsIdentChar(src[start]) || lexer.WordStart(src, start)) {
			if rw, ok := r.Build(src, loc); ok {
				return rw, true
			}
		}
		from = start + 1
	}
	return Rewrite{}, false
}

// Group returns submatch i of m in src, or "" when it did not participate.
func Group(src string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return src[m[2*i]:m[2*i+1]]
}
