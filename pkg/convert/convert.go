// Package convert is the entry point of the translator. It runs the
// include, I/O, allocation and surface passes in the order each direction
// needs them.
package convert

import (
	"github.com/raymyers/cconv/pkg/alloc"
	"github.com/raymyers/cconv/pkg/decls"
	"github.com/raymyers/cconv/pkg/iocall"
	"github.com/raymyers/cconv/pkg/rewrite"
	"github.com/raymyers/cconv/pkg/surface"
)

// Result is a finished translation.
type Result struct {
	Output    string
	Direction Direction
	Rewrites  map[string]int // applied rewrites per rule name
	Guessed   []string       // pointers allocated as int because their type was unknown
}

// Total returns the number of applied rewrites.
func (r Result) Total() int {
	n := 0
	for _, c := range r.Rewrites {
		n += c
	}
	return n
}

// ToCpp translates C source into C++.
func ToCpp(source string) string {
	return Translate(source, ToCPP).Output
}

// ToC translates C++ source into C.
func ToC(source string) string {
	return Translate(source, ToCLang).Output
}

// Translate runs every pass for direction d over source. It never fails:
// text no rule recognizes is copied through unchanged.
func Translate(source string, d Direction) Result {
	res := Result{Direction: d, Rewrites: make(map[string]int)}
	record := func(text string, applied []rewrite.Applied) string {
		for rule, n := range rewrite.Count(applied) {
			res.Rewrites[rule] += n
		}
		return text
	}

	text := source
	if d == ToCLang {
		r := surface.IncludesToC(text)
		text = record(r.Output, r.Applied)
		io := iocall.ToStdio(text)
		text = record(io.Output, io.Applied)
		s := surface.ToC(text)
		text = record(s.Output, s.Applied)
		a := alloc.ToMallocFree(text)
		text = record(a.Output, a.Applied)
	} else {
		r := surface.IncludesToCpp(text)
		text = record(r.Output, r.Applied)
		io := iocall.ToStreams(text)
		text = record(io.Output, io.Applied)
		a := alloc.ToNewDelete(text, decls.Build(text))
		text = record(a.Output, a.Applied)
		res.Guessed = a.Guessed
		s := surface.ToCpp(text)
		text = record(s.Output, s.Applied)
	}
	res.Output = text
	return res
}
