// Package iocall rewrites console I/O statements between the stdio style
// (printf, scanf) and the iostream style (std::cout, std::cin). Only whole
// statements that fit on one line are touched.
package iocall

import (
	"strings"

	"github.com/raymyers/cconv/pkg/rewrite"
)

// Result is the outcome of one I/O pass.
type Result struct {
	Output  string
	Applied []rewrite.Applied
}

// statementEnd returns the index just past the ';' that ends a statement
// whose last closing paren is at closeAt, or -1 when the statement does not
// end right there on the same line.
func statementEnd(src string, closeAt int) int {
	i := closeAt + 1
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	if i < len(src) && src[i] == ';' {
		return i + 1
	}
	return -1
}

func quote(s string) string {
	return `"` + s + `"`
}

func sameLine(src string, from, to int) bool {
	return !strings.Contains(src[from:to], "\n")
}
