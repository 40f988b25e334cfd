package convert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Direction selects the dialect a translation produces.
type Direction int

const (
	ToCPP   Direction = iota // C to C++
	ToCLang                  // C++ to C
)

// ErrUnknownDirection is returned for a direction name that is not
// recognized.
var ErrUnknownDirection = errors.New("unknown direction")

func (d Direction) String() string {
	if d == ToCLang {
		return "c"
	}
	return "cpp"
}

// Ext is the file extension of the produced dialect.
func (d Direction) Ext() string {
	return "." + d.String()
}

// ParseDirection accepts the target dialect ("cpp", "c++", "c") or the
// form names used by the web front end ("c2cpp", "cpp2c").
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpp", "c++", "cxx", "c2cpp":
		return ToCPP, nil
	case "c", "cpp2c":
		return ToCLang, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

var cppExts = map[string]bool{
	".cc": true, ".cpp": true, ".cxx": true, ".c++": true,
	".hpp": true, ".hh": true, ".hxx": true,
}

// DirectionFor picks a direction from an explicit target, then from the
// output file's extension, then from the input file's extension. With
// nothing to go on it translates to C.
func DirectionFor(target, input, output string) (Direction, error) {
	if target != "" {
		return ParseDirection(target)
	}
	switch ext := strings.ToLower(filepath.Ext(output)); {
	case ext == ".c":
		return ToCLang, nil
	case cppExts[ext]:
		return ToCPP, nil
	}
	if strings.ToLower(filepath.Ext(input)) == ".c" {
		return ToCPP, nil
	}
	return ToCLang, nil
}
