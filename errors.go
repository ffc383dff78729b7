// errors.go — user-facing error wrapping with caret snippets.
//
// WrapErrorWithSource turns the parser's and evaluator's typed errors into
// readable, plain-text snippets that quote the offending source line with
// a caret under the column:
//
//	SYNTAX ERROR at 2:7: expected ':=', found integer "5"
//
//	   1 | val a := 3;
//	   2 | val x 5;
//	     |       ^
//
// SyntaxError carries a real column; RuntimeError carries only a line, so
// its caret lands on column 1. Errors of any other type are returned
// unchanged, so callers can wrap unconditionally.
package mfl

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource augments a SyntaxError or RuntimeError with a
// caret-annotated snippet of src. Other errors pass through untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source label (file name,
// "<repl>", ...) included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *SyntaxError:
		return fmt.Errorf("%s", snippet(src, "SYNTAX ERROR", srcName, e.Line, e.Col, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", srcName, e.Line, 1, e.Msg))
	default:
		return err
	}
}

// snippet builds the header plus up to one line of context on each side,
// with a caret under the 1-based column. Out-of-range coordinates are
// clamped so rendering never fails.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
