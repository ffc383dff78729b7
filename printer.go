// printer.go — output formatting for values and syntax trees.
//
// FormatValue implements MFL's printing rules: integers print as decimal
// digits, a real with an integral value prints without a fractional part,
// any other real prints in the default floating decimal form, and
// booleans print as true/false. FormatTree renders the indented debug
// view of a syntax tree used by the `mfl ast` subcommand.
package mfl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a runtime value the way program output prints it.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTReal:
		f := v.Data.(float64)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			// Integral-valued reals print without a fractional part.
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	default:
		return "<invalid>"
	}
}

// FormatTree renders an indented, parenthesized view of the tree:
//
//	Prog(
//	  Val[a](
//	    Leaf[3]
//	  )
//	  BinOp[+](
//	    Leaf[a]
//	    Leaf[b]
//	  )
//	)
func FormatTree(n Node) string {
	var b strings.Builder
	writeTree(&b, n, 0)
	return b.String()
}

func writeTree(b *strings.Builder, n Node, indent int) {
	pad := strings.Repeat(" ", indent)
	switch n := n.(type) {
	case *Program:
		fmt.Fprintf(b, "%sProg(\n", pad)
		for _, stmt := range n.Stmts {
			writeTree(b, stmt, indent+2)
		}
		fmt.Fprintf(b, "%s)\n", pad)
	case *ValueBinding:
		fmt.Fprintf(b, "%sVal[%s](\n", pad, n.Name)
		writeTree(b, n.RHS, indent+2)
		fmt.Fprintf(b, "%s)\n", pad)
	case *BinaryOp:
		fmt.Fprintf(b, "%sBinOp[%s](\n", pad, n.Op)
		writeTree(b, n.Left, indent+2)
		writeTree(b, n.Right, indent+2)
		fmt.Fprintf(b, "%s)\n", pad)
	case *UnaryOp:
		fmt.Fprintf(b, "%sUnaryOp[%s](\n", pad, n.Op)
		writeTree(b, n.Operand, indent+2)
		fmt.Fprintf(b, "%s)\n", pad)
	case *Leaf:
		fmt.Fprintf(b, "%sLeaf[%s]\n", pad, n.Tok.Lexeme)
	}
}
