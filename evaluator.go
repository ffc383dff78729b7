// evaluator.go — tree-walking evaluator for MFL.
//
// The evaluator executes a parsed Program directly against a single flat
// environment (name → Value). There is no lexical scoping: the flat global
// table is a deliberate language-design choice, and a ValueBinding simply
// inserts or overwrites its name. Top-level statements run in source
// order; every statement that is not a binding has its result written to
// the evaluator's output sink, one line each.
//
// Values are a tagged union over int64, float64 and bool. Arithmetic
// promotes to real when either operand is real and stays in integer
// arithmetic otherwise; `mod` is integer-only; `and`/`or` take booleans
// and always evaluate both operands (no short-circuit); relational
// operators compare numbers under the same promotion rule and yield a
// boolean. Any type mismatch, undefined identifier, or integer division
// by zero stops the run with a RuntimeError — there is no per-statement
// isolation.
package mfl

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTInt  ValueTag = iota // int64
	VTReal                 // float64
	VTBool                 // bool
)

func (t ValueTag) String() string {
	switch t {
	case VTInt:
		return "integer"
	case VTReal:
		return "real"
	case VTBool:
		return "boolean"
	default:
		return "invalid"
	}
}

// Value is the runtime carrier for MFL results. The tag determines which
// Go type Data holds: int64 for VTInt, float64 for VTReal, bool for
// VTBool. Values are copied, never shared or mutated in place.
type Value struct {
	Tag  ValueTag
	Data any
}

// Primitive constructors.
func Int(n int64) Value    { return Value{Tag: VTInt, Data: n} }
func Real(f float64) Value { return Value{Tag: VTReal, Data: f} }
func Bool(b bool) Value    { return Value{Tag: VTBool, Data: b} }

// String renders a debug representation; program output goes through
// FormatValue (printer.go) instead.
func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.Tag, v.Data)
}

// RuntimeError reports a failure during evaluation: a type mismatch, an
// undefined identifier, or an invalid operand combination. Line is
// 1-based and best effort.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at line %d: %s", e.Line, e.Msg)
}

// Env is the flat global environment: one mutable name → Value table,
// owned by a single evaluator for the duration of a run. Only evaluating
// a ValueBinding mutates it.
type Env struct {
	table map[string]Value
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{table: make(map[string]Value)}
}

// Define binds name to v, overwriting any prior binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get retrieves the binding for name.
func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.table[name]
	return v, ok
}

// Evaluator walks a syntax tree against its environment and writes the
// printable results to Out.
type Evaluator struct {
	env *Env
	out io.Writer
}

// NewEvaluator creates an evaluator with an empty environment writing to
// out (os.Stdout when out is nil). The environment persists across Run
// calls, which is what REPL callers rely on; batch callers use a fresh
// evaluator per program.
func NewEvaluator(out io.Writer) *Evaluator {
	if out == nil {
		out = os.Stdout
	}
	return &Evaluator{env: NewEnv(), out: out}
}

// Run evaluates every statement of prog in source order. Statements that
// are not value bindings print their result, one line each. The first
// RuntimeError aborts the run; output already written stays written.
func (ev *Evaluator) Run(prog *Program) error {
	for _, stmt := range prog.Stmts {
		v, err := ev.eval(stmt)
		if err != nil {
			return err
		}
		if _, bound := stmt.(*ValueBinding); !bound {
			fmt.Fprintln(ev.out, FormatValue(v))
		}
	}
	return nil
}

// eval dispatches over the closed node set.
func (ev *Evaluator) eval(n Node) (Value, error) {
	switch n := n.(type) {
	case *ValueBinding:
		v, err := ev.eval(n.RHS)
		if err != nil {
			return Value{}, err
		}
		ev.env.Define(n.Name, v)
		return v, nil

	case *BinaryOp:
		left, err := ev.eval(n.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := ev.eval(n.Right)
		if err != nil {
			return Value{}, err
		}
		return ev.applyBinary(n, left, right)

	case *UnaryOp:
		operand, err := ev.eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		if n.Op != NOT {
			return Value{}, ev.errorf(n.Line, "unsupported unary operator %s", n.Op)
		}
		if operand.Tag != VTBool {
			return Value{}, ev.errorf(n.Line, "operand of 'not' must be boolean, got %s", operand.Tag)
		}
		return Bool(!operand.Data.(bool)), nil

	case *Leaf:
		return ev.evalLeaf(n)

	case *Program:
		// Programs only appear at the root and are handled by Run.
		return Value{}, ev.errorf(n.Line, "nested program node")

	default:
		return Value{}, &RuntimeError{Msg: fmt.Sprintf("unhandled node %T", n)}
	}
}

// evalLeaf converts a literal token to a Value or resolves an identifier.
func (ev *Evaluator) evalLeaf(n *Leaf) (Value, error) {
	switch n.Tok.Type {
	case INT:
		i, err := strconv.ParseInt(n.Tok.Lexeme, 10, 64)
		if err != nil {
			return Value{}, ev.errorf(n.Line, "invalid integer literal %q", n.Tok.Lexeme)
		}
		return Int(i), nil
	case REAL:
		f, err := strconv.ParseFloat(n.Tok.Lexeme, 64)
		if err != nil {
			return Value{}, ev.errorf(n.Line, "invalid real literal %q", n.Tok.Lexeme)
		}
		return Real(f), nil
	case TRUE:
		return Bool(true), nil
	case FALSE:
		return Bool(false), nil
	case ID:
		v, ok := ev.env.Get(n.Tok.Lexeme)
		if !ok {
			return Value{}, ev.errorf(n.Line, "undefined identifier: %s", n.Tok.Lexeme)
		}
		return v, nil
	default:
		return Value{}, ev.errorf(n.Line, "unexpected literal token %s", n.Tok.Type)
	}
}

// applyBinary applies the operator of n to two already-evaluated operands.
func (ev *Evaluator) applyBinary(n *BinaryOp, left, right Value) (Value, error) {
	switch n.Op {
	case ADD, SUB, MULT, DIV:
		return ev.arith(n, left, right)

	case MOD:
		if left.Tag != VTInt || right.Tag != VTInt {
			return Value{}, ev.errorf(n.Line, "operands of 'mod' must be integers, got %s and %s", left.Tag, right.Tag)
		}
		r := right.Data.(int64)
		if r == 0 {
			return Value{}, ev.errorf(n.Line, "mod by zero")
		}
		return Int(left.Data.(int64) % r), nil

	case AND, OR:
		// Both operands were already evaluated: MFL does not short-circuit.
		if left.Tag != VTBool || right.Tag != VTBool {
			return Value{}, ev.errorf(n.Line, "operands of %q must be booleans, got %s and %s", n.Op.String(), left.Tag, right.Tag)
		}
		l, r := left.Data.(bool), right.Data.(bool)
		if n.Op == AND {
			return Bool(l && r), nil
		}
		return Bool(l || r), nil

	case LT, GT, LTE, GTE, EQ, NEQ:
		return ev.compare(n, left, right)

	default:
		return Value{}, ev.errorf(n.Line, "unsupported binary operator %s", n.Op)
	}
}

// arith computes + - * / with numeric promotion: real if either operand
// is real, integer arithmetic otherwise.
func (ev *Evaluator) arith(n *BinaryOp, left, right Value) (Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return Value{}, ev.errorf(n.Line, "operands of %q must be numeric, got %s and %s", n.Op.String(), left.Tag, right.Tag)
	}

	if left.Tag == VTReal || right.Tag == VTReal {
		l, r := asReal(left), asReal(right)
		switch n.Op {
		case ADD:
			return Real(l + r), nil
		case SUB:
			return Real(l - r), nil
		case MULT:
			return Real(l * r), nil
		default:
			return Real(l / r), nil
		}
	}

	l, r := left.Data.(int64), right.Data.(int64)
	switch n.Op {
	case ADD:
		return Int(l + r), nil
	case SUB:
		return Int(l - r), nil
	case MULT:
		return Int(l * r), nil
	default:
		if r == 0 {
			return Value{}, ev.errorf(n.Line, "division by zero")
		}
		return Int(l / r), nil
	}
}

// compare evaluates a relational operator over two numeric operands under
// the same promotion rule as arith, yielding a boolean.
func (ev *Evaluator) compare(n *BinaryOp, left, right Value) (Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return Value{}, ev.errorf(n.Line, "operands of %q must be numeric, got %s and %s", n.Op.String(), left.Tag, right.Tag)
	}

	if left.Tag == VTInt && right.Tag == VTInt {
		l, r := left.Data.(int64), right.Data.(int64)
		return Bool(intCompare(n.Op, l, r)), nil
	}
	l, r := asReal(left), asReal(right)
	return Bool(realCompare(n.Op, l, r)), nil
}

func intCompare(op TokenType, l, r int64) bool {
	switch op {
	case LT:
		return l < r
	case GT:
		return l > r
	case LTE:
		return l <= r
	case GTE:
		return l >= r
	case EQ:
		return l == r
	default:
		return l != r
	}
}

func realCompare(op TokenType, l, r float64) bool {
	switch op {
	case LT:
		return l < r
	case GT:
		return l > r
	case LTE:
		return l <= r
	case GTE:
		return l >= r
	case EQ:
		return l == r
	default:
		return l != r
	}
}

func isNumeric(v Value) bool { return v.Tag == VTInt || v.Tag == VTReal }

// asReal widens a numeric Value to float64.
func asReal(v Value) float64 {
	if v.Tag == VTInt {
		return float64(v.Data.(int64))
	}
	return v.Data.(float64)
}

func (ev *Evaluator) errorf(line int, format string, args ...any) error {
	return &RuntimeError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
