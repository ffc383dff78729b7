// ast.go — syntax-tree node definitions for MFL.
//
// Nodes form a closed set of variants behind the Node interface: Program,
// ValueBinding, BinaryOp, UnaryOp and Leaf. The marker method keeps the set
// closed to this package, so the evaluator's type switch is exhaustive and
// nothing is discovered at runtime by name. Every node records the 1-based
// source line it was built from; the line never changes after construction
// and is used only for error reporting.
//
// Ownership is strictly downward: a node owns its children, the tree is
// acyclic and there are no parent links.
package mfl

// Node is the interface satisfied by every MFL syntax-tree node.
type Node interface {
	node()
}

// Program is the root node: an ordered sequence of statements. Statement
// order is source order and is semantically significant — evaluation and
// printing follow it. Stmts is never nil, only possibly empty.
type Program struct {
	Line  int
	Stmts []Node
}

// ValueBinding represents `val name := rhs`.
type ValueBinding struct {
	Line int
	Name string
	RHS  Node
}

// BinaryOp applies Op to two operands, left evaluated before right. Op is
// one of ADD, SUB, MULT, DIV, MOD, AND, OR, LT, GT, LTE, GTE, EQ or NEQ.
type BinaryOp struct {
	Line  int
	Op    TokenType
	Left  Node
	Right Node
}

// UnaryOp applies Op (only NOT) to a single operand.
type UnaryOp struct {
	Line    int
	Op      TokenType
	Operand Node
}

// Leaf wraps a single literal-bearing token: an identifier, an integer or
// real literal, or one of the boolean literals.
type Leaf struct {
	Line int
	Tok  Token
}

func (*Program) node()      {}
func (*ValueBinding) node() {}
func (*BinaryOp) node()     {}
func (*UnaryOp) node()      {}
func (*Leaf) node()         {}
