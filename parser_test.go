package mfl

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kr/pretty"
)

// ignorePos drops line/column bookkeeping so expected trees can be written
// by hand.
var ignorePos = []cmp.Option{
	cmpopts.IgnoreFields(Program{}, "Line"),
	cmpopts.IgnoreFields(ValueBinding{}, "Line"),
	cmpopts.IgnoreFields(BinaryOp{}, "Line"),
	cmpopts.IgnoreFields(UnaryOp{}, "Line"),
	cmpopts.IgnoreFields(Leaf{}, "Line"),
	cmpopts.IgnoreFields(Token{}, "Line", "Col"),
}

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	return prog
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	prog, err := NewParser(src).Parse()
	if err == nil {
		t.Fatalf("expected parse error for %q, got tree:\n%s", src, pretty.Sprint(prog))
	}
	if prog != nil {
		t.Fatalf("partial tree returned alongside error for %q", src)
	}
	return err
}

func wantTree(t *testing.T, src string, want *Program) {
	t.Helper()
	got := mustParse(t, src)
	if diff := cmp.Diff(want, got, ignorePos...); diff != "" {
		t.Fatalf("tree mismatch for %q (-want +got):\n%s\ngot tree:\n%s", src, diff, pretty.Sprint(got))
	}
}

func leaf(tt TokenType, lexeme string) *Leaf {
	return &Leaf{Tok: Token{Type: tt, Lexeme: lexeme}}
}

func Test_Parser_Deterministic(t *testing.T) {
	src := "val a := 3; val b := 4.0; a + b; a > 2 and not false;"
	first := mustParse(t, src)
	second := mustParse(t, src)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parsing twice differs:\n%s", diff)
	}
}

func Test_Parser_EmptyProgram(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\n"} {
		prog := mustParse(t, src)
		if prog.Stmts == nil {
			t.Fatalf("Stmts must not be nil for %q", src)
		}
		if len(prog.Stmts) != 0 {
			t.Fatalf("want empty program for %q, got %d statements", src, len(prog.Stmts))
		}
	}
}

func Test_Parser_ValBinding(t *testing.T) {
	wantTree(t, "val x := 1 + 2;", &Program{Stmts: []Node{
		&ValueBinding{Name: "x", RHS: &BinaryOp{
			Op:    ADD,
			Left:  leaf(INT, "1"),
			Right: leaf(INT, "2"),
		}},
	}})
}

func Test_Parser_LeftAssociative(t *testing.T) {
	// 10 - 3 - 2 folds as (10 - 3) - 2.
	wantTree(t, "10 - 3 - 2;", &Program{Stmts: []Node{
		&BinaryOp{
			Op: SUB,
			Left: &BinaryOp{
				Op:    SUB,
				Left:  leaf(INT, "10"),
				Right: leaf(INT, "3"),
			},
			Right: leaf(INT, "2"),
		},
	}})
}

func Test_Parser_Precedence(t *testing.T) {
	wantTree(t, "1 + 2 * 3;", &Program{Stmts: []Node{
		&BinaryOp{
			Op:   ADD,
			Left: leaf(INT, "1"),
			Right: &BinaryOp{
				Op:    MULT,
				Left:  leaf(INT, "2"),
				Right: leaf(INT, "3"),
			},
		},
	}})

	// Relationals bind tighter than and/or, looser than arithmetic.
	wantTree(t, "1 + 1 < 3 and true;", &Program{Stmts: []Node{
		&BinaryOp{
			Op: AND,
			Left: &BinaryOp{
				Op: LT,
				Left: &BinaryOp{
					Op:    ADD,
					Left:  leaf(INT, "1"),
					Right: leaf(INT, "1"),
				},
				Right: leaf(INT, "3"),
			},
			Right: leaf(TRUE, "true"),
		},
	}})
}

func Test_Parser_Parens(t *testing.T) {
	wantTree(t, "(1 + 2) * 3;", &Program{Stmts: []Node{
		&BinaryOp{
			Op: MULT,
			Left: &BinaryOp{
				Op:    ADD,
				Left:  leaf(INT, "1"),
				Right: leaf(INT, "2"),
			},
			Right: leaf(INT, "3"),
		},
	}})
}

func Test_Parser_NotBindsRelExpr(t *testing.T) {
	// not a = b parses as not (a = b).
	wantTree(t, "not 1 = 1;", &Program{Stmts: []Node{
		&UnaryOp{Op: NOT, Operand: &BinaryOp{
			Op:    EQ,
			Left:  leaf(INT, "1"),
			Right: leaf(INT, "1"),
		}},
	}})
}

func Test_Parser_MultipleStatementsInOrder(t *testing.T) {
	prog := mustParse(t, "val a := 1; a; a + 1;")
	if len(prog.Stmts) != 3 {
		t.Fatalf("want 3 statements, got %d", len(prog.Stmts))
	}
	if _, ok := prog.Stmts[0].(*ValueBinding); !ok {
		t.Fatalf("statement 0: want binding, got %T", prog.Stmts[0])
	}
	if _, ok := prog.Stmts[1].(*Leaf); !ok {
		t.Fatalf("statement 1: want leaf, got %T", prog.Stmts[1])
	}
	if _, ok := prog.Stmts[2].(*BinaryOp); !ok {
		t.Fatalf("statement 2: want binary op, got %T", prog.Stmts[2])
	}
}

func Test_Parser_MissingAssign(t *testing.T) {
	err := parseErr(t, "val x 5;")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want *SyntaxError, got %T: %v", err, err)
	}
	if se.AtEOF {
		t.Fatalf("malformed binding is not incomplete input: %v", se)
	}
	if se.Line != 1 {
		t.Fatalf("want error on line 1, got %d", se.Line)
	}
}

func Test_Parser_MissingSemicolon(t *testing.T) {
	err := parseErr(t, "1 + 2")
	if !IsIncomplete(err) {
		t.Fatalf("missing ';' at end of input should read as incomplete, got %v", err)
	}
}

func Test_Parser_IncompleteInput(t *testing.T) {
	for _, src := range []string{"val x :=", "(1 + 2", "1 +", "not"} {
		err := parseErr(t, src)
		if !IsIncomplete(err) {
			t.Fatalf("%q should be incomplete, got %v", src, err)
		}
	}
	for _, src := range []string{"val x 5;", "1 + * 2;", ");"} {
		err := parseErr(t, src)
		if IsIncomplete(err) {
			t.Fatalf("%q is malformed, not incomplete: %v", src, err)
		}
	}
}

func Test_Parser_TrailingGarbage(t *testing.T) {
	parseErr(t, "1; )")
}

func Test_Parser_UnknownTokenRejected(t *testing.T) {
	parseErr(t, "x : 5;")
	parseErr(t, "1 ? 2;")
}

func Test_Parser_RelopNonAssociative(t *testing.T) {
	// A second relational operator cannot extend a relexpr: 1 < 2 < 3 has
	// nowhere to go after the first comparison.
	parseErr(t, "1 < 2 < 3;")
}
