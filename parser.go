// parser.go — recursive-descent parser for MFL.
//
// Grammar (precedence, lowest to highest):
//
//	<prog>    → <val> ; { <val> ; }
//	<val>     → val <id> := <expr> | <expr>
//	<expr>    → <relexpr> { (and | or) <relexpr> }
//	<relexpr> → <addexpr> [ ( < | > | <= | >= | = | != ) <addexpr> ]
//	<addexpr> → <term> { ( + | - ) <term> }
//	<term>    → not <relexpr> | <factor> { ( * | / | mod ) <factor> }
//	<factor>  → <id> | <int> | <real> | true | false | ( <expr> )
//
// Each non-terminal has one method, and every method maintains the same
// invariant: on return, the lookahead token is the first unconsumed token
// of the remaining input. Binary operators at one precedence level are
// left-associative, folded by replacing the accumulated left operand with
// a new BinaryOp node. Relational operators are non-associative ([...] in
// the grammar) and `not` deliberately takes a <relexpr> operand, so
// `not a = b` parses as not(a = b).
//
// Parsing stops at the first error: no partial tree escapes, and every
// operand slot of a returned node is populated.
package mfl

import (
	"errors"
	"fmt"
)

// SyntaxError reports an unexpected token or malformed construct found
// while parsing. Line and Col are 1-based. AtEOF is set when the parse
// failed because the input ended, which interactive callers use to ask for
// more input instead of reporting the error.
type SyntaxError struct {
	Line  int
	Col   int
	Msg   string
	AtEOF bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("SYNTAX ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err is a SyntaxError caused by the input
// ending mid-construct. REPLs use it to keep reading continuation lines.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.AtEOF
}

// Parser builds an MFL syntax tree from a token stream, with one token of
// lookahead held in tok.
type Parser struct {
	lex *Lexer
	tok Token
}

// NewParser creates a parser over an in-memory source string.
func NewParser(src string) *Parser {
	return &Parser{lex: NewLexer(src)}
}

// NewParserFromFile creates a parser over the contents of a source file.
func NewParserFromFile(path string) (*Parser, error) {
	lex, err := NewLexerFromFile(path)
	if err != nil {
		return nil, err
	}
	return &Parser{lex: lex}, nil
}

// Parse consumes the whole token stream and returns the program tree.
// The stream must end cleanly at end of input; anything left over is a
// SyntaxError. On failure no partial tree is returned.
func (p *Parser) Parse() (*Program, error) {
	p.next() // prime the lookahead
	prog, err := p.parseProg()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != EOF {
		return nil, p.errorf("unexpected token %q after end of program", p.tok.Lexeme)
	}
	return prog, nil
}

// ParseFile is a convenience wrapper: parse the file at path.
func ParseFile(path string) (*Program, error) {
	p, err := NewParserFromFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// next advances the lookahead by one token.
func (p *Parser) next() { p.tok = p.lex.NextToken() }

// expect consumes a token of the given type or fails with a SyntaxError.
func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if p.tok.Type != tt {
		return Token{}, p.errorf("expected %s, found %s", what, describe(p.tok))
	}
	tok := p.tok
	p.next()
	return tok, nil
}

// errorf builds a SyntaxError at the lookahead position, marking it as
// incomplete input when the lookahead is EOF.
func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{
		Line:  p.tok.Line,
		Col:   p.tok.Col,
		Msg:   fmt.Sprintf(format, args...),
		AtEOF: p.tok.Type == EOF,
	}
}

// describe renders a token for error messages.
func describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "end of input"
	case ID, INT, REAL:
		return fmt.Sprintf("%s %q", tok.Type, tok.Lexeme)
	default:
		return fmt.Sprintf("%q", tok.Lexeme)
	}
}

// <prog> → <val> ; { <val> ; }
func (p *Parser) parseProg() (*Program, error) {
	prog := &Program{Line: p.tok.Line, Stmts: []Node{}}
	for p.tok.Type != EOF {
		stmt, err := p.parseVal()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMI, "';'"); err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}

// <val> → val <id> := <expr> | <expr>
func (p *Parser) parseVal() (Node, error) {
	if p.tok.Type != VAL {
		return p.parseExpr()
	}
	line := p.tok.Line
	p.next()
	id, err := p.expect(ID, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN, "':='"); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ValueBinding{Line: line, Name: id.Lexeme, RHS: rhs}, nil
}

// <expr> → <relexpr> { (and | or) <relexpr> }
func (p *Parser) parseExpr() (Node, error) {
	left, err := p.parseRelExpr()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == AND || p.tok.Type == OR {
		op := p.tok
		p.next()
		right, err := p.parseRelExpr()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Line: op.Line, Op: op.Type, Left: left, Right: right}
	}
	return left, nil
}

// <relexpr> → <addexpr> [ ( < | > | <= | >= | = | != ) <addexpr> ]
func (p *Parser) parseRelExpr() (Node, error) {
	left, err := p.parseAddExpr()
	if err != nil {
		return nil, err
	}
	switch p.tok.Type {
	case LT, GT, LTE, GTE, EQ, NEQ:
		op := p.tok
		p.next()
		right, err := p.parseAddExpr()
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Line: op.Line, Op: op.Type, Left: left, Right: right}, nil
	}
	return left, nil
}

// <addexpr> → <term> { ( + | - ) <term> }
func (p *Parser) parseAddExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == ADD || p.tok.Type == SUB {
		op := p.tok
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Line: op.Line, Op: op.Type, Left: left, Right: right}
	}
	return left, nil
}

// <term> → not <relexpr> | <factor> { ( * | / | mod ) <factor> }
func (p *Parser) parseTerm() (Node, error) {
	if p.tok.Type == NOT {
		line := p.tok.Line
		p.next()
		operand, err := p.parseRelExpr()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Line: line, Op: NOT, Operand: operand}, nil
	}

	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == MULT || p.tok.Type == DIV || p.tok.Type == MOD {
		op := p.tok
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Line: op.Line, Op: op.Type, Left: left, Right: right}
	}
	return left, nil
}

// <factor> → <id> | <int> | <real> | true | false | ( <expr> )
func (p *Parser) parseFactor() (Node, error) {
	switch p.tok.Type {
	case ID, INT, REAL, TRUE, FALSE:
		tok := p.tok
		p.next()
		return &Leaf{Line: tok.Line, Tok: tok}, nil
	case LPAREN:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf("unexpected token %s in expression", describe(p.tok))
	}
}
