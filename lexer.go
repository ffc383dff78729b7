// lexer.go — on-demand tokenizer for MFL.
//
// The lexer pulls runes from a CharStream and produces one Token per
// NextToken call. Identifiers and numbers are scanned with maximal munch:
// the scan consumes runes until one cannot extend the token, then defers
// one stream advance (see stream.go) so the terminating rune is seen again
// by the next call. Symbolic tokens are resolved by direct dispatch; the
// two-character operators ":=", "!=", ">=" and "<=" need one rune of
// lookahead past the first symbol. A ":" or "!" that is not followed by "="
// becomes an UNKNOWN token rather than being dropped.
//
// Token lexemes are kept verbatim; numeric conversion happens in the
// evaluator, not here. Once the input is exhausted, NextToken returns an
// EOF token forever.
package mfl

import (
	"fmt"
	"os"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	UNKNOWN

	// Literals & identifiers
	ID
	INT
	REAL
	TRUE
	FALSE

	// Keywords
	VAL
	NOT
	AND
	OR
	MOD

	// Operators
	ADD
	SUB
	MULT
	DIV
	ASSIGN // ":="
	EQ     // "="
	NEQ    // "!="
	LT
	GT
	LTE
	GTE

	// Punctuation
	LPAREN
	RPAREN
	SEMI
)

var tokenNames = map[TokenType]string{
	EOF:     "end of input",
	UNKNOWN: "unknown",
	ID:      "identifier",
	INT:     "integer",
	REAL:    "real",
	TRUE:    "true",
	FALSE:   "false",
	VAL:     "val",
	NOT:     "not",
	AND:     "and",
	OR:      "or",
	MOD:     "mod",
	ADD:     "+",
	SUB:     "-",
	MULT:    "*",
	DIV:     "/",
	ASSIGN:  ":=",
	EQ:      "=",
	NEQ:     "!=",
	LT:      "<",
	GT:      ">",
	LTE:     "<=",
	GTE:     ">=",
	LPAREN:  "(",
	RPAREN:  ")",
	SEMI:    ";",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is an immutable (kind, lexeme) pair. Line and Col record where the
// token started; they are informational and feed error snippets.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"val":   VAL,
	"not":   NOT,
	"and":   AND,
	"or":    OR,
	"mod":   MOD,
	"true":  TRUE,
	"false": FALSE,
}

// Lexer scans an MFL source string into tokens, one per NextToken call.
type Lexer struct {
	stream *CharStream
}

// NewLexer creates a lexer over an in-memory source string.
func NewLexer(src string) *Lexer {
	return &Lexer{stream: NewCharStream(src)}
}

// NewLexerFromFile creates a lexer over the contents of a source file.
func NewLexerFromFile(path string) (*Lexer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewLexer(string(b)), nil
}

// Line reports the current 1-based source line.
func (l *Lexer) Line() int { return l.stream.Line() }

// NextToken scans and returns the next token. Calling it past the end of
// input is safe and keeps returning EOF tokens.
func (l *Lexer) NextToken() Token {
	s := l.stream
	s.AdvanceToNonBlank()
	line, col := s.Line(), s.Col()

	switch s.CurrentClass() {
	// Identifier or keyword: [A-Za-z][A-Za-z0-9]*
	case ClassLetter:
		var b strings.Builder
		b.WriteRune(s.CurrentChar())
		s.Advance()
		for s.CurrentClass() == ClassLetter || s.CurrentClass() == ClassDigit {
			b.WriteRune(s.CurrentChar())
			s.Advance()
		}
		s.SkipNextAdvance() // the rune just seen starts the next token
		word := b.String()
		if tt, ok := keywords[word]; ok {
			return Token{Type: tt, Lexeme: word, Line: line, Col: col}
		}
		return Token{Type: ID, Lexeme: word, Line: line, Col: col}

	// Integer or real: [0-9]+ optionally followed by '.' [0-9]*
	case ClassDigit:
		var b strings.Builder
		b.WriteRune(s.CurrentChar())
		s.Advance()
		for s.CurrentClass() == ClassDigit {
			b.WriteRune(s.CurrentChar())
			s.Advance()
		}
		if s.CurrentChar() == '.' {
			b.WriteRune('.')
			s.Advance()
			for s.CurrentClass() == ClassDigit {
				b.WriteRune(s.CurrentChar())
				s.Advance()
			}
			s.SkipNextAdvance()
			return Token{Type: REAL, Lexeme: b.String(), Line: line, Col: col}
		}
		s.SkipNextAdvance()
		return Token{Type: INT, Lexeme: b.String(), Line: line, Col: col}

	case ClassOther:
		return l.lookupSymbol(line, col)

	case ClassEnd:
		return Token{Type: EOF, Line: line, Col: col}

	default:
		return Token{Type: UNKNOWN, Line: line, Col: col}
	}
}

// lookupSymbol resolves tokens that start with a non-alphanumeric rune.
func (l *Lexer) lookupSymbol(line, col int) Token {
	s := l.stream

	mk := func(tt TokenType, lexeme string) Token {
		return Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}
	}

	switch ch := s.CurrentChar(); ch {
	case '.':
		// Real literal with a bare leading dot: .5
		s.Advance()
		if s.CurrentClass() != ClassDigit {
			s.SkipNextAdvance()
			return mk(UNKNOWN, ".")
		}
		var b strings.Builder
		b.WriteRune('.')
		for s.CurrentClass() == ClassDigit {
			b.WriteRune(s.CurrentChar())
			s.Advance()
		}
		s.SkipNextAdvance()
		return mk(REAL, b.String())

	case '+':
		s.Advance()
		return mk(ADD, "+")
	case '-':
		s.Advance()
		return mk(SUB, "-")
	case '*':
		s.Advance()
		return mk(MULT, "*")
	case '/':
		s.Advance()
		return mk(DIV, "/")
	case '(':
		s.Advance()
		return mk(LPAREN, "(")
	case ')':
		s.Advance()
		return mk(RPAREN, ")")
	case ';':
		s.Advance()
		return mk(SEMI, ";")
	case '=':
		s.Advance()
		return mk(EQ, "=")

	case ':':
		s.Advance()
		if s.CurrentChar() == '=' {
			s.Advance()
			return mk(ASSIGN, ":=")
		}
		s.SkipNextAdvance()
		return mk(UNKNOWN, ":")

	case '!':
		s.Advance()
		if s.CurrentChar() == '=' {
			s.Advance()
			return mk(NEQ, "!=")
		}
		s.SkipNextAdvance()
		return mk(UNKNOWN, "!")

	case '>':
		s.Advance()
		if s.CurrentChar() == '=' {
			s.Advance()
			return mk(GTE, ">=")
		}
		s.SkipNextAdvance()
		return mk(GT, ">")

	case '<':
		s.Advance()
		if s.CurrentChar() == '=' {
			s.Advance()
			return mk(LTE, "<=")
		}
		s.SkipNextAdvance()
		return mk(LT, "<")

	default:
		s.Advance()
		return mk(UNKNOWN, string(ch))
	}
}
