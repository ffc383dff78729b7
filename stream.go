// stream.go — character-level source stream feeding the MFL lexer.
//
// The stream wraps the raw source text and exposes exactly what the lexer
// needs: the rune under the cursor, its class, and a one-rune Advance that
// tracks the 1-based line (and, best-effort, column) of the cursor. Reading
// past the end of input is defined: CurrentChar returns the EndOfInput
// sentinel and CurrentClass returns ClassEnd forever.
//
// The lexer scans maximal-munch tokens by consuming until it sees a rune
// that cannot extend the current token. That terminating rune belongs to
// the *next* token, so after finishing a scan the lexer calls
// SkipNextAdvance, which turns exactly one future Advance into a no-op.
// AdvanceToNonBlank clears any pending skip before it moves, so a deferred
// advance can never swallow the first rune of a token.
package mfl

import "unicode"

// CharClass classifies the rune under the cursor.
type CharClass int

const (
	ClassWhitespace CharClass = iota
	ClassLetter
	ClassDigit
	ClassOther
	ClassEnd
)

func (c CharClass) String() string {
	switch c {
	case ClassWhitespace:
		return "whitespace"
	case ClassLetter:
		return "letter"
	case ClassDigit:
		return "digit"
	case ClassOther:
		return "other"
	case ClassEnd:
		return "end"
	default:
		return "invalid"
	}
}

// EndOfInput is the sentinel rune returned by CurrentChar once the source
// is exhausted.
const EndOfInput = '\x00'

// CharStream yields source text one rune at a time.
type CharStream struct {
	src         []rune
	idx         int
	line        int
	col         int
	skipAdvance bool // one pending Advance becomes a no-op
}

// NewCharStream wraps an in-memory source string.
func NewCharStream(src string) *CharStream {
	return &CharStream{src: []rune(src), line: 1, col: 1}
}

// Line reports the 1-based line of the cursor.
func (s *CharStream) Line() int { return s.line }

// Col reports the 1-based column of the cursor. Informational only; used
// for error snippets.
func (s *CharStream) Col() int { return s.col }

// CurrentChar returns the rune under the cursor, or EndOfInput once the
// source is exhausted.
func (s *CharStream) CurrentChar() rune {
	if s.idx >= len(s.src) {
		return EndOfInput
	}
	return s.src[s.idx]
}

// CurrentClass returns the class of the rune under the cursor.
func (s *CharStream) CurrentClass() CharClass {
	if s.idx >= len(s.src) {
		return ClassEnd
	}
	c := s.src[s.idx]
	switch {
	case unicode.IsSpace(c):
		return ClassWhitespace
	case unicode.IsLetter(c):
		return ClassLetter
	case unicode.IsDigit(c):
		return ClassDigit
	default:
		return ClassOther
	}
}

// Advance moves the cursor forward one rune, unless SkipNextAdvance armed
// the pending flag, in which case the call consumes the flag instead of
// moving. Advancing at the end of input does nothing.
func (s *CharStream) Advance() {
	if s.skipAdvance {
		s.skipAdvance = false
		return
	}
	if s.idx >= len(s.src) {
		return
	}
	if s.src[s.idx] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.idx++
}

// SkipNextAdvance marks the rune under the cursor as belonging to the next
// token: exactly one future Advance becomes a no-op.
func (s *CharStream) SkipNextAdvance() { s.skipAdvance = true }

// AdvanceToNonBlank clears any pending skip and moves the cursor to the
// next non-whitespace rune (or the end of input).
func (s *CharStream) AdvanceToNonBlank() {
	s.skipAdvance = false
	for s.CurrentClass() == ClassWhitespace {
		s.Advance()
	}
}
