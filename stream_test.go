package mfl

import "testing"

func Test_Stream_Classes(t *testing.T) {
	s := NewCharStream("a1 +")
	want := []CharClass{ClassLetter, ClassDigit, ClassWhitespace, ClassOther, ClassEnd}
	for i, cls := range want {
		if got := s.CurrentClass(); got != cls {
			t.Fatalf("step %d: want class %v, got %v", i, cls, got)
		}
		s.Advance()
	}
}

func Test_Stream_EndIsSticky(t *testing.T) {
	s := NewCharStream("x")
	s.Advance()
	for i := 0; i < 5; i++ {
		if got := s.CurrentChar(); got != EndOfInput {
			t.Fatalf("read %d past end: want sentinel, got %q", i, got)
		}
		if got := s.CurrentClass(); got != ClassEnd {
			t.Fatalf("read %d past end: want ClassEnd, got %v", i, got)
		}
		s.Advance()
	}
}

func Test_Stream_SkipNextAdvance(t *testing.T) {
	s := NewCharStream("ab")
	s.SkipNextAdvance()
	s.Advance() // consumed by the pending flag
	if got := s.CurrentChar(); got != 'a' {
		t.Fatalf("deferred advance moved the cursor: got %q", got)
	}
	s.Advance()
	if got := s.CurrentChar(); got != 'b' {
		t.Fatalf("second advance should move: got %q", got)
	}
}

func Test_Stream_AdvanceToNonBlankClearsPending(t *testing.T) {
	s := NewCharStream("  x y")
	s.SkipNextAdvance()
	s.AdvanceToNonBlank()
	if got := s.CurrentChar(); got != 'x' {
		t.Fatalf("want cursor on 'x', got %q", got)
	}
	// The pending flag must be gone: this advance has to move.
	s.Advance()
	if got := s.CurrentChar(); got != ' ' {
		t.Fatalf("pending flag survived AdvanceToNonBlank: got %q", got)
	}
}

func Test_Stream_LineTracking(t *testing.T) {
	s := NewCharStream("a\nbb\nc")
	wantLines := []int{1, 1, 2, 2, 2, 3}
	for i, want := range wantLines {
		if got := s.Line(); got != want {
			t.Fatalf("rune %d: want line %d, got %d", i, want, got)
		}
		s.Advance()
	}
}

func Test_Stream_EmptySource(t *testing.T) {
	s := NewCharStream("")
	if s.CurrentClass() != ClassEnd || s.CurrentChar() != EndOfInput {
		t.Fatalf("empty source should start at end")
	}
	s.AdvanceToNonBlank() // must not hang or move
	if s.Line() != 1 {
		t.Fatalf("line of empty source: want 1, got %d", s.Line())
	}
}
