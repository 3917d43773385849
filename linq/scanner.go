package linq

import "fmt"

// eof is the lookahead once the scanner has run past the input. It never
// matches an identifier or structural character.
const eof rune = 0

// Scanner walks a query string one byte at a time.
type Scanner struct {
	input string
	pos   int
	ch    rune
}

// NewScanner creates a scanner positioned at the start of input.
func NewScanner(input string) *Scanner {
	s := &Scanner{input: input}
	s.load()
	return s
}

// load refreshes the lookahead for the current position
func (s *Scanner) load() {
	if s.pos >= len(s.input) {
		s.pos = len(s.input)
		s.ch = eof
		return
	}
	s.ch = rune(s.input[s.pos])
}

func (s *Scanner) advance() {
	s.pos++
	s.load()
}

// Peek returns the lookahead character without consuming it.
func (s *Scanner) Peek() rune {
	return s.ch
}

// Pos returns the byte offset of the lookahead.
func (s *Scanner) Pos() int {
	return s.pos
}

// AtEnd skips whitespace and reports whether the input is exhausted.
func (s *Scanner) AtEnd() bool {
	s.SkipWhitespace()
	return s.pos >= len(s.input)
}

// SkipWhitespace consumes zero or more whitespace characters.
func (s *Scanner) SkipWhitespace() {
	for isSpace(s.ch) {
		s.advance()
	}
}

// AtIdentifier skips whitespace and reports whether an identifier starts at
// the lookahead.
func (s *Scanner) AtIdentifier() bool {
	s.SkipWhitespace()
	return isIdentChar(s.ch)
}

// Identifier skips whitespace and consumes one or more identifier
// characters.
func (s *Scanner) Identifier() (string, error) {
	s.SkipWhitespace()
	start := s.pos
	for isIdentChar(s.ch) {
		s.advance()
	}
	if s.pos == start {
		return "", s.errorf(ErrEmptyIdentifier, "")
	}
	return s.input[start:s.pos], nil
}

// Lookahead skips whitespace and reports whether the next character is ch
// without consuming it.
func (s *Scanner) Lookahead(ch rune) bool {
	s.SkipWhitespace()
	return s.ch == ch && s.ch != eof
}

// Match skips whitespace and consumes ch if it is next.
func (s *Scanner) Match(ch rune) bool {
	if !s.Lookahead(ch) {
		return false
	}
	s.advance()
	return true
}

// Expect is Match that fails when ch is absent.
func (s *Scanner) Expect(ch rune) error {
	if s.Match(ch) {
		return nil
	}
	switch ch {
	case '(':
		return s.errorf(ErrExpectedOpenParen, "")
	case ')':
		return s.errorf(ErrExpectedCloseParen, "")
	default:
		return s.errorf(ErrExpectedChar, "%q", ch)
	}
}

// errorf builds a ParseError at the current position
func (s *Scanner) errorf(kind error, format string, args ...any) *ParseError {
	return s.errorAt(s.pos, kind, format, args...)
}

func (s *Scanner) errorAt(pos int, kind error, format string, args ...any) *ParseError {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}
	return &ParseError{Kind: kind, Pos: pos, Query: s.input, Detail: detail}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isIdentChar(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}
