package linq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerIdentifier(t *testing.T) {
	s := NewScanner("  select_All(x)")

	name, err := s.Identifier()
	require.NoError(t, err)
	assert.Equal(t, "select_All", name)
	assert.Equal(t, '(', s.Peek())
	assert.Equal(t, 12, s.Pos())
}

func TestScannerEmptyIdentifier(t *testing.T) {
	s := NewScanner("  (x)")

	_, err := s.Identifier()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyIdentifier))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Pos)
}

func TestScannerMatchAndExpect(t *testing.T) {
	s := NewScanner(" ( a , b ) ")

	assert.False(t, s.Match(')'))
	assert.True(t, s.Match('('))
	assert.True(t, s.AtIdentifier())
	_, err := s.Identifier()
	require.NoError(t, err)
	assert.True(t, s.Lookahead(','))
	assert.True(t, s.Match(','))
	_, err = s.Identifier()
	require.NoError(t, err)
	require.NoError(t, s.Expect(')'))
	assert.True(t, s.AtEnd())
}

func TestScannerExpectKinds(t *testing.T) {
	tests := []struct {
		ch   rune
		want error
	}{
		{'(', ErrExpectedOpenParen},
		{')', ErrExpectedCloseParen},
		{',', ErrExpectedChar},
	}

	for _, tt := range tests {
		t.Run(string(tt.ch), func(t *testing.T) {
			s := NewScanner("x")
			err := s.Expect(tt.ch)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestScannerEndOfInput(t *testing.T) {
	s := NewScanner("a")
	_, err := s.Identifier()
	require.NoError(t, err)

	// Past the end nothing matches, and repeated calls stay in bounds
	assert.Equal(t, eof, s.Peek())
	assert.False(t, s.AtIdentifier())
	assert.False(t, s.Match('.'))
	assert.False(t, s.Match(eof))
	assert.True(t, s.AtEnd())
	_, err = s.Identifier()
	assert.True(t, errors.Is(err, ErrEmptyIdentifier))
	assert.Equal(t, 1, s.Pos())
}

func TestScannerIdentifierClass(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"abc", "abc"},
		{"_under_score", "_under_score"},
		{"name1", "name"},
		{"a-b", "a"},
		{"héllo", "h"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewScanner(tt.input).Identifier()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
