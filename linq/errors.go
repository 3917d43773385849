package linq

import (
	"errors"
	"fmt"
)

// Parse error kinds. They are wrapped in a *ParseError and can be matched
// with errors.Is.
var (
	ErrExpectedIdentifier = errors.New("expected identifier")
	ErrExpectedOpenParen  = errors.New("expected '('")
	ErrExpectedCloseParen = errors.New("expected ')'")
	ErrExpectedAs         = errors.New("expected 'as'")
	ErrEmptyIdentifier    = errors.New("empty identifier")
	ErrExpectedChar       = errors.New("expected character")
	ErrUnexpectedInput    = errors.New("unexpected input after query")
)

// Errors shared by parsing and evaluation.
var (
	// ErrUnknownOperation is returned for an operation name that is not a
	// known verb.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrArgumentCount is returned when an operation is called with the
	// wrong number of arguments.
	ErrArgumentCount = errors.New("wrong number of arguments")
)

// Evaluation error kinds.
var (
	// ErrNotCollection is returned when a collection operation is applied
	// to a value that is neither a List nor a *Group.
	ErrNotCollection = errors.New("value is not a collection")

	// ErrEmptyPath is returned by GetProperty for an empty property path.
	ErrEmptyPath = errors.New("no property path specified")
)

// snippetRadius is the number of bytes shown on each side of a parse error.
const snippetRadius = 12

// ParseError reports a malformed query. It is returned by Parse and Compile
// before any data is touched and will never succeed on retry.
type ParseError struct {
	Kind   error  // One of the Err* parse kinds, ErrUnknownOperation or ErrArgumentCount
	Pos    int    // Byte offset into Query
	Query  string // The full query text
	Detail string // Optional extra context
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at position %d: %v", e.Pos, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if snippet := e.Snippet(); snippet != "" {
		msg += fmt.Sprintf(" (near %q)", snippet)
	}
	return msg
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Snippet returns the part of the query surrounding the error position.
func (e *ParseError) Snippet() string {
	if e.Query == "" {
		return ""
	}
	start := max(e.Pos-snippetRadius, 0)
	end := min(e.Pos+snippetRadius, len(e.Query))
	if start >= end {
		return ""
	}
	return e.Query[start:end]
}

// EvaluationError reports a failure while running a compiled pipeline.
type EvaluationError struct {
	Kind   error  // ErrUnknownOperation, ErrArgumentCount or ErrNotCollection
	Op     string // Operation being evaluated
	Detail string
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	msg := fmt.Sprintf("evaluating %s: %v", e.Op, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the error kind.
func (e *EvaluationError) Unwrap() error {
	return e.Kind
}
