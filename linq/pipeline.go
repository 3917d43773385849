package linq

import (
	"strconv"
	"strings"
)

// Pipeline is a compiled query. It holds no mutable state and never modifies
// its input, so Run may be called concurrently.
type Pipeline struct {
	query *Query
}

// Compile parses a query into a pipeline. An empty query compiles to the
// identity pipeline, which returns its input unchanged.
func Compile(text string) (*Pipeline, error) {
	if text == "" {
		return &Pipeline{}, nil
	}

	q, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return &Pipeline{query: q}, nil
}

// MustCompile is like Compile but panics if the query cannot be parsed.
func MustCompile(text string) *Pipeline {
	p, err := Compile(text)
	if err != nil {
		panic("linq: Compile(" + strconv.Quote(text) + "): " + err.Error())
	}
	return p
}

// Run threads input through each operation in order.
//
// A result made up entirely of groups is presented as the list of the
// groups' key records. This only happens to the final result; a groupby
// followed by other operations hands them the groups themselves.
func (p *Pipeline) Run(input List) (Value, error) {
	if p.query == nil {
		return input, nil
	}
	return evaluate(p.query.Ops, input)
}

// Func returns Run as a plain function.
func (p *Pipeline) Func() func(List) (Value, error) {
	return p.Run
}

// Operations returns a copy of the parsed operations.
func (p *Pipeline) Operations() []Operation {
	if p.query == nil {
		return nil
	}
	return append([]Operation(nil), p.query.Ops...)
}

// String returns the query in canonical form.
func (p *Pipeline) String() string {
	if p.query == nil {
		return ""
	}
	return p.query.String()
}

// evaluate folds input through ops and applies the group presentation step
func evaluate(ops []Operation, input Value) (Value, error) {
	result := input
	for _, op := range ops {
		next, err := op.Verb.apply(result, op.Args)
		if err != nil {
			return nil, err
		}
		result = next
	}
	return presentGroups(result), nil
}

// presentGroups replaces a non-empty list of groups with their keys
func presentGroups(v Value) Value {
	list, ok := v.(List)
	if !ok || len(list) == 0 {
		return v
	}

	keys := make(List, len(list))
	for i, item := range list {
		g, ok := item.(*Group)
		if !ok || g == nil {
			return v
		}
		keys[i] = g.Key()
	}
	return keys
}

// GetProperty resolves a dot-separated path against v. Any step through a
// value that is not a record yields Missing.
func GetProperty(v Value, path string) (Value, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	for _, part := range strings.Split(path, ".") {
		v = fieldOf(v, part)
	}
	return v, nil
}
