package linq

import "strings"

// Expression evaluates a compiled argument against the current value.
type Expression func(Value) (Value, error)

// Argument is one operand of an operation
type Argument struct {
	// Name is the field name the argument produces: the alias given with
	// "as", otherwise Source with its first '.' replaced by '_'.
	Name string
	// Source is the parsed expression text in canonical form.
	Source string
	// Expr evaluates the argument.
	Expr Expression

	aliased bool
	// spread is set for an unaliased new(...) call whose fields are merged
	// into the enclosing record.
	spread bool
}

// Operation is one pipeline stage
type Operation struct {
	Name string // As written in the query
	Verb Verb
	Args []Argument
	Pos  int // Byte offset of the name in the query
}

// String renders the operation in canonical form
func (op Operation) String() string {
	var sb strings.Builder
	sb.WriteString(op.Name)
	sb.WriteByte('(')
	for i, arg := range op.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Source)
		if arg.aliased {
			sb.WriteString(" as ")
			sb.WriteString(arg.Name)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// Query is the ordered sequence of operations parsed from a query string.
// It is never modified after parsing.
type Query struct {
	Text string
	Ops  []Operation
}

// String renders the query in canonical form
func (q *Query) String() string {
	return formatChain(q.Ops)
}

func formatChain(ops []Operation) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, ".")
}
