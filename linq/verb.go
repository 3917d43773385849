package linq

import (
	"fmt"
	"strings"
)

// Verb identifies a built-in operation. The set is closed: every query
// operation resolves to one of these while parsing.
type Verb int

const (
	VerbInvalid Verb = iota
	VerbSelect
	VerbWhere
	VerbOrderBy
	VerbGroupBy
	VerbSum
	VerbAverage
	VerbCount
	VerbNew
)

type verbInfo struct {
	name    string
	minArgs int
	maxArgs int // -1 for unlimited
}

var verbTable = [...]verbInfo{
	VerbInvalid: {name: "invalid", minArgs: 0, maxArgs: -1},
	VerbSelect:  {name: "select", minArgs: 0, maxArgs: -1},
	VerbWhere:   {name: "where", minArgs: 1, maxArgs: 1},
	VerbOrderBy: {name: "orderby", minArgs: 0, maxArgs: -1},
	VerbGroupBy: {name: "groupby", minArgs: 0, maxArgs: -1},
	VerbSum:     {name: "sum", minArgs: 1, maxArgs: 1},
	VerbAverage: {name: "average", minArgs: 1, maxArgs: 1},
	VerbCount:   {name: "count", minArgs: 0, maxArgs: 1},
	VerbNew:     {name: "new", minArgs: 0, maxArgs: -1},
}

// verbsByName maps lower-cased names to verbs
var verbsByName = func() map[string]Verb {
	m := make(map[string]Verb, len(verbTable))
	for v, info := range verbTable {
		if Verb(v) != VerbInvalid {
			m[info.name] = Verb(v)
		}
	}
	return m
}()

// LookupVerb resolves an operation name (case-insensitive)
func LookupVerb(name string) (Verb, bool) {
	v, ok := verbsByName[strings.ToLower(name)]
	return v, ok
}

// Verbs returns the names of all operations
func Verbs() []string {
	names := make([]string, 0, len(verbTable)-1)
	for v, info := range verbTable {
		if Verb(v) != VerbInvalid {
			names = append(names, info.name)
		}
	}
	return names
}

func (v Verb) valid() bool {
	return v > VerbInvalid && int(v) < len(verbTable)
}

func (v Verb) String() string {
	if !v.valid() {
		return fmt.Sprintf("verb(%d)", int(v))
	}
	return verbTable[v].name
}

func (s verbInfo) arity() string {
	switch {
	case s.maxArgs < 0:
		return fmt.Sprintf("at least %d arguments", s.minArgs)
	case s.minArgs == s.maxArgs:
		if s.minArgs == 1 {
			return "exactly 1 argument"
		}
		return fmt.Sprintf("exactly %d arguments", s.minArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", s.minArgs, s.maxArgs)
	}
}

// apply runs the verb over its input
func (v Verb) apply(input Value, args []Argument) (Value, error) {
	switch v {
	case VerbSelect:
		return applySelect(input, args)
	case VerbWhere:
		return applyWhere(input, args)
	case VerbOrderBy:
		return applyOrderBy(input, args)
	case VerbGroupBy:
		return applyGroupBy(input, args)
	case VerbSum:
		return applySum(input, args)
	case VerbAverage:
		return applyAverage(input, args)
	case VerbCount:
		return applyCount(input, args)
	case VerbNew:
		return buildRecord(input, args)
	default:
		return nil, &EvaluationError{Kind: ErrUnknownOperation, Op: v.String()}
	}
}
