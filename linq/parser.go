package linq

import (
	"fmt"
	"strings"
)

/*
Query grammar:

query     = operation ( "." operation )*
operation = name "(" argList? ")"
argList   = arg ( "," arg )*
arg       = expr ( "as" name )?
expr      = name ( "." expr | call )?
call      = "(" argList? ")" ( "." operation )*
name      = [A-Za-z_]+

"as" is matched case-insensitively. Whitespace may appear between any two
tokens.
*/

// parser holds the state for one query string
type parser struct {
	s     *Scanner
	depth *depthCounter
}

// Parse parses a query string into its operations. Operation names are
// resolved and arities checked here, so every failure is a *ParseError
// (or ErrQueryTooLong).
func Parse(text string) (*Query, error) {
	if err := ValidateQuery(text); err != nil {
		return nil, err
	}

	p := &parser{s: NewScanner(text), depth: newDepthCounter()}
	ops, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	if !p.s.AtEnd() {
		return nil, p.s.errorf(ErrUnexpectedInput, "")
	}

	return &Query{Text: text, Ops: ops}, nil
}

// parseChain parses: operation ( "." operation )*
// Every dot must be followed by an operation.
func (p *parser) parseChain() ([]Operation, error) {
	op, err := p.parseOperation()
	if err != nil {
		return nil, err
	}
	ops := []Operation{op}

	for p.s.Match('.') {
		op, err := p.parseOperation()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// parseOperation parses: name "(" argList? ")"
func (p *parser) parseOperation() (Operation, error) {
	if !p.s.AtIdentifier() {
		return Operation{}, p.s.errorf(ErrExpectedIdentifier, "operation name")
	}
	pos := p.s.Pos()
	name, err := p.s.Identifier()
	if err != nil {
		return Operation{}, err
	}
	return p.parseCall(name, pos)
}

// parseCall parses the argument list of an operation whose name has already
// been consumed, then resolves the verb.
func (p *parser) parseCall(name string, pos int) (Operation, error) {
	if err := p.s.Expect('('); err != nil {
		return Operation{}, err
	}

	var args []Argument
	if !p.s.Match(')') {
		var err error
		args, err = p.parseArguments()
		if err != nil {
			return Operation{}, err
		}
		if err := p.s.Expect(')'); err != nil {
			return Operation{}, err
		}
	}

	verb, ok := LookupVerb(name)
	if !ok {
		return Operation{}, p.s.errorAt(pos, ErrUnknownOperation, "%q", strings.ToLower(name))
	}
	if err := verb.checkArity(len(args)); err != nil {
		return Operation{}, p.s.errorAt(pos, ErrArgumentCount, "%v", err)
	}

	return Operation{Name: name, Verb: verb, Args: args, Pos: pos}, nil
}

// parseArguments parses: arg ( "," arg )*
func (p *parser) parseArguments() ([]Argument, error) {
	var args []Argument
	for {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if !p.s.Match(',') {
			return args, nil
		}
	}
}

// parseArgument parses: expr ( "as" name )?
func (p *parser) parseArgument() (Argument, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return Argument{}, err
	}

	arg := Argument{
		Name:   expr.source,
		Source: expr.source,
		Expr:   expr.eval,
	}

	if p.s.AtIdentifier() {
		pos := p.s.Pos()
		word, err := p.s.Identifier()
		if err != nil {
			return Argument{}, err
		}
		if !strings.EqualFold(word, "as") {
			return Argument{}, p.s.errorAt(pos, ErrExpectedAs, "got %q", word)
		}
		if !p.s.AtIdentifier() {
			return Argument{}, p.s.errorf(ErrExpectedAs, "alias must be an identifier")
		}
		alias, err := p.s.Identifier()
		if err != nil {
			return Argument{}, err
		}
		arg.Name = alias
		arg.aliased = true
	}

	// Only the first dot is replaced: "a.b.c" becomes "a_b.c".
	arg.Name = strings.Replace(arg.Name, ".", "_", 1)
	arg.spread = expr.constructs && !arg.aliased

	return arg, nil
}

// checkArity reports whether n arguments suit the verb
func (v Verb) checkArity(n int) error {
	info := verbTable[v]
	if n < info.minArgs || (info.maxArgs >= 0 && n > info.maxArgs) {
		return fmt.Errorf("%s takes %s, got %d", info.name, info.arity(), n)
	}
	return nil
}
