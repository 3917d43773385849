package linq

// compiled is an argument expression together with its canonical source
type compiled struct {
	source string
	eval   Expression
	// constructs is set when the expression is a call chain ending in new
	constructs bool
}

// parseExpression parses: name ( "." expr | call )?
//
// A bare name reads a field of the current value. A dotted path applies the
// rest of the path to that field, so a.b.c evaluates as c(b(a(v))). A name
// followed by "(" starts a sub-query applied to the current value.
func (p *parser) parseExpression() (compiled, error) {
	if !p.depth.Enter() {
		return compiled{}, p.s.errorf(ErrExpressionTooDeep, "more than %d levels", MaxExpressionDepth)
	}
	defer p.depth.Exit()

	if !p.s.AtIdentifier() {
		return compiled{}, p.s.errorf(ErrExpectedIdentifier, "")
	}
	pos := p.s.Pos()
	name, err := p.s.Identifier()
	if err != nil {
		return compiled{}, err
	}

	switch {
	case p.s.Match('.'):
		if !p.s.AtIdentifier() {
			return compiled{}, p.s.errorf(ErrEmptyIdentifier, "empty path segment after %q", name)
		}
		inner, err := p.parseExpression()
		if err != nil {
			return compiled{}, err
		}
		return compiled{
			source: name + "." + inner.source,
			eval: func(v Value) (Value, error) {
				return inner.eval(fieldOf(v, name))
			},
		}, nil

	case p.s.Lookahead('('):
		return p.parseSubQuery(name, pos)

	default:
		return compiled{
			source: name,
			eval: func(v Value) (Value, error) {
				return fieldOf(v, name), nil
			},
		}, nil
	}
}

// parseSubQuery parses a call and any operations chained onto it, compiling
// them into a pipeline over the current value. An absent value short-circuits
// to Missing.
func (p *parser) parseSubQuery(name string, pos int) (compiled, error) {
	first, err := p.parseCall(name, pos)
	if err != nil {
		return compiled{}, err
	}
	ops := []Operation{first}

	for p.s.Match('.') {
		op, err := p.parseOperation()
		if err != nil {
			return compiled{}, err
		}
		ops = append(ops, op)
	}

	return compiled{
		source: formatChain(ops),
		eval: func(v Value) (Value, error) {
			if kindOf(v) == KindMissing {
				return Missing{}, nil
			}
			return evaluate(ops, v)
		},
		constructs: ops[len(ops)-1].Verb == VerbNew,
	}, nil
}
