package linq

import (
	"math"
	"sort"
)

// collection returns the elements a collection verb iterates over
func collection(verb Verb, input Value) (List, error) {
	switch v := input.(type) {
	case List:
		return v, nil
	case *Group:
		if v != nil {
			return v.members, nil
		}
	}
	return nil, &EvaluationError{
		Kind:   ErrNotCollection,
		Op:     verb.String(),
		Detail: "got " + kindOf(input).String(),
	}
}

// requireArgs guards handlers against hand-built operations
func requireArgs(verb Verb, args []Argument) error {
	if !verb.valid() {
		return &EvaluationError{Kind: ErrUnknownOperation, Op: verb.String()}
	}
	if err := verb.checkArity(len(args)); err != nil {
		return &EvaluationError{Kind: ErrArgumentCount, Op: verb.String(), Detail: err.Error()}
	}
	return nil
}

// buildRecord evaluates args against v into a new record. Spread arguments
// merge their record's fields instead of adding one field.
func buildRecord(v Value, args []Argument) (Value, error) {
	r := newRecord(len(args))
	for _, arg := range args {
		val, err := arg.Expr(v)
		if err != nil {
			return nil, err
		}
		if inner, ok := val.(*Record); ok && arg.spread && inner != nil {
			for _, f := range inner.Fields() {
				r.set(f.Name, f.Value)
			}
			continue
		}
		r.set(arg.Name, val)
	}
	return r, nil
}

// applySelect projects each element into a new record
func applySelect(input Value, args []Argument) (Value, error) {
	items, err := collection(VerbSelect, input)
	if err != nil {
		return nil, err
	}

	out := make(List, len(items))
	for i, item := range items {
		out[i], err = buildRecord(item, args)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// applyWhere keeps the elements for which args[0] is truthy
func applyWhere(input Value, args []Argument) (Value, error) {
	if err := requireArgs(VerbWhere, args); err != nil {
		return nil, err
	}
	items, err := collection(VerbWhere, input)
	if err != nil {
		return nil, err
	}
	return filter(items, args[0])
}

func filter(items List, pred Argument) (List, error) {
	out := make(List, 0, len(items))
	for _, item := range items {
		keep, err := pred.Expr(item)
		if err != nil {
			return nil, err
		}
		if Truthy(keep) {
			out = append(out, item)
		}
	}
	return out, nil
}

// applyOrderBy sorts a copy of the input ascending on each key in turn.
// The sort is stable: elements with equal keys keep their input order.
func applyOrderBy(input Value, args []Argument) (Value, error) {
	items, err := collection(VerbOrderBy, input)
	if err != nil {
		return nil, err
	}

	// Evaluate every key once up front
	keys := make([][]Value, len(items))
	for i, item := range items {
		keys[i] = make([]Value, len(args))
		for j, arg := range args {
			keys[i][j], err = arg.Expr(item)
			if err != nil {
				return nil, err
			}
		}
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		for j := range args {
			if cmp := compareValues(ka[j], kb[j]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	sorted := make(List, len(items))
	for i, idx := range order {
		sorted[i] = items[idx]
	}
	return sorted, nil
}

// applyGroupBy partitions the input by key record, in first-seen order
func applyGroupBy(input Value, args []Argument) (Value, error) {
	items, err := collection(VerbGroupBy, input)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*Group)
	out := make(List, 0)
	for _, item := range items {
		key, err := buildRecord(item, args)
		if err != nil {
			return nil, err
		}
		keyRecord := key.(*Record)

		hash := canonicalKey(keyRecord)
		group, exists := groups[hash]
		if !exists {
			group = &Group{key: keyRecord}
			groups[hash] = group
			out = append(out, group)
		}
		group.members = append(group.members, item)
	}
	return out, nil
}

// applySum adds up args[0] over the input. Any value that is not a Number,
// including Missing, makes the result NaN.
func applySum(input Value, args []Argument) (Value, error) {
	if err := requireArgs(VerbSum, args); err != nil {
		return nil, err
	}
	items, err := collection(VerbSum, input)
	if err != nil {
		return nil, err
	}
	return sum(items, args[0])
}

func sum(items List, arg Argument) (Number, error) {
	var total float64
	for _, item := range items {
		v, err := arg.Expr(item)
		if err != nil {
			return 0, err
		}
		n, ok := v.(Number)
		if !ok {
			total = math.NaN()
			continue
		}
		total += float64(n)
	}
	return Number(total), nil
}

// applyAverage is sum divided by count. An empty input averages to NaN.
func applyAverage(input Value, args []Argument) (Value, error) {
	if err := requireArgs(VerbAverage, args); err != nil {
		return nil, err
	}
	items, err := collection(VerbAverage, input)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return Number(math.NaN()), nil
	}

	total, err := sum(items, args[0])
	if err != nil {
		return nil, err
	}
	return total / Number(len(items)), nil
}

// applyCount counts the input, or the elements passing args[0]
func applyCount(input Value, args []Argument) (Value, error) {
	if err := requireArgs(VerbCount, args); err != nil {
		return nil, err
	}
	items, err := collection(VerbCount, input)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return Number(len(items)), nil
	}

	kept, err := filter(items, args[0])
	if err != nil {
		return nil, err
	}
	return Number(len(kept)), nil
}
