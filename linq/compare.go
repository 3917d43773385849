package linq

import (
	"math"
	"strconv"
	"strings"
)

// kindRank orders values of different kinds. Records, lists and groups all
// rank last and compare equal to each other.
func kindRank(k Kind) int {
	switch k {
	case KindMissing:
		return 0
	case KindBool:
		return 1
	case KindNumber:
		return 2
	case KindText:
		return 3
	default:
		return 4
	}
}

// compareValues compares two values and returns:
// -1 if a < b
//
//	0 if a == b
//
// +1 if a > b
//
// Numbers compare numerically with NaN below every other number, text
// compares byte-wise and false sorts before true.
func compareValues(a, b Value) int {
	ka, kb := kindOf(a), kindOf(b)
	if ra, rb := kindRank(ka), kindRank(kb); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch av := a.(type) {
	case Number:
		bv := b.(Number)
		aNaN, bNaN := math.IsNaN(float64(av)), math.IsNaN(float64(bv))
		switch {
		case aNaN && bNaN:
			return 0
		case aNaN:
			return -1
		case bNaN:
			return 1
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case Text:
		return strings.Compare(string(av), string(b.(Text)))
	case Bool:
		bv := b.(Bool)
		if !av && bv {
			return -1 // false < true
		}
		if av && !bv {
			return 1
		}
		return 0
	}
	return 0
}

// canonicalKey serializes a value with kind tags, so two key records map to
// the same string exactly when they have the same fields in the same order
// with equal values.
func canonicalKey(v Value) string {
	var sb strings.Builder
	writeCanonical(&sb, v)
	return sb.String()
}

func writeCanonical(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil, Missing:
		sb.WriteByte('u')
	case Bool:
		if val {
			sb.WriteString("b1")
		} else {
			sb.WriteString("b0")
		}
	case Number:
		f := float64(val)
		if f == 0 {
			f = 0 // fold -0 into 0
		}
		sb.WriteByte('n')
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case Text:
		sb.WriteByte('s')
		sb.WriteString(strconv.Quote(string(val)))
	case *Record:
		sb.WriteByte('{')
		for i, f := range val.Fields() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(f.Name))
			sb.WriteByte(':')
			writeCanonical(sb, f.Value)
		}
		sb.WriteByte('}')
	case List:
		sb.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCanonical(sb, item)
		}
		sb.WriteByte(']')
	case *Group:
		sb.WriteByte('g')
		writeCanonical(sb, val.Key())
		writeCanonical(sb, val.members)
	}
}
