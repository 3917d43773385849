package linq

import (
	"math"
	"strconv"

	"github.com/segmentio/encoding/json"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	KindMissing Kind = iota
	KindBool
	KindNumber
	KindText
	KindRecord
	KindList
	KindGroup
)

var kindNames = [...]string{
	KindMissing: "missing",
	KindBool:    "bool",
	KindNumber:  "number",
	KindText:    "text",
	KindRecord:  "record",
	KindList:    "list",
	KindGroup:   "group",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is a sealed interface over the values a query can produce.
// Only Missing, Number, Text, Bool, *Record, List and *Group implement it.
type Value interface {
	Kind() Kind
	linqValue()
}

// Missing is the absent value. Reading an unknown field, or any field of a
// non-record, yields Missing.
type Missing struct{}

func (Missing) Kind() Kind { return KindMissing }
func (Missing) linqValue() {}

// MarshalJSON implements json.Marshaler for Missing.
func (Missing) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Number is a numeric value. All numbers are float64.
type Number float64

func (Number) Kind() Kind { return KindNumber }
func (Number) linqValue() {}

// MarshalJSON writes NaN and infinities as null since JSON cannot hold them.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Text is a string value.
type Text string

func (Text) Kind() Kind { return KindText }
func (Text) linqValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) linqValue() {}

// List is an ordered sequence of values. It is the collection type that
// flows through a pipeline.
type List []Value

func (List) Kind() Kind { return KindList }
func (List) linqValue() {}

// Group is one partition produced by groupby: the member records plus the
// key record they share.
type Group struct {
	key     *Record
	members List
}

func (*Group) Kind() Kind { return KindGroup }
func (*Group) linqValue() {}

// Key returns the group's key record.
func (g *Group) Key() *Record {
	return g.key
}

// Members returns a copy of the group's member list.
func (g *Group) Members() List {
	return append(List(nil), g.members...)
}

// Len returns the number of members.
func (g *Group) Len() int {
	return len(g.members)
}

// MarshalJSON implements json.Marshaler for *Group.
func (g *Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key     *Record `json:"key"`
		Members List    `json:"members"`
	}{g.key, g.members})
}

// Truthy reports whether v counts as true in a predicate. Missing, false,
// zero, NaN and the empty string are falsy; everything else is truthy,
// including empty lists and records.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil, Missing:
		return false
	case Bool:
		return bool(x)
	case Number:
		return x != 0 && !math.IsNaN(float64(x))
	case Text:
		return x != ""
	case *Record:
		return x != nil
	case *Group:
		return x != nil
	default:
		return true
	}
}

// fieldOf reads one property of v. Records expose their fields; groups
// expose "key" and "length". Anything else yields Missing.
func fieldOf(v Value, name string) Value {
	switch x := v.(type) {
	case *Record:
		return x.Field(name)
	case *Group:
		if x == nil {
			return Missing{}
		}
		switch name {
		case "key":
			if x.key == nil {
				return Missing{}
			}
			return x.key
		case "length":
			return Number(len(x.members))
		}
	}
	return Missing{}
}

// kindOf returns the kind of v, treating a nil interface as Missing.
func kindOf(v Value) Kind {
	if v == nil {
		return KindMissing
	}
	return v.Kind()
}
