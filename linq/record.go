package linq

import (
	"bytes"
	"slices"

	"github.com/segmentio/encoding/json"
)

// Record is one row: an ordered mapping from field names to values.
//
// Field order follows insertion order. Setting a name that already exists
// keeps its position and replaces the value. Records handed out by this
// package are never modified afterwards.
type Record struct {
	names  []string
	fields map[string]Value
}

// Field is a named value used to build records.
type Field struct {
	Name  string
	Value Value
}

// F is a shorthand for Field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// NewRecord builds a record from fields in order.
func NewRecord(fields ...Field) *Record {
	r := newRecord(len(fields))
	for _, f := range fields {
		r.set(f.Name, f.Value)
	}
	return r
}

func newRecord(size int) *Record {
	return &Record{
		names:  make([]string, 0, size),
		fields: make(map[string]Value, size),
	}
}

func (r *Record) set(name string, v Value) {
	if v == nil {
		v = Missing{}
	}
	if _, exists := r.fields[name]; !exists {
		r.names = append(r.names, name)
	}
	r.fields[name] = v
}

func (*Record) Kind() Kind { return KindRecord }
func (*Record) linqValue() {}

// Get returns the value of a field and whether the field is present.
func (r *Record) Get(name string) (Value, bool) {
	if r == nil {
		return Missing{}, false
	}
	v, ok := r.fields[name]
	if !ok {
		return Missing{}, false
	}
	return v, true
}

// Field returns the value of a field, or Missing.
func (r *Record) Field(name string) Value {
	v, _ := r.Get(name)
	return v
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns the field names in order.
func (r *Record) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

// Fields returns the fields in order.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	fields := make([]Field, len(r.names))
	for i, name := range r.names {
		fields[i] = Field{Name: name, Value: r.fields[name]}
	}
	return fields
}

// With returns a copy of r with one field set.
func (r *Record) With(name string, v Value) *Record {
	out := newRecord(r.Len() + 1)
	for _, f := range r.Fields() {
		out.set(f.Name, f.Value)
	}
	out.set(name, v)
	return out
}

// MarshalJSON writes the fields in order. Missing fields are omitted, the
// same way an undefined property disappears from a JSON object.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, name := range r.names {
		v := r.fields[name]
		if kindOf(v) == KindMissing {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
