package linq

import (
	"fmt"
	"reflect"
	"sort"
	"time"
)

// ValueOf converts a Go value into a Value.
//
// Maps with string keys become records (fields sorted by name, since Go maps
// carry no order), slices and arrays become lists, every integer and float
// kind becomes a Number, byte slices and times become Text and nil becomes
// Missing. Anything else is rendered with fmt as Text.
func ValueOf(v any) Value {
	switch val := v.(type) {
	case nil:
		return Missing{}
	case Value:
		return val
	case bool:
		return Bool(val)
	case string:
		return Text(val)
	case []byte:
		return Text(string(val))
	case time.Time:
		return Text(val.Format(time.RFC3339Nano))
	case map[string]any:
		return recordFromMap(val)
	case []any:
		list := make(List, len(val))
		for i, item := range val {
			list[i] = ValueOf(item)
		}
		return list
	case []map[string]any:
		list := make(List, len(val))
		for i, item := range val {
			list[i] = recordFromMap(item)
		}
		return list
	}

	if f, ok := toFloat64(v); ok {
		return Number(f)
	}
	return valueOfReflect(reflect.ValueOf(v))
}

// valueOfReflect handles typed maps, slices and pointers
func valueOfReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Missing{}
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		r := newRecord(len(keys))
		for _, k := range keys {
			r.set(k, ValueOf(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()))
		}
		return r
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return List(nil)
		}
		list := make(List, rv.Len())
		for i := range list {
			list[i] = ValueOf(rv.Index(i).Interface())
		}
		return list
	case reflect.String:
		return Text(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	}
	return Text(fmt.Sprint(rv.Interface()))
}

func recordFromMap(m map[string]any) *Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := newRecord(len(keys))
	for _, k := range keys {
		r.set(k, ValueOf(m[k]))
	}
	return r
}

// RecordOf converts a map into a record with the given field order. Names
// not listed in order are appended in sorted order.
func RecordOf(m map[string]any, order ...string) *Record {
	r := newRecord(len(m))
	for _, name := range order {
		if v, ok := m[name]; ok {
			r.set(name, ValueOf(v))
		}
	}
	if r.Len() == len(m) {
		return r
	}
	rest := recordFromMap(m)
	for _, f := range rest.Fields() {
		if _, ok := r.fields[f.Name]; !ok {
			r.set(f.Name, f.Value)
		}
	}
	return r
}

// Native converts a Value back into plain Go values: nil, float64, string,
// bool, map[string]any and []any. A group becomes a map with "key" and
// "members" entries.
func Native(v Value) any {
	switch val := v.(type) {
	case nil, Missing:
		return nil
	case Number:
		return float64(val)
	case Text:
		return string(val)
	case Bool:
		return bool(val)
	case *Record:
		if val == nil {
			return nil
		}
		m := make(map[string]any, val.Len())
		for _, f := range val.Fields() {
			m[f.Name] = Native(f.Value)
		}
		return m
	case List:
		if val == nil {
			return []any(nil)
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Native(item)
		}
		return out
	case *Group:
		if val == nil {
			return nil
		}
		return map[string]any{
			"key":     Native(val.key),
			"members": Native(val.members),
		}
	}
	return nil
}

// toFloat64 converts a value to float64 if possible
func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}
