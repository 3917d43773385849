// Package linq implements a small LINQ-like query engine over dynamically
// shaped records.
//
// A query is a dot-chained sequence of operation calls, each taking a
// parenthesized, comma-separated list of arguments:
//
//	select(name, age).where(age).orderby(age)
//
// Arguments are property paths (address.city), nested calls such as the
// record constructor new(name, age as years), or sub-queries applied to the
// current value (items.where(active).count()). Every argument may be renamed
// with "as".
//
// Supported operations:
//   - select(args...): project each record into a new record
//   - where(pred): keep records for which pred is truthy
//   - orderby(keys...): stable ascending sort on the given keys
//   - groupby(keys...): partition records by their computed key record
//   - sum(expr), average(expr): numeric aggregates
//   - count() and count(pred): element counts
//   - new(args...): build one record from the current value
//
// Operation names are case-insensitive and resolved while parsing, so an
// unknown name is reported by Compile rather than when the query runs.
//
// # Basic Usage
//
//	p, err := linq.Compile("select(name, age).orderby(age)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rows := linq.List{
//	    linq.NewRecord(linq.F("name", linq.Text("Joe")), linq.F("age", linq.Number(5))),
//	    linq.NewRecord(linq.F("name", linq.Text("Sam")), linq.F("age", linq.Number(12))),
//	}
//
//	result, err := p.Run(rows)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Values
//
// Values are one of Missing, Number, Text, Bool, *Record, List or *Group.
// Property access never fails: reading a field of anything that is not a
// record yields Missing, so paths such as a.b.c propagate absence instead of
// raising an error.
//
// A compiled Pipeline is immutable and never modifies its input, so it may
// be run concurrently from multiple goroutines.
package linq
