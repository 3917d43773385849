// Package output writes query results.
//
// Four formats are supported:
//   - jsonl: one JSON value per line (the default)
//   - json: a single indented JSON document
//   - csv: a header row with the union of record fields, then one row per item
//   - table: an aligned text table
//
// A list result is written item by item. Any other result, such as the
// number produced by count, is treated as a list of one item. Items that
// are not records are placed under a "value" column in csv and table
// output.
//
//	f, err := output.NewFormatter("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := f.Format(result); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/linqcat/linq"
)

// ValueColumn is the column that holds non-record items.
const ValueColumn = "value"

var ErrUnknownFormat = errors.New("unknown output format")

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes a query result
	Format(v linq.Value) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

var constructors = map[string]func(io.Writer) Formatter{
	"jsonl": func(w io.Writer) Formatter { return NewJSONLinesFormatter(w) },
	"json":  func(w io.Writer) Formatter { return NewJSONFormatter(w) },
	"csv":   func(w io.Writer) Formatter { return NewCSVFormatter(w) },
	"table": func(w io.Writer) Formatter { return NewTableFormatter(w) },
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, w io.Writer) (Formatter, error) {
	ctor, ok := constructors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return ctor(w), nil
}

// Names lists the registered format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// items flattens a result into the values to write
func items(v linq.Value) linq.List {
	if list, ok := v.(linq.List); ok {
		return list
	}
	return linq.List{v}
}

// columns returns the union of record fields in first-seen order, plus the
// value column if any item is not a record
func columns(rows linq.List) []string {
	var cols []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			cols = append(cols, name)
		}
	}

	for _, row := range rows {
		r, ok := row.(*linq.Record)
		if !ok {
			add(ValueColumn)
			continue
		}
		for _, name := range r.Names() {
			add(name)
		}
	}
	return cols
}

// cells renders one item against the column set
func cells(row linq.Value, cols []string) []string {
	out := make([]string, len(cols))
	r, isRecord := row.(*linq.Record)
	for i, col := range cols {
		switch {
		case isRecord:
			out[i] = formatValue(r.Field(col))
		case col == ValueColumn:
			out[i] = formatValue(row)
		}
	}
	return out
}

// formatValue converts a value to text for tabular output
func formatValue(v linq.Value) string {
	switch val := v.(type) {
	case nil, linq.Missing:
		return ""
	case linq.Text:
		return string(val)
	case linq.Bool:
		return strconv.FormatBool(bool(val))
	case linq.Number:
		return formatNumber(float64(val))
	default:
		// Records, lists and groups are written as JSON
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(linq.Native(val))
		}
		return string(b)
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}
