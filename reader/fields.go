package reader

import (
	"fmt"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/linqcat/linq"
)

// FieldInfo describes one field found in a source.
type FieldInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
	Repeated bool   `json:"repeated,omitempty"`
}

// Fields lists the fields of a file. Parquet files report their schema,
// with nested columns in dot notation. Other formats are read in full and
// report the union of top-level fields in first-seen order, typed by the
// first value that is not missing.
func Fields(path string, opts Options) ([]FieldInfo, error) {
	if DetectFormat(path) == FormatParquet {
		return parquetFields(path)
	}

	rows, err := ReadFile(path, opts)
	if err != nil {
		return nil, err
	}
	return DiscoverFields(rows), nil
}

// DiscoverFields scans records for their field names.
func DiscoverFields(rows linq.List) []FieldInfo {
	var infos []FieldInfo
	index := make(map[string]int)

	for _, row := range rows {
		r, ok := row.(*linq.Record)
		if !ok {
			continue
		}
		for _, f := range r.Fields() {
			i, seen := index[f.Name]
			if !seen {
				i = len(infos)
				index[f.Name] = i
				infos = append(infos, FieldInfo{Name: f.Name})
			}
			if f.Value.Kind() == linq.KindMissing {
				infos[i].Optional = true
				continue
			}
			if infos[i].Type == "" {
				infos[i].Type = f.Value.Kind().String()
			}
		}
	}

	for i := range infos {
		if infos[i].Type == "" {
			infos[i].Type = linq.KindMissing.String()
		}
	}
	return infos
}

func parquetFields(path string) ([]FieldInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	var infos []FieldInfo
	for _, field := range r.Schema().Fields() {
		infos = append(infos, leafFields(field, "", false)...)
	}
	return infos, nil
}

// leafFields flattens groups into their leaf columns, carrying the
// repeated flag down from any repeated parent.
func leafFields(field parquet.Field, prefix string, parentRepeated bool) []FieldInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || field.Repeated()

	if children := field.Fields(); len(children) > 0 {
		var infos []FieldInfo
		for _, child := range children {
			infos = append(infos, leafFields(child, name, repeated)...)
		}
		return infos
	}

	return []FieldInfo{{
		Name:     name,
		Type:     parquetType(field),
		Optional: field.Optional(),
		Repeated: repeated,
	}}
}

// parquetType names a leaf column's type, preferring the logical type
func parquetType(field parquet.Field) string {
	t := field.Type()
	if t == nil {
		return "GROUP"
	}

	if lt := t.LogicalType(); lt != nil {
		switch s := lt.String(); s {
		case "STRING", "UTF8", "ENUM", "UUID", "DATE", "TIME", "TIMESTAMP", "DECIMAL", "JSON", "BSON":
			return s
		}
	}

	switch t.Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
