package reader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/linqcat/linq"
)

// ScalarField holds a non-object JSON value read as a row.
const ScalarField = "value"

// readJSON reads a JSON array of objects. A file that does not start with
// '[' is read as JSON Lines instead.
func readJSON(path string) (linq.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return decodeLines(bytes.NewReader(data), path)
	}

	var items []any
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	rows := make(linq.List, len(items))
	for i, item := range items {
		rows[i] = toRecord(item)
	}
	return rows, nil
}

func readJSONLines(path string) (linq.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return decodeLines(bufio.NewReader(f), path)
}

// decodeLines reads a stream of JSON values
func decodeLines(r io.Reader, path string) (linq.List, error) {
	dec := json.NewDecoder(r)
	rows := make(linq.List, 0)
	for {
		var item any
		err := dec.Decode(&item)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode %s at row %d: %w", path, len(rows)+1, err)
		}
		rows = append(rows, toRecord(item))
	}
	return rows, nil
}

// toRecord wraps non-object values in a single-field record
func toRecord(item any) *linq.Record {
	if m, ok := item.(map[string]any); ok {
		return linq.RecordOf(m)
	}
	return linq.NewRecord(linq.F(ScalarField, linq.ValueOf(item)))
}
