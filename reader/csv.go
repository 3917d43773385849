package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/vegasq/linqcat/linq"
)

var ErrEmptyHeader = errors.New("csv file has no header row")

// readCSV reads a CSV file whose first row names the columns
func readCSV(path string) (linq.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyHeader, path)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	rows := make(linq.List, 0)
	for {
		cells, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		fields := make([]linq.Field, 0, len(header))
		for i, name := range header {
			var v linq.Value = linq.Missing{}
			if i < len(cells) {
				v = parseCell(cells[i])
			}
			fields = append(fields, linq.F(name, v))
		}
		rows = append(rows, linq.NewRecord(fields...))
	}
	return rows, nil
}

// parseCell turns numeric cells into Numbers and true/false into Bools.
// Empty cells are Missing. Cells such as "NaN" or "Inf" stay text.
func parseCell(s string) linq.Value {
	switch s {
	case "":
		return linq.Missing{}
	case "true":
		return linq.Bool(true)
	case "false":
		return linq.Bool(false)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return linq.Number(f)
	}
	return linq.Text(s)
}
