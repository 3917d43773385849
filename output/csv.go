package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vegasq/linqcat/linq"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header row and one row per item. An empty result
// writes nothing.
func (c *CSVFormatter) Format(v linq.Value) error {
	rows := items(v)
	csvWriter := csv.NewWriter(c.writer)

	if len(rows) > 0 {
		cols := columns(rows)
		if err := csvWriter.Write(cols); err != nil {
			return err
		}
		for _, row := range rows {
			record := cells(row, cols)
			for i := range record {
				record[i] = sanitize(record[i])
			}
			if err := csvWriter.Write(record); err != nil {
				return err
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// sanitize guards against CSV formula injection by quoting cells that
// spreadsheet applications would evaluate. Negative numbers pass through.
func sanitize(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '-':
		if isNumeric(cell) {
			return cell
		}
	case '=', '+', '@', '\t', '\r', '\n', '|':
	default:
		return cell
	}
	return "'" + strings.ReplaceAll(cell, "'", "''")
}

func isNumeric(s string) bool {
	if s == "-Infinity" {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
