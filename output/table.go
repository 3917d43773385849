package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/linqcat/linq"
)

// TableFormatter renders results as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders one table row per item. An empty result writes nothing.
func (t *TableFormatter) Format(v linq.Value) error {
	rows := items(v)
	if len(rows) == 0 {
		return nil
	}

	cols := columns(rows)
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(cols)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range rows {
		table.Append(cells(row, cols))
	}
	table.Render()
	return nil
}
